// Package extract resolves cursors against concrete payload data.
package extract

import "github.com/semprofile/mapper/pkg/cursor"

// Value resolves cur against data.
//
// Each property segment is resolved as a dotted-path lookup; missing
// intermediate keys yield nil rather than an error. When a resolved
// value is an array, the remaining cursor is applied once per element
// and the results are collected in order (fan-out). A boundary segment
// resolves to the value itself, so a boundary that ends a cursor means
// "each element as a whole".
//
// When the schema predicted an array but the actual value is not one,
// the value is returned as the whole match and any remaining segments
// are discarded. Value never panics on absent or oddly shaped data.
func Value(data any, cur cursor.Cursor) any {
	if cur.IsEmpty() {
		return data
	}

	v := lookup(data, cur.Head())

	if arr, ok := v.([]any); ok {
		rest := cur.Tail()
		out := make([]any, len(arr))
		for i, el := range arr {
			out[i] = Value(el, rest)
		}
		return out
	}

	// Non-array where the schema may have predicted one: remaining
	// segments are dropped and the value stands as the whole match.
	return v
}

// lookup resolves a single segment against data. Boundary segments are
// identity lookups; property segments walk the dotted path through
// nested objects.
func lookup(data any, seg cursor.Segment) any {
	if seg.IsBoundary() {
		return data
	}

	v := data
	for _, key := range seg.Keys() {
		obj, ok := v.(map[string]any)
		if !ok {
			return nil
		}
		v, ok = obj[key]
		if !ok {
			return nil
		}
	}
	return v
}
