// Package cursor describes locations inside annotated schemas and the
// payloads they predict.
//
// A cursor is an ordered sequence of segments. A property segment holds a
// dotted path that is resolved in one step against nested objects; a
// boundary segment marks the point where the producing schema declared an
// array, so that the following segments are resolved once per element.
package cursor

import "strings"

// Segment is a single step of a Cursor: either a dotted property path or
// an array fan-out boundary.
type Segment struct {
	path     string
	boundary bool
}

// Property returns a segment resolving the dotted path p.
func Property(p string) Segment {
	return Segment{path: p}
}

// Boundary returns an array fan-out boundary segment.
func Boundary() Segment {
	return Segment{boundary: true}
}

// IsBoundary reports whether the segment is an array boundary.
func (s Segment) IsBoundary() bool { return s.boundary }

// Path returns the dotted property path of a property segment. It is
// empty for boundary segments.
func (s Segment) Path() string { return s.path }

// Keys returns the individual property keys of a property segment, in
// resolution order. Boundary segments have no keys.
func (s Segment) Keys() []string {
	if s.boundary || s.path == "" {
		return nil
	}
	return strings.Split(s.path, ".")
}

// String renders the segment for diagnostics.
func (s Segment) String() string {
	if s.boundary {
		return "[]"
	}
	return s.path
}

// Cursor is an ordered sequence of segments. The zero value is the empty
// cursor, which denotes the payload root. Cursors are value types: the
// deriving operations below return new cursors and never mutate their
// receiver's backing array in place.
type Cursor struct {
	segs []Segment
}

// New builds a cursor from the given segments.
func New(segs ...Segment) Cursor {
	if len(segs) == 0 {
		return Cursor{}
	}
	c := Cursor{segs: make([]Segment, len(segs))}
	copy(c.segs, segs)
	return c
}

// Len returns the number of segments.
func (c Cursor) Len() int { return len(c.segs) }

// IsEmpty reports whether the cursor has no segments.
func (c Cursor) IsEmpty() bool { return len(c.segs) == 0 }

// At returns the i-th segment.
func (c Cursor) At(i int) Segment { return c.segs[i] }

// Head returns the first segment. It must not be called on an empty
// cursor.
func (c Cursor) Head() Segment { return c.segs[0] }

// Tail returns the cursor without its first segment.
func (c Cursor) Tail() Cursor {
	if len(c.segs) <= 1 {
		return Cursor{}
	}
	return Cursor{segs: c.segs[1:]}
}

// Segments returns a copy of the segment sequence.
func (c Cursor) Segments() []Segment {
	if len(c.segs) == 0 {
		return nil
	}
	out := make([]Segment, len(c.segs))
	copy(out, c.segs)
	return out
}

// Clone returns a cursor backed by its own segment array.
func (c Cursor) Clone() Cursor {
	return New(c.segs...)
}

// Extend merges a property key into the cursor:
//
//   - an empty cursor gains a new property segment for key;
//   - a trailing boundary is replaced by a property segment for key, so
//     the key is resolved once per element of the predicted array;
//   - a trailing property segment grows into a compound dotted path,
//     since no array boundary separates the two accesses.
func (c Cursor) Extend(key string) Cursor {
	if len(c.segs) == 0 {
		return Cursor{segs: []Segment{Property(key)}}
	}

	out := make([]Segment, len(c.segs))
	copy(out, c.segs)

	last := &out[len(out)-1]
	if last.boundary {
		*last = Property(key)
	} else {
		*last = Property(last.path + "." + key)
	}
	return Cursor{segs: out}
}

// Descend pushes an array boundary onto the cursor.
func (c Cursor) Descend() Cursor {
	out := make([]Segment, len(c.segs)+1)
	copy(out, c.segs)
	out[len(out)-1] = Boundary()
	return Cursor{segs: out}
}

// String renders the cursor for diagnostics, e.g. "companies/[]/name".
func (c Cursor) String() string {
	if len(c.segs) == 0 {
		return "."
	}
	parts := make([]string, len(c.segs))
	for i, s := range c.segs {
		parts[i] = s.String()
	}
	return strings.Join(parts, "/")
}

// Equal reports whether two cursors have identical segments.
func (c Cursor) Equal(other Cursor) bool {
	if len(c.segs) != len(other.segs) {
		return false
	}
	for i := range c.segs {
		if c.segs[i] != other.segs[i] {
			return false
		}
	}
	return true
}
