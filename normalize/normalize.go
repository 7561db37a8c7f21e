// Package normalize turns concrete response payloads back into semantic
// property maps.
package normalize

import (
	"github.com/semprofile/mapper/pkg/extract"
	"github.com/semprofile/mapper/semantic"
	"github.com/semprofile/mapper/walker"
)

// Response resolves the annotated response schema against the payload
// and returns the values for the requested property names, keyed by
// their unqualified names.
//
// Each requested name is qualified under op before matching schema
// annotations, so identical property names from other operations never
// collide. Requested names without a matching annotation are simply
// absent from the result; annotated locations nobody asked for are
// dropped. A nil schema means the operation declared no mapped response
// shape and yields an empty result.
func Response(schema *walker.Node, payload any, requested []string, op semantic.QualifiedID) map[string]any {
	out := make(map[string]any, len(requested))
	if schema == nil || len(requested) == 0 {
		return out
	}

	mappings := walker.Scan(schema)
	return Mapped(mappings, payload, requested, op)
}

// Mapped is the half of Response after scanning: it resolves already
// discovered mappings against the payload and filters them down to the
// requested names. Callers that cache scans use this directly.
func Mapped(mappings []walker.Mapping, payload any, requested []string, op semantic.QualifiedID) map[string]any {
	out := make(map[string]any, len(requested))

	qualified := make(map[string]string, len(requested))
	for _, name := range requested {
		qualified[op.WithParameter(name).String()] = name
	}

	for _, m := range mappings {
		name, ok := qualified[m.SemanticID]
		if !ok {
			continue
		}
		out[name] = extract.Value(payload, m.Cursor)
	}
	return out
}
