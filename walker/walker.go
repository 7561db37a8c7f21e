// Package walker discovers where profile annotations live inside an
// annotated schema tree.
//
// Scanning emits one mapping per annotated node, carrying the cursor that
// locates the node's value inside a payload shaped like the schema. The
// traversal is depth-first with properties before siblings, so repeated
// scans of the same schema yield identical mapping sequences.
package walker

import "github.com/semprofile/mapper/pkg/cursor"

// Mapping ties a semantic identifier to the payload location it was
// annotated at. Value is filled in later, when the mapping is resolved
// against a concrete payload.
type Mapping struct {
	SemanticID string
	Cursor     cursor.Cursor
	Value      any
}

// Scan walks the annotated schema and returns its mappings in traversal
// order. The input schema is never mutated.
func Scan(root *Node) []Mapping {
	var out []Mapping
	scan(root, cursor.Cursor{}, &out)
	return out
}

func scan(n *Node, cur cursor.Cursor, out *[]Mapping) {
	if n == nil {
		return
	}

	// A node may be annotated and still have annotated descendants.
	if n.SemanticID != "" {
		*out = append(*out, Mapping{SemanticID: n.SemanticID, Cursor: cur.Clone()})
	}

	switch n.Kind {
	case KindObject:
		for _, p := range n.Properties {
			scan(p.Node, cur.Extend(p.Name), out)
		}
	case KindArray:
		// Tuple slots beyond the first are not modeled.
		scan(n.Item(), cur.Descend(), out)
	}
}
