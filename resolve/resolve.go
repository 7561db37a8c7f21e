// Package resolve assembles outbound requests from semantic inputs and
// annotated parameter declarations.
//
// Every declared slot is resolved through the same prioritized source
// policy: an explicit caller input wins over a credential-derived value,
// which wins over a declared literal; anything else stays absent. The
// builder turns resolved slots into a transport-ready request and fails
// before any network activity when a required slot stays absent.
package resolve

import (
	"fmt"
	"strconv"

	"github.com/semprofile/mapper/credentials"
	"github.com/semprofile/mapper/walker"
)

// Decl is the resolvable part of a parameter or body property
// declaration.
type Decl struct {
	// Name is the concrete parameter or property name.
	Name string

	// SemanticID is the declaration's profile annotation, if any.
	SemanticID string

	// Hint is the declared value-source hint, if any.
	Hint *walker.Hint

	// Required marks the slot as mandatory.
	Required bool
}

// Value resolves a declaration to a concrete value. qualified maps fully
// qualified semantic ids to caller inputs; creds is the externally-owned
// credential store. The second return is false when the slot stays
// absent.
//
// Resolution order, first satisfied wins:
//
//  1. explicit input matching the declaration's semantic id
//  2. credential-derived value named by the hint's source vocabulary
//  3. declared literal
func Value(d Decl, qualified map[string]any, creds *credentials.Store) (any, bool) {
	if d.SemanticID != "" {
		if v, ok := qualified[d.SemanticID]; ok {
			return v, true
		}
	}

	if d.Hint != nil {
		switch d.Hint.Kind {
		case walker.HintCredential:
			if creds != nil {
				// A store lacking the scheme is not a failure here;
				// the slot just stays unresolved.
				if v, ok := creds.Lookup(d.Hint.Source); ok {
					return v, true
				}
			}
		case walker.HintLiteral:
			return d.Hint.Value, true
		}
	}

	return nil, false
}

// Stringify renders a resolved value for placement into a URL, query
// string or header.
func Stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}
