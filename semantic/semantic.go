// Package semantic holds the profile-side identifier types: qualified
// operation and parameter identifiers, and the caller's input map.
package semantic

import (
	"fmt"
	"strings"
)

// QualifiedID namespaces a semantic identifier to a profile and one of
// its affordances, optionally down to a single parameter:
//
//	{profile}#{affordance}
//	{profile}#{affordance}/{parameter}
//
// Qualification keeps identical property names from different operations
// apart.
type QualifiedID struct {
	Profile    string
	Affordance string
	Parameter  string
}

// Parse parses a qualified identifier.
func Parse(s string) (QualifiedID, error) {
	profile, rest, ok := strings.Cut(s, "#")
	if !ok || profile == "" || rest == "" {
		return QualifiedID{}, fmt.Errorf("semantic id %q: want {profile}#{affordance}", s)
	}

	affordance, parameter, _ := strings.Cut(rest, "/")
	if affordance == "" {
		return QualifiedID{}, fmt.Errorf("semantic id %q: empty affordance", s)
	}

	return QualifiedID{Profile: profile, Affordance: affordance, Parameter: parameter}, nil
}

// String renders the identifier back into its wire form.
func (q QualifiedID) String() string {
	s := q.Profile + "#" + q.Affordance
	if q.Parameter != "" {
		s += "/" + q.Parameter
	}
	return s
}

// WithParameter returns the identifier narrowed to one parameter.
func (q QualifiedID) WithParameter(name string) QualifiedID {
	q.Parameter = name
	return q
}

// Operation returns the identifier without its parameter part.
func (q QualifiedID) Operation() QualifiedID {
	q.Parameter = ""
	return q
}

// IsParameter reports whether the identifier names a parameter rather
// than an affordance.
func (q QualifiedID) IsParameter() bool { return q.Parameter != "" }

// InputMap maps unqualified parameter names, as given by the caller, to
// values. Qualification happens inside the resolver, never at the call
// site.
type InputMap map[string]any

// Qualified returns the inputs re-keyed by their fully qualified ids
// under the given operation.
func (m InputMap) Qualified(op QualifiedID) map[string]any {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]any, len(m))
	for name, v := range m {
		out[op.WithParameter(name).String()] = v
	}
	return out
}
