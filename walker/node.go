package walker

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the three schema node shapes.
type Kind int

// Node kinds.
const (
	// KindScalar is a leaf node (string, number, boolean, ...).
	KindScalar Kind = iota
	// KindObject is a node with named properties.
	KindObject
	// KindArray is a node with an item schema.
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "scalar"
	}
}

// HintKind discriminates the two value-source hints a declaration can
// carry besides its profile annotation.
type HintKind int

// Hint kinds.
const (
	// HintCredential derives the value from the credential store using a
	// fixed source vocabulary (e.g. "security-basic-user").
	HintCredential HintKind = iota
	// HintLiteral uses a fixed value verbatim.
	HintLiteral
)

// Hint is a value-source hint attached to a parameter or body property
// declaration via the x-security or x-literal extensions.
type Hint struct {
	Kind   HintKind
	Source string // credential source vocabulary entry
	Value  any    // literal value
}

// Node is a schema-tree node annotated with profile identifiers.
// Exactly one of Properties (object) or Items (array) is populated,
// matching Kind; scalar nodes carry neither.
type Node struct {
	Kind Kind

	// SemanticID is the x-profile annotation, empty when the node is
	// unannotated.
	SemanticID string

	// Hint is the x-security or x-literal source hint, if any.
	Hint *Hint

	// Properties holds the object properties in declaration order.
	Properties []Property

	// Required lists the property names the schema marks required.
	Required []string

	// Items holds the array item schema. Tuple-typed arrays keep their
	// declaration order, but only the first slot is scanned.
	Items []*Node
}

// Property is a named child of an object node.
type Property struct {
	Name string
	Node *Node
}

// Property returns the child node for name, or nil.
func (n *Node) Property(name string) *Node {
	for _, p := range n.Properties {
		if p.Name == name {
			return p.Node
		}
	}
	return nil
}

// IsRequired reports whether the object schema marks name as required.
func (n *Node) IsRequired(name string) bool {
	for _, r := range n.Required {
		if r == name {
			return true
		}
	}
	return false
}

// Item returns the scanned item schema of an array node: the single item
// schema, or the first slot of a tuple. It returns nil when the array
// declares no items.
func (n *Node) Item() *Node {
	if len(n.Items) == 0 {
		return nil
	}
	return n.Items[0]
}

// UnmarshalYAML decodes an annotated schema fragment. It accepts both
// YAML and JSON documents (JSON being a YAML subset) and preserves the
// declaration order of properties, which the scanner's traversal order
// depends on.
func (n *Node) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.AliasNode {
		return n.UnmarshalYAML(value.Alias)
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("schema node: expected mapping, got %v at line %d", value.Kind, value.Line)
	}

	*n = Node{}

	var declaredType string
	var securitySource string
	var literal *yaml.Node

	for i := 0; i+1 < len(value.Content); i += 2 {
		key := value.Content[i].Value
		val := value.Content[i+1]

		switch key {
		case "type":
			if err := val.Decode(&declaredType); err != nil {
				return err
			}
		case "properties":
			props, err := decodeProperties(val)
			if err != nil {
				return err
			}
			n.Properties = props
		case "required":
			if err := val.Decode(&n.Required); err != nil {
				return err
			}
		case "items":
			items, err := decodeItems(val)
			if err != nil {
				return err
			}
			n.Items = items
		case "x-profile":
			if err := val.Decode(&n.SemanticID); err != nil {
				return err
			}
		case "x-security":
			if err := val.Decode(&securitySource); err != nil {
				return err
			}
		case "x-literal":
			literal = val
		}
	}

	switch {
	case declaredType == "object" || (declaredType == "" && n.Properties != nil):
		n.Kind = KindObject
		n.Items = nil
	case declaredType == "array" || (declaredType == "" && n.Items != nil):
		n.Kind = KindArray
		n.Properties = nil
		n.Required = nil
	default:
		n.Kind = KindScalar
		n.Properties = nil
		n.Required = nil
		n.Items = nil
	}

	// A declaration carries at most one source hint; the credential hint
	// wins over a literal when both are present.
	switch {
	case securitySource != "":
		n.Hint = &Hint{Kind: HintCredential, Source: securitySource}
	case literal != nil:
		var v any
		if err := literal.Decode(&v); err != nil {
			return err
		}
		n.Hint = &Hint{Kind: HintLiteral, Value: v}
	}

	return nil
}

func decodeProperties(value *yaml.Node) ([]Property, error) {
	if value.Kind == yaml.AliasNode {
		return decodeProperties(value.Alias)
	}
	if value.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("schema properties: expected mapping at line %d", value.Line)
	}

	props := make([]Property, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		child := &Node{}
		if err := value.Content[i+1].Decode(child); err != nil {
			return nil, err
		}
		props = append(props, Property{Name: value.Content[i].Value, Node: child})
	}
	return props, nil
}

func decodeItems(value *yaml.Node) ([]*Node, error) {
	if value.Kind == yaml.AliasNode {
		return decodeItems(value.Alias)
	}

	switch value.Kind {
	case yaml.MappingNode:
		item := &Node{}
		if err := value.Decode(item); err != nil {
			return nil, err
		}
		return []*Node{item}, nil
	case yaml.SequenceNode:
		items := make([]*Node, 0, len(value.Content))
		for _, c := range value.Content {
			item := &Node{}
			if err := c.Decode(item); err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	default:
		return nil, fmt.Errorf("schema items: expected mapping or sequence at line %d", value.Line)
	}
}
