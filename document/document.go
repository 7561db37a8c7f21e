// Package document models dereferenced, profile-annotated HTTP API
// descriptions.
//
// The model is deliberately partial: it keeps the parts the mapping
// engine consumes (operations, parameters, request bodies, responses,
// security schemes and the x-profile / x-affordance / x-security /
// x-literal annotations) and preserves declaration order wherever the
// engine's tie-break rules depend on it.
package document

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/semprofile/mapper/semantic"
	"github.com/semprofile/mapper/walker"
)

// Document is a dereferenced API description.
type Document struct {
	OpenAPI string `yaml:"openapi" validate:"required"`
	Info    Info   `yaml:"info"`

	// Profile is the root x-profile annotation naming the semantic
	// profile this description binds to.
	Profile string `yaml:"x-profile"`

	Servers    []Server    `yaml:"servers" validate:"omitempty,dive"`
	Paths      Paths       `yaml:"paths" validate:"omitempty,dive"`
	Components *Components `yaml:"components"`
}

// Info carries the description's own metadata.
type Info struct {
	Title   string `yaml:"title"`
	Version string `yaml:"version"`
}

// Server is a concrete base URL for the described API.
type Server struct {
	URL string `yaml:"url" validate:"required"`
}

// ServerURL returns the first declared server URL. Declaration order is
// the documented tie-break.
func (d *Document) ServerURL() string {
	if len(d.Servers) == 0 {
		return ""
	}
	return d.Servers[0].URL
}

// Paths holds the path items in declaration order.
type Paths []PathEntry

// PathEntry is one path template and its item.
type PathEntry struct {
	Path string
	Item PathItem
}

// UnmarshalYAML preserves path declaration order.
func (p *Paths) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("paths: expected mapping at line %d", value.Line)
	}

	out := make(Paths, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var item PathItem
		if err := value.Content[i+1].Decode(&item); err != nil {
			return err
		}
		out = append(out, PathEntry{Path: value.Content[i].Value, Item: item})
	}
	*p = out
	return nil
}

// PathItem holds the operations declared under one path, in declaration
// order.
type PathItem struct {
	Operations []OperationEntry `validate:"omitempty,dive"`
}

// OperationEntry is one HTTP method and its operation.
type OperationEntry struct {
	Method string
	Op     *Operation
}

var httpMethods = map[string]string{
	"get": "GET", "put": "PUT", "post": "POST", "delete": "DELETE",
	"options": "OPTIONS", "head": "HEAD", "patch": "PATCH", "trace": "TRACE",
}

// UnmarshalYAML collects the method keys in declaration order.
func (p *PathItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("path item: expected mapping at line %d", value.Line)
	}

	for i := 0; i+1 < len(value.Content); i += 2 {
		method, ok := httpMethods[value.Content[i].Value]
		if !ok {
			continue
		}
		op := &Operation{}
		if err := value.Content[i+1].Decode(op); err != nil {
			return err
		}
		p.Operations = append(p.Operations, OperationEntry{Method: method, Op: op})
	}
	return nil
}

// Operation is a single HTTP operation.
type Operation struct {
	ID      string `yaml:"operationId"`
	Summary string `yaml:"summary"`

	// Affordance is the x-affordance annotation: either the bare
	// affordance name (profile taken from the document root) or a fully
	// qualified {profile}#{affordance} identifier.
	Affordance string `yaml:"x-affordance"`

	Parameters  []*Parameter          `yaml:"parameters" validate:"omitempty,dive"`
	RequestBody *RequestBody          `yaml:"requestBody"`
	Responses   Responses             `yaml:"responses"`
	Security    []SecurityRequirement `yaml:"security"`
}

// Satisfies reports whether the operation's affordance annotation matches
// the qualified operation id under the document's root profile.
func (o *Operation) Satisfies(docProfile string, q semantic.QualifiedID) bool {
	if o.Affordance == "" {
		return false
	}
	if a, err := semantic.Parse(o.Affordance); err == nil {
		return a.Operation() == q.Operation()
	}
	return o.Affordance == q.Affordance && docProfile == q.Profile
}

// SuccessResponse returns the first declared 2xx response, in declaration
// order.
func (o *Operation) SuccessResponse() (*Response, bool) {
	for _, e := range o.Responses {
		if len(e.Code) == 3 && e.Code[0] == '2' {
			return e.Response, true
		}
	}
	return nil, false
}

// Parameter is a declared operation parameter.
type Parameter struct {
	Name     string `yaml:"name" validate:"required"`
	In       string `yaml:"in" validate:"required,oneof=query header path cookie"`
	Required bool   `yaml:"required"`

	Schema *walker.Node `yaml:"schema"`

	// SemanticID is the x-profile annotation on the parameter itself.
	SemanticID string  `yaml:"x-profile"`
	Security   string  `yaml:"x-security"`
	Literal    Literal `yaml:"x-literal"`
}

// ProfileID returns the parameter's semantic id, falling back to an
// annotation on its schema.
func (p *Parameter) ProfileID() string {
	if p.SemanticID != "" {
		return p.SemanticID
	}
	if p.Schema != nil {
		return p.Schema.SemanticID
	}
	return ""
}

// Hint returns the parameter's value-source hint, falling back to a hint
// on its schema. The credential hint wins when both are declared.
func (p *Parameter) Hint() *walker.Hint {
	if p.Security != "" {
		return &walker.Hint{Kind: walker.HintCredential, Source: p.Security}
	}
	if p.Literal.Set {
		return &walker.Hint{Kind: walker.HintLiteral, Value: p.Literal.Value}
	}
	if p.Schema != nil {
		return p.Schema.Hint
	}
	return nil
}

// Literal captures an x-literal value while distinguishing "absent" from
// an explicit null.
type Literal struct {
	Set   bool
	Value any
}

// UnmarshalYAML marks the literal present and decodes its value.
func (l *Literal) UnmarshalYAML(value *yaml.Node) error {
	l.Set = true
	return value.Decode(&l.Value)
}

// RequestBody declares an operation's body content.
type RequestBody struct {
	Required bool    `yaml:"required"`
	Content  Content `yaml:"content"`
}

// Content holds media types in declaration order.
type Content []MediaType

// MediaType is one media type entry and its schema.
type MediaType struct {
	MediaType string
	Schema    *walker.Node
}

// UnmarshalYAML preserves media type declaration order.
func (c *Content) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("content: expected mapping at line %d", value.Line)
	}

	out := make(Content, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		var entry struct {
			Schema *walker.Node `yaml:"schema"`
		}
		if err := value.Content[i+1].Decode(&entry); err != nil {
			return err
		}
		out = append(out, MediaType{MediaType: value.Content[i].Value, Schema: entry.Schema})
	}
	*c = out
	return nil
}

// First returns the first declared entry whose media type is in accepted,
// preserving the first-supported-wins tie-break.
func (c Content) First(accepted ...string) (MediaType, bool) {
	for _, entry := range c {
		for _, mt := range accepted {
			if entry.MediaType == mt {
				return entry, true
			}
		}
	}
	return MediaType{}, false
}

// Responses holds response declarations ordered by status code
// declaration order.
type Responses []ResponseEntry

// ResponseEntry is one status code and its response.
type ResponseEntry struct {
	Code     string
	Response *Response
}

// UnmarshalYAML preserves status code declaration order.
func (r *Responses) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("responses: expected mapping at line %d", value.Line)
	}

	out := make(Responses, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		resp := &Response{}
		if err := value.Content[i+1].Decode(resp); err != nil {
			return err
		}
		out = append(out, ResponseEntry{Code: value.Content[i].Value, Response: resp})
	}
	*r = out
	return nil
}

// Response is a declared response.
type Response struct {
	Description string  `yaml:"description"`
	Content     Content `yaml:"content"`
}

// SecurityRequirement names the schemes an operation requires. The first
// declared scheme wins.
type SecurityRequirement struct {
	Schemes []string
}

// UnmarshalYAML keeps the scheme names in declaration order.
func (s *SecurityRequirement) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("security requirement: expected mapping at line %d", value.Line)
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		s.Schemes = append(s.Schemes, value.Content[i].Value)
	}
	return nil
}

// Components holds the reusable parts the engine consumes.
type Components struct {
	SecuritySchemes map[string]*SecurityScheme `yaml:"securitySchemes"`
}

// SecurityScheme describes one declared security scheme.
type SecurityScheme struct {
	Type   string `yaml:"type"`
	Scheme string `yaml:"scheme"`
	Name   string `yaml:"name"`
	In     string `yaml:"in"`
}

// SecurityScheme looks up a declared scheme by id.
func (d *Document) SecurityScheme(id string) (*SecurityScheme, bool) {
	if d.Components == nil {
		return nil, false
	}
	s, ok := d.Components.SecuritySchemes[id]
	return s, ok
}

// Endpoint is a located operation: the concrete method and path template
// together with the operation declaration.
type Endpoint struct {
	Method string
	Path   string
	Op     *Operation
}

// FindAffordance locates the operation annotated with the given semantic
// operation id. The first match in path declaration order wins.
func (d *Document) FindAffordance(q semantic.QualifiedID) (Endpoint, bool) {
	for _, pe := range d.Paths {
		for _, oe := range pe.Item.Operations {
			if oe.Op.Satisfies(d.Profile, q) {
				return Endpoint{Method: oe.Method, Path: pe.Path, Op: oe.Op}, true
			}
		}
	}
	return Endpoint{}, false
}
