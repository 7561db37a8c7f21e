package resolve

import (
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"

	sm "github.com/semprofile/mapper"
	"github.com/semprofile/mapper/credentials"
	"github.com/semprofile/mapper/document"
	"github.com/semprofile/mapper/semantic"
)

// Media types the builder can produce.
const (
	MediaJSON = "application/json"
	MediaForm = "application/x-www-form-urlencoded"
)

// Request is a transport-ready request. Placement of values into the
// URL, query list, headers and body has already happened; the transport
// only performs the call.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header

	// Body is the assembled body object, nil when the operation
	// declares none. ContentType selects its encoding.
	Body        map[string]any
	ContentType string
}

// BuildRequest assembles the outbound request for an endpoint located in
// doc. It resolves every declared parameter and body property through
// the prioritized source policy and fails, without any network activity,
// when a required slot stays absent, when the body's first declared
// media type is unsupported, or when a declared security scheme cannot
// be satisfied.
func BuildRequest(
	doc *document.Document,
	ep document.Endpoint,
	q semantic.QualifiedID,
	inputs semantic.InputMap,
	creds *credentials.Store,
) (*Request, error) {
	qualified := inputs.Qualified(q.Operation())

	req := &Request{
		Method: ep.Method,
		Query:  url.Values{},
		Header: http.Header{},
	}

	path := ep.Path
	for _, p := range ep.Op.Parameters {
		decl := Decl{
			Name:       p.Name,
			SemanticID: p.ProfileID(),
			Hint:       p.Hint(),
			Required:   p.Required,
		}

		v, ok := Value(decl, qualified, creds)
		if !ok {
			if decl.Required {
				return nil, &sm.MissingParameterError{Parameter: decl.Name, SemanticID: decl.SemanticID}
			}
			// Unresolved optional slots are omitted from the request.
			continue
		}

		switch p.In {
		case "query":
			req.Query.Add(p.Name, Stringify(v))
		case "header":
			req.Header.Set(p.Name, Stringify(v))
		default:
			// Values are substituted verbatim, without percent-encoding.
			path = strings.ReplaceAll(path, "{"+p.Name+"}", Stringify(v))
		}
	}

	base := strings.TrimSuffix(doc.ServerURL(), "/")
	req.URL = base + path

	if ep.Op.RequestBody != nil && len(ep.Op.RequestBody.Content) > 0 {
		if err := buildBody(req, ep.Op.RequestBody, qualified, creds); err != nil {
			return nil, err
		}
	}

	if err := applySecurity(req, doc, ep.Op, creds); err != nil {
		return nil, err
	}

	return req, nil
}

// buildBody assembles the request body from the first declared media
// type. An unsupported first media type rejects the whole build; there
// is no content negotiation.
func buildBody(req *Request, rb *document.RequestBody, qualified map[string]any, creds *credentials.Store) error {
	for _, mt := range rb.Content {
		if mt.MediaType != MediaJSON && mt.MediaType != MediaForm {
			return &sm.UnsupportedContentTypeError{MediaType: mt.MediaType}
		}

		body := make(map[string]any)
		if mt.Schema != nil {
			// Single-level walk: only the schema's direct properties
			// are resolved.
			for _, prop := range mt.Schema.Properties {
				decl := Decl{
					Name:       prop.Name,
					SemanticID: prop.Node.SemanticID,
					Hint:       prop.Node.Hint,
					Required:   mt.Schema.IsRequired(prop.Name),
				}

				v, ok := Value(decl, qualified, creds)
				if !ok {
					if decl.Required {
						return &sm.MissingParameterError{Parameter: decl.Name, SemanticID: decl.SemanticID}
					}
					continue
				}
				body[prop.Name] = v
			}
		}

		req.Body = body
		req.ContentType = mt.MediaType
		return nil
	}
	return nil
}

// applySecurity satisfies the operation's first declared security
// requirement. Within a requirement the first declared scheme wins.
// Missing credentials leave the request unauthenticated; an undeclared
// or unsupported scheme rejects the build.
func applySecurity(req *Request, doc *document.Document, op *document.Operation, creds *credentials.Store) error {
	if len(op.Security) == 0 || len(op.Security[0].Schemes) == 0 {
		return nil
	}

	id := op.Security[0].Schemes[0]
	scheme, ok := doc.SecurityScheme(id)
	if !ok {
		return &sm.UnresolvedSecuritySchemeError{Scheme: id}
	}

	switch {
	case scheme.Type == "http" && scheme.Scheme == "basic":
		if creds == nil {
			return nil
		}
		user, uok := creds.Lookup(credentials.SourceBasicUser)
		pass, pok := creds.Lookup(credentials.SourceBasicPassword)
		if uok && pok {
			token := base64.StdEncoding.EncodeToString([]byte(user + ":" + pass))
			req.Header.Set("Authorization", "Basic "+token)
		}
	case scheme.Type == "apiKey":
		if creds == nil {
			return nil
		}
		key, ok := creds.Lookup(credentials.SourceAPIKeyKey)
		if !ok {
			return nil
		}
		if scheme.In == "query" {
			req.Query.Set(scheme.Name, key)
		} else {
			req.Header.Set(scheme.Name, key)
		}
	default:
		return &sm.UnresolvedSecuritySchemeError{Scheme: id, Type: scheme.Type}
	}
	return nil
}
