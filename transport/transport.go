// Package transport executes built requests over HTTP and parses
// response bodies into payload data the normalizer can consume.
//
// The mapping engine never constructs or parses raw HTTP messages:
// everything up to placement happens in resolve, everything from the
// wire back to a parsed payload happens here. Cancellation and timeouts
// belong to this layer; retries are intentionally not offered.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/semprofile/mapper/resolve"
)

// Response is a parsed operation response.
type Response struct {
	StatusCode  int
	ContentType string

	// Body is the parsed payload: decoded JSON for JSON responses, a
	// map of first values for urlencoded ones, the raw text otherwise.
	Body any

	// Raw is the unparsed body.
	Raw []byte
}

// IsSuccess reports whether the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Transport performs a built request.
type Transport interface {
	Do(ctx context.Context, req *resolve.Request) (*Response, error)
}

// HTTP is the net/http backed transport.
type HTTP struct {
	client    *http.Client
	userAgent string
}

// Option configures the HTTP transport.
type Option func(*HTTP)

// WithClient replaces the underlying http.Client.
func WithClient(c *http.Client) Option {
	return func(t *HTTP) {
		if c != nil {
			t.client = c
		}
	}
}

// WithTimeout sets the per-call timeout. Use 0 for none.
func WithTimeout(d time.Duration) Option {
	return func(t *HTTP) {
		t.client.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(t *HTTP) {
		t.userAgent = ua
	}
}

// NewHTTP creates an HTTP transport with a 30 second default timeout.
func NewHTTP(opts ...Option) *HTTP {
	t := &HTTP{
		client: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Do executes the request and parses the response body by content type.
// Non-2xx responses are returned, not turned into errors; the caller
// decides how to treat them.
func (t *HTTP) Do(ctx context.Context, req *resolve.Request) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, fmt.Errorf("request url: %w", err)
	}

	q := u.Query()
	for name, vals := range req.Query {
		for _, v := range vals {
			q.Add(name, v)
		}
	}
	u.RawQuery = q.Encode()

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}

	hreq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, err
	}
	for name, vals := range req.Header {
		for _, v := range vals {
			hreq.Header.Add(name, v)
		}
	}
	if contentType != "" {
		hreq.Header.Set("Content-Type", contentType)
	}
	if t.userAgent != "" && hreq.Header.Get("User-Agent") == "" {
		hreq.Header.Set("User-Agent", t.userAgent)
	}

	hres, err := t.client.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer hres.Body.Close()

	raw, err := io.ReadAll(hres.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	res := &Response{
		StatusCode:  hres.StatusCode,
		ContentType: hres.Header.Get("Content-Type"),
		Raw:         raw,
	}
	res.Body = parseBody(res.ContentType, raw)
	return res, nil
}

// encodeBody renders the assembled body object for the wire.
func encodeBody(req *resolve.Request) (io.Reader, string, error) {
	if req.Body == nil {
		return nil, "", nil
	}

	switch req.ContentType {
	case resolve.MediaForm:
		form := url.Values{}
		for name, v := range req.Body {
			form.Set(name, resolve.Stringify(v))
		}
		return strings.NewReader(form.Encode()), resolve.MediaForm, nil
	default:
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), resolve.MediaJSON, nil
	}
}

// parseBody decodes a response body by its content type. Parsing is
// permissive: anything that fails to decode is handed back raw.
func parseBody(contentType string, raw []byte) any {
	if len(raw) == 0 {
		return nil
	}

	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = contentType
	}

	switch mt {
	case resolve.MediaJSON:
		var v any
		if err := json.Unmarshal(raw, &v); err == nil {
			return v
		}
	case resolve.MediaForm:
		if vals, err := url.ParseQuery(string(raw)); err == nil {
			out := make(map[string]any, len(vals))
			for name := range vals {
				out[name] = vals.Get(name)
			}
			return out
		}
	}
	return string(raw)
}
