package semmapper

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a description, operation or credential
// scheme cannot be located.
var ErrNotFound = errors.New("not found")

// ErrUnsupported is returned when a source declares something the mapper
// does not implement.
var ErrUnsupported = errors.New("not supported")

// MissingParameterError reports a required parameter or body property that
// resolved to no value. It is raised at build time, before any transport
// call is attempted.
type MissingParameterError struct {
	// Parameter is the concrete parameter or body property name.
	Parameter string

	// SemanticID is the profile annotation on the declaration, if any.
	SemanticID string
}

// Error implements the error interface.
func (e *MissingParameterError) Error() string {
	if e.SemanticID == "" {
		return fmt.Sprintf("required parameter %q is unresolved", e.Parameter)
	}
	return fmt.Sprintf("required parameter %q (%s) is unresolved", e.Parameter, e.SemanticID)
}

// UnsupportedContentTypeError reports a request body whose first declared
// media type is not one the builder can produce.
type UnsupportedContentTypeError struct {
	// MediaType is the offending declared media type.
	MediaType string
}

// Error implements the error interface.
func (e *UnsupportedContentTypeError) Error() string {
	return fmt.Sprintf("unsupported request content type %q", e.MediaType)
}

// Unwrap allows errors.Is(err, ErrUnsupported).
func (e *UnsupportedContentTypeError) Unwrap() error { return ErrUnsupported }

// UnresolvedSecuritySchemeError reports an operation security requirement
// that names a scheme absent from the description's components, or one
// whose type the builder does not implement.
type UnresolvedSecuritySchemeError struct {
	// Scheme is the security scheme id named by the operation.
	Scheme string

	// Type is the declared scheme type, empty when the scheme is missing
	// from the components entirely.
	Type string
}

// Error implements the error interface.
func (e *UnresolvedSecuritySchemeError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("security scheme %q is not declared by the description", e.Scheme)
	}
	return fmt.Sprintf("security scheme %q has unsupported type %q", e.Scheme, e.Type)
}

// Unwrap allows errors.Is(err, ErrUnsupported) for unsupported types and
// errors.Is(err, ErrNotFound) for missing declarations.
func (e *UnresolvedSecuritySchemeError) Unwrap() error {
	if e.Type == "" {
		return ErrNotFound
	}
	return ErrUnsupported
}
