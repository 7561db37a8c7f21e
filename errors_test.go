package semmapper

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMissingParameterError(t *testing.T) {
	err := &MissingParameterError{Parameter: "name", SemanticID: "commerce#SearchCompany/Name"}

	if !strings.Contains(err.Error(), `"name"`) {
		t.Errorf("Error() = %q; want parameter name", err.Error())
	}
	if !strings.Contains(err.Error(), "commerce#SearchCompany/Name") {
		t.Errorf("Error() = %q; want semantic id", err.Error())
	}

	bare := &MissingParameterError{Parameter: "limit"}
	if strings.Contains(bare.Error(), "()") {
		t.Errorf("Error() = %q; empty semantic id must be omitted", bare.Error())
	}

	var target *MissingParameterError
	wrapped := fmt.Errorf("build: %w", err)
	if !errors.As(wrapped, &target) {
		t.Error("errors.As failed through wrapping")
	}
	if target.Parameter != "name" {
		t.Errorf("Parameter = %q; want name", target.Parameter)
	}
}

func TestUnsupportedContentTypeError(t *testing.T) {
	err := &UnsupportedContentTypeError{MediaType: "text/csv"}

	if !errors.Is(err, ErrUnsupported) {
		t.Error("want errors.Is(err, ErrUnsupported)")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("must not match ErrNotFound")
	}
	if !strings.Contains(err.Error(), "text/csv") {
		t.Errorf("Error() = %q; want media type", err.Error())
	}
}

func TestUnresolvedSecuritySchemeError(t *testing.T) {
	missing := &UnresolvedSecuritySchemeError{Scheme: "oauth"}
	if !errors.Is(missing, ErrNotFound) {
		t.Error("missing declaration must match ErrNotFound")
	}
	if errors.Is(missing, ErrUnsupported) {
		t.Error("missing declaration must not match ErrUnsupported")
	}

	unsupported := &UnresolvedSecuritySchemeError{Scheme: "oauth", Type: "oauth2"}
	if !errors.Is(unsupported, ErrUnsupported) {
		t.Error("unsupported type must match ErrUnsupported")
	}
	if !strings.Contains(unsupported.Error(), "oauth2") {
		t.Errorf("Error() = %q; want scheme type", unsupported.Error())
	}
}
