// Package semmapper maps between semantic profiles and concrete HTTP APIs.
//
// A semantic profile is a vocabulary of operation and property identifiers
// that is independent of any particular API. An API description annotates
// its paths, parameters and schemas with those identifiers, and this module
// uses the annotations in both directions: outbound to assemble requests
// from semantic inputs, and inbound to normalize responses back into
// semantic property maps.
//
// # Quick Start
//
//	import (
//	    sm "github.com/semprofile/mapper"
//	    "github.com/semprofile/mapper/credentials"
//	    "github.com/semprofile/mapper/engine"
//	    "github.com/semprofile/mapper/registry"
//	    "github.com/semprofile/mapper/transport"
//	)
//
//	src := registry.NewClient()
//	inv := engine.New(src, transport.NewHTTP(), credentials.New())
//
//	out, err := inv.Invoke(ctx, engine.Invocation{
//	    Description: "https://example.org/api/description.json",
//	    Operation:   "https://profiles.example.org/commerce#SearchCompany",
//	    Inputs:      map[string]any{"Name": "ACME"},
//	    Requested:   []string{"Name", "Address"},
//	})
//
// The root package holds the error taxonomy, configuration options and
// metrics shared by the feature packages. The mapping algorithms live in
// walker (annotation scanning), pkg/extract (payload value resolution),
// resolve (outbound request building) and normalize (inbound responses).
package semmapper
