// Package credentials holds the externally-owned credential store the
// mapping engine reads security values from.
//
// The engine never writes credentials; it consumes them through a fixed
// source vocabulary (e.g. "security-basic-user") referenced by x-security
// hints in API descriptions.
package credentials

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Scheme ids the source vocabulary is defined over.
const (
	SchemeBasic  = "basic"
	SchemeAPIKey = "apikey"
)

// Source vocabulary: the credential fields a declaration may ask for.
const (
	SourceBasicUser     = "security-basic-user"
	SourceBasicPassword = "security-basic-password"
	SourceAPIKeyKey     = "security-apikey-key"
	SourceAPIKeySecret  = "security-apikey-secret"
)

// Scheme holds the fields of one security scheme. Which fields are
// populated depends on the scheme id.
type Scheme struct {
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Key      string `json:"key,omitempty"`
	Secret   string `json:"secret,omitempty"`
}

// Store keeps credentials keyed by scheme id. It is safe for concurrent
// use; the engine only reads from it.
type Store struct {
	mu      sync.RWMutex
	schemes map[string]Scheme
}

// New creates an empty store.
func New() *Store {
	return &Store{schemes: make(map[string]Scheme)}
}

// Set stores the credentials for a scheme id.
func (s *Store) Set(id string, scheme Scheme) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.schemes[id] = scheme
}

// Scheme returns the credentials for a scheme id.
func (s *Store) Scheme(id string) (Scheme, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scheme, ok := s.schemes[id]
	return scheme, ok
}

// Lookup resolves a source vocabulary entry to its credential value.
// It returns false when the vocabulary entry is unknown, when the store
// lacks the scheme, or when the field is empty; the caller decides
// whether that is an error.
func (s *Store) Lookup(source string) (string, bool) {
	var id string
	switch source {
	case SourceBasicUser, SourceBasicPassword:
		id = SchemeBasic
	case SourceAPIKeyKey, SourceAPIKeySecret:
		id = SchemeAPIKey
	default:
		return "", false
	}

	scheme, ok := s.Scheme(id)
	if !ok {
		return "", false
	}

	var v string
	switch source {
	case SourceBasicUser:
		v = scheme.User
	case SourceBasicPassword:
		v = scheme.Password
	case SourceAPIKeyKey:
		v = scheme.Key
	case SourceAPIKeySecret:
		v = scheme.Secret
	}
	return v, v != ""
}

var validate = validator.New()

// storeFile is the on-disk shape consumed by Load.
type storeFile struct {
	Schemes map[string]Scheme `json:"schemes" validate:"required,dive"`
}

// Load reads a credential store from its JSON representation:
//
//	{"schemes": {"basic": {"user": "u", "password": "p"}}}
func Load(r io.Reader) (*Store, error) {
	var f storeFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("invalid credentials: %w", err)
	}

	s := New()
	for id, scheme := range f.Schemes {
		s.Set(id, scheme)
	}
	return s, nil
}

// LoadFile reads a credential store from disk.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}
