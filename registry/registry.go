// Package registry resolves API description URLs to parsed documents.
//
// A Source answers "give me the description at this URL". The HTTP
// client fetches descriptions from the network with an optional disk
// cache, Memory serves descriptions registered in-process, Chain tries
// several sources in order, and Caching memoizes any source behind an
// LRU. Engines compose these the same way for tests and production.
package registry

import (
	"context"
	"errors"

	sm "github.com/semprofile/mapper"
	"github.com/semprofile/mapper/cache"
	"github.com/semprofile/mapper/document"
)

// Source resolves a description URL to a parsed document.
type Source interface {
	Description(ctx context.Context, url string) (*document.Document, error)
}

// Memory is a Source backed by descriptions registered in-process.
// The zero value is not usable; call NewMemory.
type Memory struct {
	docs map[string]*document.Document
}

// NewMemory creates an empty in-process source.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]*document.Document)}
}

// Register stores a document under a URL, replacing any previous one.
func (m *Memory) Register(url string, doc *document.Document) {
	m.docs[url] = doc
}

// RegisterBytes parses a serialized description and stores it.
func (m *Memory) RegisterBytes(url string, data []byte) error {
	doc, err := document.Load(data)
	if err != nil {
		return err
	}
	m.Register(url, doc)
	return nil
}

// Description returns the registered document or sm.ErrNotFound.
func (m *Memory) Description(_ context.Context, url string) (*document.Document, error) {
	doc, ok := m.docs[url]
	if !ok {
		return nil, sm.ErrNotFound
	}
	return doc, nil
}

// Chain is a Source that tries multiple sources in order, moving on
// when one reports sm.ErrNotFound.
type Chain struct {
	sources []Source
}

// NewChain creates a chain over the given sources.
func NewChain(sources ...Source) *Chain {
	return &Chain{sources: sources}
}

// Add appends a source to the chain.
func (c *Chain) Add(src Source) {
	c.sources = append(c.sources, src)
}

// Description tries each source until one succeeds. Errors other than
// sm.ErrNotFound stop the chain.
func (c *Chain) Description(ctx context.Context, url string) (*document.Document, error) {
	for _, src := range c.sources {
		doc, err := src.Description(ctx, url)
		if err == nil && doc != nil {
			return doc, nil
		}
		if err != nil && !errors.Is(err, sm.ErrNotFound) {
			return nil, err
		}
	}
	return nil, sm.ErrNotFound
}

// Caching wraps a Source with an LRU keyed by URL. Failed lookups are
// not cached.
type Caching struct {
	source Source
	cache  *cache.LRU[string, *document.Document]
}

// NewCaching creates a caching wrapper holding up to size documents.
func NewCaching(source Source, size int) *Caching {
	return &Caching{
		source: source,
		cache:  cache.New[string, *document.Document](size),
	}
}

// Description checks the cache first, then the wrapped source.
func (c *Caching) Description(ctx context.Context, url string) (*document.Document, error) {
	if doc, ok := c.cache.Get(url); ok {
		return doc, nil
	}

	doc, err := c.source.Description(ctx, url)
	if err != nil {
		return nil, err
	}

	c.cache.Set(url, doc)
	return doc, nil
}

// Stats exposes the underlying cache counters.
func (c *Caching) Stats() (hits, misses uint64) {
	return c.cache.Stats()
}
