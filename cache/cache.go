// Package cache provides a generic, thread-safe LRU used for parsed
// descriptions and memoized schema scans.
package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// LRU is a fixed-capacity least-recently-used cache.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	items    map[K]*list.Element
	order    *list.List
	capacity int

	hits   atomic.Uint64
	misses atomic.Uint64
}

type pair[K comparable, V any] struct {
	key   K
	value V
}

// New creates an LRU holding at most capacity entries.
func New[K comparable, V any](capacity int) *LRU[K, V] {
	if capacity <= 0 {
		capacity = 64
	}
	return &LRU[K, V]{
		items:    make(map[K]*list.Element, capacity),
		order:    list.New(),
		capacity: capacity,
	}
}

// Get retrieves a value, marking it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	c.hits.Add(1)
	c.order.MoveToFront(el)
	return el.Value.(pair[K, V]).value, true
}

// Set adds or updates a value, evicting the least recently used entry
// when the cache is full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value = pair[K, V]{key: key, value: value}
		c.order.MoveToFront(el)
		return
	}

	if len(c.items) >= c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			delete(c.items, oldest.Value.(pair[K, V]).key)
			c.order.Remove(oldest)
		}
	}

	c.items[key] = c.order.PushFront(pair[K, V]{key: key, value: value})
}

// GetOrSet returns the cached value for key, computing and storing it
// via fn on a miss.
func (c *LRU[K, V]) GetOrSet(key K, fn func() V) V {
	if v, ok := c.Get(key); ok {
		return v
	}
	v := fn()
	c.Set(key, v)
	return v
}

// Remove drops an entry.
func (c *LRU[K, V]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		delete(c.items, key)
		c.order.Remove(el)
	}
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Purge drops all entries.
func (c *LRU[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[K]*list.Element, c.capacity)
	c.order.Init()
}

// Stats reports hit/miss counters since creation.
func (c *LRU[K, V]) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}
