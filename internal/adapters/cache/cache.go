// Package cache memoizes evaluation results keyed by input fingerprints.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
)

// Default cache configuration constants.
const (
	defaultMaxSize = 4096
)

var separator = []byte{0}

// Fingerprint hashes parts into a single key. Parts are separated so that
// ("ab", "c") and ("a", "bc") produce different keys.
func Fingerprint(parts ...string) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		_, _ = d.WriteString(p)
		_, _ = d.Write(separator)
	}
	return d.Sum64()
}

// Cache is a bounded map with first-in first-out eviction.
// If maxSize > 0: bounded mode, the oldest entry is evicted on overflow.
// If maxSize <= 0: unbounded mode (no eviction, no size limit).
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[uint64]V
	order   []uint64 // ring of keys in insertion order, bounded mode only
	next    int      // ring slot that will be overwritten next
	maxSize int

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates a cache with configuration options.
func New[V any](opts ...Option) *Cache[V] {
	cfg := config{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Cache[V]{
		entries: make(map[uint64]V),
		maxSize: cfg.maxSize,
	}
	if c.maxSize > 0 {
		c.order = make([]uint64, 0, c.maxSize)
	}
	return c
}

// Get returns the value cached under key.
func (c *Cache[V]) Get(key uint64) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return v, ok
}

// Put stores v under key. Overwriting an existing key keeps its position.
func (c *Cache[V]) Put(key uint64, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = v
		return
	}

	if c.maxSize > 0 {
		if len(c.order) < c.maxSize {
			c.order = append(c.order, key)
		} else {
			delete(c.entries, c.order[c.next])
			c.order[c.next] = key
			c.next = (c.next + 1) % c.maxSize
		}
	}
	c.entries[key] = v
}

// Len returns the number of cached entries.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stats returns the hit and miss counters.
func (c *Cache[V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
