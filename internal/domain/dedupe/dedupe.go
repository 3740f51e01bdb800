// Package dedupe remembers the outcome of requests by idempotency key so a
// retried request replays the original result instead of running again.
package dedupe

import (
	"container/list"
	"context"
	"sync"
	"sync/atomic"
)

const defaultMaxSize = 10000

// Status is what Reserve found for a key.
type Status int

// Reserve outcomes.
const (
	// Reserved means the key was new and now belongs to the caller.
	Reserved Status = iota
	// Pending means another caller holds the key and has not completed.
	Pending
	// Completed means the key has a stored value.
	Completed
)

type entry[V any] struct {
	key       string
	value     V
	completed bool
}

// Cache maps idempotency keys to results. Bounded caches evict the oldest
// completed key first; pending keys are never evicted.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*list.Element
	order   *list.List // front is oldest
	maxSize int        // 0 or negative means unbounded
	size    atomic.Int64
}

// New creates a cache with configuration options.
func New[V any](opts ...Option) *Cache[V] {
	cfg := config{maxSize: defaultMaxSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Cache[V]{
		entries: make(map[string]*list.Element),
		order:   list.New(),
		maxSize: cfg.maxSize,
	}
}

// Reserve atomically checks key and claims it if unseen. The stored value is
// returned when Status is Completed.
func (c *Cache[V]) Reserve(_ context.Context, key string) (V, Status) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		if e.completed {
			return e.value, Completed
		}
		return zero, Pending
	}

	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldestCompleted()
	}
	c.entries[key] = c.order.PushBack(&entry[V]{key: key})
	c.size.Add(1)
	return zero, Reserved
}

// Complete stores the value for a reserved key.
func (c *Cache[V]) Complete(_ context.Context, key string, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		e := el.Value.(*entry[V])
		e.value = v
		e.completed = true
	}
}

// Release forgets a reserved key so the request can be retried.
func (c *Cache[V]) Release(_ context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.order.Remove(el)
		delete(c.entries, key)
		c.size.Add(-1)
	}
}

// Size returns the current number of keys.
func (c *Cache[V]) Size() int64 {
	return c.size.Load()
}

// evictOldestCompleted must be called with c.mu held.
func (c *Cache[V]) evictOldestCompleted() {
	for el := c.order.Front(); el != nil; el = el.Next() {
		e := el.Value.(*entry[V])
		if !e.completed {
			continue
		}
		c.order.Remove(el)
		delete(c.entries, e.key)
		c.size.Add(-1)
		return
	}
}
