// Package sticky implements the last-known-good-value pattern that
// masks transient gaps in the feed. A cache holds one value per key
// with two windows: within the soft TTL the value still counts as
// fresh; between the soft and hard TTLs it is served stale; past the
// hard TTL it becomes unknown. Unknown is always nil, never zero.
package sticky

import "time"

// Entry is one cached value with its refresh instant. Exported so
// persistent instances can round-trip their contents through the
// durable store.
type Entry[V any] struct {
	Value     V         `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Cache is a generic soft/hard-TTL cache. Not safe for concurrent use;
// the reconciliation engine owns every instance.
type Cache[K comparable, V any] struct {
	soft    time.Duration
	hard    time.Duration
	now     func() time.Time
	entries map[K]Entry[V]
}

// New creates a cache. A soft TTL of zero means values are never
// considered fresh beyond the cycle they arrived in; the hard TTL
// bounds how long a stale value is served at all.
func New[K comparable, V any](soft, hard time.Duration, now func() time.Time) *Cache[K, V] {
	return &Cache[K, V]{
		soft:    soft,
		hard:    hard,
		now:     now,
		entries: make(map[K]Entry[V]),
	}
}

// Reconcile folds one cycle's value for key into the cache and returns
// the value to present. A non-nil fresh value is stored and returned.
// A nil fresh value returns the last stored value until the hard TTL
// lapses, after which the entry is dropped and nil is returned.
func (c *Cache[K, V]) Reconcile(key K, fresh *V) *V {
	now := c.now()

	if fresh != nil {
		c.entries[key] = Entry[V]{Value: *fresh, UpdatedAt: now}
		v := *fresh
		return &v
	}

	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if now.Sub(e.UpdatedAt) > c.hard {
		delete(c.entries, key)
		return nil
	}
	v := e.Value
	return &v
}

// Peek returns the current value without mutating the cache, applying
// the same hard-TTL cutoff as Reconcile.
func (c *Cache[K, V]) Peek(key K) *V {
	e, ok := c.entries[key]
	if !ok || c.now().Sub(e.UpdatedAt) > c.hard {
		return nil
	}
	v := e.Value
	return &v
}

// Fresh reports whether key's value was refreshed within the soft TTL.
func (c *Cache[K, V]) Fresh(key K) bool {
	e, ok := c.entries[key]
	return ok && c.now().Sub(e.UpdatedAt) <= c.soft
}

// Clear drops key immediately.
func (c *Cache[K, V]) Clear(key K) {
	delete(c.entries, key)
}

// Entries exposes the cache contents for persistence.
func (c *Cache[K, V]) Entries() map[K]Entry[V] {
	return c.entries
}

// Restore replaces the cache contents, typically from the durable
// store at startup.
func (c *Cache[K, V]) Restore(entries map[K]Entry[V]) {
	if entries == nil {
		entries = make(map[K]Entry[V])
	}
	c.entries = entries
}
