// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package cache

import "sync"

// Cache is a least-recently-used cache holding at most Capacity entries.
// A capacity of 0 disables caching; GetOrCreate then hands every value to
// the caller.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	entries  map[K]*lruNode[K, V]
	order    lruList[K, V]
	capacity int
	onEvict  func(K, V)

	hits, misses, evictions uint64
}

// New returns an empty cache. onEvict, when non-nil, is called with every
// entry that leaves the cache through eviction, replacement, Delete or
// Clear.
func New[K comparable, V any](capacity int, onEvict func(K, V)) *Cache[K, V] {
	return &Cache[K, V]{
		entries:  make(map[K]*lruNode[K, V]),
		capacity: max(capacity, 0),
		onEvict:  onEvict,
	}
}

// Get returns the value stored under key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.moveToFront(n)
	return n.value, true
}

// Set stores value under key, replacing and evicting as needed. It reports
// whether the value was kept; with a zero capacity it never is.
func (c *Cache[K, V]) Set(key K, value V) bool {
	c.mu.Lock()
	evicted := c.set(key, value)
	kept := c.capacity > 0
	c.mu.Unlock()

	c.release(evicted)
	return kept
}

// GetOrCreate returns the value under key, creating and storing it on a
// miss. create runs with the cache locked. The second result reports
// whether the returned value is owned by the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, bool, error) {
	c.mu.Lock()
	if n, ok := c.entries[key]; ok {
		c.hits++
		c.order.moveToFront(n)
		c.mu.Unlock()
		return n.value, true, nil
	}
	c.misses++
	value, err := create()
	if err != nil {
		c.mu.Unlock()
		return value, false, err
	}
	if c.capacity == 0 {
		c.mu.Unlock()
		return value, false, nil
	}
	evicted := c.set(key, value)
	c.mu.Unlock()

	c.release(evicted)
	return value, true, nil
}

// set stores value and returns the nodes that left the cache. The caller
// holds c.mu.
func (c *Cache[K, V]) set(key K, value V) []*lruNode[K, V] {
	if c.capacity == 0 {
		return nil
	}
	var out []*lruNode[K, V]
	if old, ok := c.entries[key]; ok {
		c.order.unlink(old)
		delete(c.entries, key)
		out = append(out, old)
	}
	n := &lruNode[K, V]{key: key, value: value}
	c.entries[key] = n
	c.order.pushFront(n)
	for c.order.len > c.capacity {
		old := c.order.removeOldest()
		delete(c.entries, old.key)
		c.evictions++
		out = append(out, old)
	}
	return out
}

// release runs the eviction hook outside the lock so it may use the cache.
func (c *Cache[K, V]) release(nodes []*lruNode[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, n := range nodes {
		c.onEvict(n.key, n.value)
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	n, ok := c.entries[key]
	if ok {
		c.order.unlink(n)
		delete(c.entries, key)
	}
	c.mu.Unlock()

	if ok {
		c.release([]*lruNode[K, V]{n})
	}
	return ok
}

// Clear removes every entry.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	var nodes []*lruNode[K, V]
	for n := c.order.head; n != nil; n = n.next {
		nodes = append(nodes, n)
	}
	c.entries = make(map[K]*lruNode[K, V])
	c.order.clear()
	c.mu.Unlock()

	c.release(nodes)
}

// Len returns the number of entries.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the maximum number of entries.
func (c *Cache[K, V]) Capacity() int { return c.capacity }

// Stats returns a snapshot of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Capacity:  c.capacity,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// Stats contains cache statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}
