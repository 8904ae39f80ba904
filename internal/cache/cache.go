// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a very simple random-replacement cache to memoize
// expensive operations, such as compiling format patterns or loading
// timezone rules.
package cache

import (
	"sync"
)

// DefaultSize is the default size of a cache.
const DefaultSize = 1 << 10

// Cache is a simple random-replacement cache suitable to memoize expensive
// operations.
//
// Its zero value is safe to use. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	// MaxSize is the maximum size of the cache. If it is zero, DefaultSize is used.
	//
	// If V implements Sizer, it is used to estimate size. Otherwise every
	// element is assumed to have size 1.
	//
	// MaxSize is not safe to mutate concurrently with calls to Get.
	MaxSize int64

	mu sync.RWMutex
	m  map[K]V
	n  int64
}

// Lookup returns the element cached for k, if any.
func (c *Cache[K, V]) Lookup(k K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.m[k]
	return v, ok
}

// Get the element associated with k from the cache, using fill to populate
// missing elements.
func (c *Cache[K, V]) Get(k K, fill func(K) V) V {
	if v, ok := c.Lookup(k); ok {
		return v
	}
	return c.Add(k, fill(k))
}

// GetErr is like Get, for a fill function that can fail. Failures are
// returned to the caller and not cached, so a later call retries.
func (c *Cache[K, V]) GetErr(k K, fill func(K) (V, error)) (V, error) {
	if v, ok := c.Lookup(k); ok {
		return v, nil
	}
	v, err := fill(k)
	if err != nil {
		return v, err
	}
	return c.Add(k, v), nil
}

// Add stores v for k, evicting random elements if the cache is full. If
// another goroutine stored an element for k first, that one is kept and
// returned.
func (c *Cache[K, V]) Add(k K, v V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.m[k]; ok {
		return old
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = v
	c.n += size(v)
	for victim := range c.m {
		if !c.fullLocked() {
			break
		}
		if victim != k {
			c.evictLocked(victim)
		}
	}
	return v
}

// Len returns the number of cached elements.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// fullLocked returns whether c is full. c.mu must be held when calling it.
func (c *Cache[K, V]) fullLocked() bool {
	m := c.MaxSize
	if m == 0 {
		m = DefaultSize
	}
	return c.n > m
}

// Evict the element for k from the cache. If there is no such element, Evict
// is a no-op.
func (c *Cache[K, V]) Evict(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(k)
}

// evictLocked evicts the given key from the cache. c.mu must be held for
// writing when calling it.
func (c *Cache[K, V]) evictLocked(k K) {
	if v, ok := c.m[k]; ok {
		delete(c.m, k)
		c.n -= size(v)
	}
}

// Flush removes all elements from the cache.
func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
	c.n = 0
}

// Sizer is an optional interface for a value to report its own size. The
// reported size must be positive and never change for the same receiver.
type Sizer interface {
	Size() int64
}

func size[V any](v V) int64 {
	if s, ok := any(v).(Sizer); ok {
		return s.Size()
	}
	return 1
}
