// Suggestrank - Personalized Suggestion Ranking Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/suggestrank

package cache

import (
	"sync"
	"time"
)

// Default sizing used when a non-positive value is supplied.
const (
	DefaultCapacity = 10000
	DefaultTTL      = 5 * time.Minute
)

// EvictReason tells an eviction callback why an entry left the cache.
type EvictReason string

// Eviction reasons.
const (
	EvictCapacity EvictReason = "capacity"
	EvictExpired  EvictReason = "expired"
	EvictRemoved  EvictReason = "removed"
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	prev      *entry[K, V]
	next      *entry[K, V]
	expiresAt time.Time
}

// LRU is a thread-safe least recently used cache with a per-entry TTL that
// restarts on every write. Reads refresh recency but not expiry.
//
//   - O(1) Get, Add, Remove
//   - O(1) eviction of the least recently used entry at capacity
//   - lazy expiration on access plus CleanupExpired for sweeping
type LRU[K comparable, V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	now      func() time.Time
	onEvict  func(key K, value V, reason EvictReason)

	items map[K]*entry[K, V]

	// head.next is the most recently used, tail.prev the least.
	head *entry[K, V]
	tail *entry[K, V]

	hits      int64
	misses    int64
	evictions int64
	expired   int64
}

// Option configures an LRU.
type Option[K comparable, V any] func(*LRU[K, V])

// WithClock replaces time.Now, mainly for tests.
func WithClock[K comparable, V any](now func() time.Time) Option[K, V] {
	return func(c *LRU[K, V]) {
		if now != nil {
			c.now = now
		}
	}
}

// WithEvictCallback registers fn to run after an entry is dropped for any
// reason other than being overwritten. fn runs without the cache lock held.
func WithEvictCallback[K comparable, V any](fn func(key K, value V, reason EvictReason)) Option[K, V] {
	return func(c *LRU[K, V]) {
		c.onEvict = fn
	}
}

// NewLRU creates a cache holding at most capacity entries, each living ttl
// after its last write.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration, opts ...Option[K, V]) *LRU[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	c := &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[K]*entry[K, V]),
		head:     &entry[K, V]{},
		tail:     &entry[K, V]{},
	}
	c.head.next = c.tail
	c.tail.prev = c.head

	for _, opt := range opts {
		opt(c)
	}
	return c
}

type dropped[K comparable, V any] struct {
	key    K
	value  V
	reason EvictReason
}

// notify runs the eviction callback outside the lock.
func (c *LRU[K, V]) notify(evicted []dropped[K, V]) {
	if c.onEvict == nil {
		return
	}
	for _, d := range evicted {
		c.onEvict(d.key, d.value, d.reason)
	}
}

// Get returns the value for key if present and not expired, marking it most
// recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	var value V
	var evicted []dropped[K, V]

	c.mu.Lock()
	e, ok := c.items[key]
	switch {
	case !ok:
		c.misses++
	case c.now().After(e.expiresAt):
		evicted = append(evicted, c.drop(e, EvictExpired))
		c.misses++
		ok = false
	default:
		c.moveToFront(e)
		c.hits++
		value = e.value
	}
	c.mu.Unlock()

	c.notify(evicted)
	return value, ok
}

// Peek returns the value without updating recency or statistics.
func (c *LRU[K, V]) Peek(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.items[key]; ok && !c.now().After(e.expiresAt) {
		return e.value, true
	}
	var zero V
	return zero, false
}

// Contains reports whether key is present and not expired.
func (c *LRU[K, V]) Contains(key K) bool {
	_, ok := c.Peek(key)
	return ok
}

// Add inserts or overwrites key, restarting its TTL.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	evicted := c.add(key, value)
	c.mu.Unlock()

	c.notify(evicted)
}

// Replace overwrites the value of a live entry without touching its expiry
// or recency. It reports false when key is absent or expired.
func (c *LRU[K, V]) Replace(key K, value V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[key]
	if !ok || c.now().After(e.expiresAt) {
		return false
	}
	e.value = value
	return true
}

// Remove deletes key and reports whether it was present.
func (c *LRU[K, V]) Remove(key K) bool {
	var evicted []dropped[K, V]

	c.mu.Lock()
	e, ok := c.items[key]
	if ok {
		evicted = append(evicted, c.drop(e, EvictRemoved))
	}
	c.mu.Unlock()

	c.notify(evicted)
	return ok
}

// IsDuplicate reports whether key was seen within the TTL. Unseen (or
// expired) keys are recorded and reported as new.
func (c *LRU[K, V]) IsDuplicate(key K) bool {
	var evicted []dropped[K, V]

	c.mu.Lock()
	if e, ok := c.items[key]; ok {
		if !c.now().After(e.expiresAt) {
			c.moveToFront(e)
			c.hits++
			c.mu.Unlock()
			return true
		}
		evicted = append(evicted, c.drop(e, EvictExpired))
	}

	var zero V
	evicted = append(evicted, c.add(key, zero)...)
	c.misses++
	c.mu.Unlock()

	c.notify(evicted)
	return false
}

// Keys returns the live keys from most to least recently used.
func (c *LRU[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	keys := make([]K, 0, len(c.items))
	for e := c.head.next; e != c.tail; e = e.next {
		if !now.After(e.expiresAt) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Clear removes every entry without invoking the eviction callback.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*entry[K, V])
	c.head.next = c.tail
	c.tail.prev = c.head
}

// CleanupExpired removes all expired entries and returns how many.
func (c *LRU[K, V]) CleanupExpired() int {
	var evicted []dropped[K, V]

	c.mu.Lock()
	now := c.now()
	for e := c.tail.prev; e != c.head; {
		prev := e.prev
		if now.After(e.expiresAt) {
			evicted = append(evicted, c.drop(e, EvictExpired))
		}
		e = prev
	}
	c.mu.Unlock()

	c.notify(evicted)
	return len(evicted)
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
	Expired   int64 `json:"expired"`
	Size      int   `json:"size"`
	Capacity  int   `json:"capacity"`
}

// Stats returns the current counters.
func (c *LRU[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
		Expired:   c.expired,
		Size:      len(c.items),
		Capacity:  c.capacity,
	}
}

// Internal methods (must be called with lock held)

func (c *LRU[K, V]) add(key K, value V) []dropped[K, V] {
	expiresAt := c.now().Add(c.ttl)

	if e, ok := c.items[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return nil
	}

	e := &entry[K, V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(e)
	c.items[key] = e

	var evicted []dropped[K, V]
	for len(c.items) > c.capacity {
		oldest := c.tail.prev
		if oldest == c.head {
			break
		}
		evicted = append(evicted, c.drop(oldest, EvictCapacity))
	}
	return evicted
}

func (c *LRU[K, V]) drop(e *entry[K, V], reason EvictReason) dropped[K, V] {
	c.unlink(e)
	delete(c.items, e.key)

	switch reason {
	case EvictCapacity:
		c.evictions++
	case EvictExpired:
		c.expired++
	}
	return dropped[K, V]{key: e.key, value: e.value, reason: reason}
}

func (c *LRU[K, V]) addToFront(e *entry[K, V]) {
	e.prev = c.head
	e.next = c.head.next
	c.head.next.prev = e
	c.head.next = e
}

func (c *LRU[K, V]) moveToFront(e *entry[K, V]) {
	c.unlink(e)
	c.addToFront(e)
}

func (c *LRU[K, V]) unlink(e *entry[K, V]) {
	e.prev.next = e.next
	e.next.prev = e.prev
}
