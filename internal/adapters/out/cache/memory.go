// Package cache provides an in-process TTL key/value store implementing
// ports.Cache. Entries expire lazily on read plus a periodic sweep on write,
// so the map does not grow without bound under churn.
package cache

import (
	"context"
	"sync"
	"time"
)

const sweepInterval = time.Minute

type entry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a mutex-guarded map with per-entry expiry. Safe for
// concurrent use.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]entry
	lastSweep time.Time
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]entry)}
}

// Get returns the cached value and whether it was present and fresh.
func (c *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another Set may have refreshed it.
		if current, still := c.entries[key]; still && time.Now().After(current.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return "", false
	}

	return e.value, true
}

// Set stores a value with the given time to live. Non-positive ttl entries
// are dropped immediately.
func (c *MemoryCache) Set(_ context.Context, key, value string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}

	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{value: value, expiresAt: now.Add(ttl)}
	c.maybeSweep(now)
}

// maybeSweep removes expired entries at most once per sweep interval.
// Caller must hold the write lock.
func (c *MemoryCache) maybeSweep(now time.Time) {
	if !c.lastSweep.IsZero() && now.Sub(c.lastSweep) < sweepInterval {
		return
	}
	c.lastSweep = now

	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}
