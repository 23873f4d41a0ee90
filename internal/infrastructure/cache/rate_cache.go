// Package cache provides the bounded in-process exchange-rate cache shared by
// the request path and the refresh task.
package cache

import (
	"sync"
	"time"

	"github.com/Systemsaholic/tailfire-sub005/internal/domain/model"
	"github.com/Systemsaholic/tailfire-sub005/internal/domain/port"
)

// Compile-time interface check.
var _ port.RateCache = (*RateCache)(nil)

type entry struct {
	rate      model.ResolvedRate
	expiresAt time.Time
}

// RateCache is a TTL cache with a hard entry cap. When full it evicts the
// entry closest to expiry; expired entries are dropped lazily on read. It
// memoizes the persistent rate table, so losing an entry only costs one
// extra query.
type RateCache struct {
	mu      sync.Mutex
	entries map[string]entry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// New creates a RateCache. Non-positive size or TTL fall back to defaults.
func New(maxSize int, ttl time.Duration) *RateCache {
	if maxSize <= 0 {
		maxSize = 512
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RateCache{
		entries: make(map[string]entry, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached rate for the key if present and not expired.
func (c *RateCache) Get(key string) (model.ResolvedRate, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return model.ResolvedRate{}, false
	}
	if c.now().After(e.expiresAt) {
		delete(c.entries, key)
		return model.ResolvedRate{}, false
	}
	return e.rate, true
}

// Put stores the rate under the key, evicting the entry closest to expiry
// when the cache is at capacity.
func (c *RateCache) Put(key string, rate model.ResolvedRate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	c.entries[key] = entry{rate: rate, expiresAt: c.now().Add(c.ttl)}
}

// Len returns the number of entries currently held, expired or not.
func (c *RateCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictOldest removes the entry with the earliest expiry. Caller holds the lock.
func (c *RateCache) evictOldest() {
	var oldestKey string
	var oldestExpiry time.Time
	first := true
	for key, e := range c.entries {
		if first || e.expiresAt.Before(oldestExpiry) {
			oldestKey = key
			oldestExpiry = e.expiresAt
			first = false
		}
	}
	if !first {
		delete(c.entries, oldestKey)
	}
}
