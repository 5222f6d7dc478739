package rates

import (
	"context"
	"sync"
	"time"
)

// Cache stores rates under the instrument ID. Get reports ok=false for
// missing or expired entries; implementations never return stale values.
type Cache interface {
	Get(ctx context.Context, key string) (rate float64, ok bool, err error)
	Set(ctx context.Context, key string, rate float64, ttl time.Duration) error
}

type memoryEntry struct {
	rate    float64
	expires time.Time
}

// MemoryCache is a process-local Cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]memoryEntry{}, now: time.Now}
}

func (c *MemoryCache) Get(_ context.Context, key string) (float64, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return 0, false, nil
	}
	if !c.now().Before(e.expires) {
		c.mu.Lock()
		if cur, ok := c.entries[key]; ok && cur == e {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return 0, false, nil
	}
	return e.rate, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, rate float64, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{rate: rate, expires: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = map[string]memoryEntry{}
	c.mu.Unlock()
}
