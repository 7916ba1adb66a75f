package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value    []byte
	storedAt time.Time
	tags     []string
}

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache is the in-process render cache. Expiry is checked on every
// read; Sweep exists so the hourly janitor can reclaim memory for entries
// nobody reads.
func NewMemoryCache(ttl time.Duration) RenderCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// NewMemoryCacheWithClock is NewMemoryCache with an injected clock, for
// tests that cross the expiry boundary.
func NewMemoryCacheWithClock(ttl time.Duration, now func() time.Time) RenderCache {
	return &memoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.now().Sub(entry.storedAt) > c.ttl {
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, tags []string) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{value: value, storedAt: c.now(), tags: tags}
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Invalidate(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) InvalidateTag(ctx context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, entry := range c.entries {
		for _, t := range entry.tags {
			if t == tag {
				delete(c.entries, key)
				break
			}
		}
	}
	return nil
}

func (c *memoryCache) Sweep(ctx context.Context) (int, error) {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for key, entry := range c.entries {
		if now.Sub(entry.storedAt) > c.ttl {
			delete(c.entries, key)
			removed++
		}
	}
	return removed, nil
}
