package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// MemoryCache is the default in-process RequestCache.
type MemoryCache struct {
	mu       sync.Mutex
	entries  []*domain.CachedRequest
	capacity int
	maxAge   time.Duration
}

// NewMemoryCache creates a bounded in-memory request cache.
func NewMemoryCache(capacity int, maxAge time.Duration) *MemoryCache {
	if capacity <= 0 {
		capacity = 50
	}
	return &MemoryCache{
		capacity: capacity,
		maxAge:   maxAge,
	}
}

// Enqueue adds a request, evicting the oldest entry when full.
func (c *MemoryCache) Enqueue(ctx context.Context, req *domain.CachedRequest) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.capacity {
		c.entries = c.entries[1:]
	}
	c.entries = append(c.entries, req)
	return nil
}

// DueForRetry returns live entries oldest first, dropping expired ones.
func (c *MemoryCache) DueForRetry(ctx context.Context, now time.Time) ([]*domain.CachedRequest, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	live := c.entries[:0]
	var due []*domain.CachedRequest
	for _, e := range c.entries {
		if e.Expired(now, c.maxAge) {
			continue
		}
		live = append(live, e)
		due = append(due, e)
	}
	c.entries = live
	return due, nil
}

// Remove deletes a request by ID.
func (c *MemoryCache) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.entries[:0]
	for _, e := range c.entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	c.entries = kept
	return nil
}

// Count returns the number of entries currently held.
func (c *MemoryCache) Count(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries), nil
}
