// Package cache provides the bounded, time-expiring queue of parse requests
// awaiting replay after a failure.
package cache

import (
	"context"
	"time"

	"github.com/jacolabs/eventflow/internal/core/domain"
)

// RequestCache is a bounded FIFO of failed parse requests. Insertion beyond
// capacity evicts the oldest entry. Entries older than the expiration window
// are dropped lazily when scanned.
type RequestCache interface {
	// Enqueue adds a request. If the cache is full the oldest entry is
	// evicted first.
	Enqueue(ctx context.Context, req *domain.CachedRequest) error

	// DueForRetry returns the non-expired entries, oldest first.
	DueForRetry(ctx context.Context, now time.Time) ([]*domain.CachedRequest, error)

	// Remove deletes a request by ID.
	Remove(ctx context.Context, id string) error

	// Count returns the number of live entries.
	Count(ctx context.Context) (int, error)
}
