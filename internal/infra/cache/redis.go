package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jacolabs/eventflow/internal/core/domain"
	redisclient "github.com/jacolabs/eventflow/internal/infra/redis"
)

// RedisCache is a RequestCache backed by Redis, for hosts that want the
// replay queue to survive restarts. Same contract as MemoryCache.
type RedisCache struct {
	rdb      *redis.Client
	capacity int
	maxAge   time.Duration
}

// NewRedisCache creates a Redis-backed request cache.
func NewRedisCache(client *redisclient.Client, capacity int, maxAge time.Duration) *RedisCache {
	if capacity <= 0 {
		capacity = 50
	}
	return &RedisCache{
		rdb:      client.DB(),
		capacity: capacity,
		maxAge:   maxAge,
	}
}

// Key helpers
func (c *RedisCache) queueKey() string {
	return "parse_requests:pending"
}

func (c *RedisCache) requestKey(id string) string {
	return fmt.Sprintf("parse_request:%s", id)
}

// Enqueue adds a request to the queue, evicting the oldest when full.
func (c *RedisCache) Enqueue(ctx context.Context, req *domain.CachedRequest) error {
	data, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal cached request: %w", err)
	}

	// Evict oldest entries until under capacity
	count, err := c.rdb.ZCard(ctx, c.queueKey()).Result()
	if err != nil {
		return fmt.Errorf("zcard failed: %w", err)
	}
	for count >= int64(c.capacity) {
		oldest, err := c.rdb.ZPopMin(ctx, c.queueKey(), 1).Result()
		if err != nil {
			return fmt.Errorf("zpopmin failed: %w", err)
		}
		if len(oldest) == 0 {
			break
		}
		if id, ok := oldest[0].Member.(string); ok {
			c.rdb.Del(ctx, c.requestKey(id))
		}
		count--
	}

	// Store the data with the expiration window as TTL
	if err := c.rdb.Set(ctx, c.requestKey(req.ID), data, c.maxAge).Err(); err != nil {
		return fmt.Errorf("failed to set cached request: %w", err)
	}

	// Add to sorted set (score = submit time, lower = replay first)
	if err := c.rdb.ZAdd(ctx, c.queueKey(), redis.Z{
		Score:  float64(req.SubmittedAt.Unix()),
		Member: req.ID,
	}).Err(); err != nil {
		return fmt.Errorf("failed to add to queue: %w", err)
	}

	return nil
}

// DueForRetry returns the non-expired entries, oldest first.
func (c *RedisCache) DueForRetry(ctx context.Context, now time.Time) ([]*domain.CachedRequest, error) {
	ids, err := c.rdb.ZRange(ctx, c.queueKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("zrange failed: %w", err)
	}

	due := make([]*domain.CachedRequest, 0, len(ids))
	for _, id := range ids {
		data, err := c.rdb.Get(ctx, c.requestKey(id)).Bytes()
		if err == redis.Nil {
			// Data expired but ID still in queue, remove it
			c.rdb.ZRem(ctx, c.queueKey(), id)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get cached request: %w", err)
		}

		var req domain.CachedRequest
		if err := json.Unmarshal(data, &req); err != nil {
			continue
		}
		if req.Expired(now, c.maxAge) {
			c.rdb.ZRem(ctx, c.queueKey(), id)
			c.rdb.Del(ctx, c.requestKey(id))
			continue
		}
		due = append(due, &req)
	}

	return due, nil
}

// Remove deletes a request by ID.
func (c *RedisCache) Remove(ctx context.Context, id string) error {
	if err := c.rdb.ZRem(ctx, c.queueKey(), id).Err(); err != nil {
		return fmt.Errorf("failed to remove from queue: %w", err)
	}
	if err := c.rdb.Del(ctx, c.requestKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete cached request: %w", err)
	}
	return nil
}

// Count returns the number of queued requests.
func (c *RedisCache) Count(ctx context.Context) (int, error) {
	count, err := c.rdb.ZCard(ctx, c.queueKey()).Result()
	if err != nil {
		return 0, fmt.Errorf("zcard failed: %w", err)
	}
	return int(count), nil
}
