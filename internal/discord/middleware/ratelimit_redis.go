package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRateLimitStore keeps counters in Redis so limits hold across restarts and replicas
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a Redis-backed rate limit store
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	if client == nil {
		panic("redis client is required")
	}

	return &RedisRateLimitStore{client: client}
}

// Increment bumps the counter and starts its window on the first hit
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	ttl := pipe.PTTL(ctx, key)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	// No expiry yet means this hit opened the window
	if ttl.Val() < 0 {
		if err := s.client.PExpire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set window on %s: %w", key, err)
		}
	}

	return int(incr.Val()), nil
}

// Reset resets the counter for a key
func (s *RedisRateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to reset %s: %w", key, err)
	}
	return nil
}
