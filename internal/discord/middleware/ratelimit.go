package middleware

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/KirkDiggler/battle-bot-discord/internal/discord/core"
)

// RateLimitConfig configures rate limiting behavior
type RateLimitConfig struct {
	// MaxRequests is the maximum number of requests allowed per window
	MaxRequests int

	Window time.Duration

	// KeyFunc extracts the rate limit key from context
	KeyFunc func(*core.InteractionContext) string

	// Message shown when rate limited
	Message string

	// Store for tracking rate limits (if nil, uses in-memory)
	Store RateLimitStore
}

//go:generate mockgen -destination=mock/mock_store.go -package=mockmiddleware -source=ratelimit.go

// RateLimitStore tracks rate limit data
type RateLimitStore interface {
	// Increment increments the counter for a key and returns the new count.
	// The counter expires one window after its first increment.
	Increment(ctx context.Context, key string, window time.Duration) (int, error)

	// Reset resets the counter for a key
	Reset(ctx context.Context, key string) error
}

// UserKey rate limits each user across the whole bot
func UserKey(ctx *core.InteractionContext) string {
	if ctx.UserID == "" {
		return ""
	}
	return "ratelimit:user:" + ctx.UserID
}

// RateLimitMiddleware applies rate limiting
func RateLimitMiddleware(config *RateLimitConfig) core.Middleware {
	if config.KeyFunc == nil {
		config.KeyFunc = UserKey
	}
	if config.Message == "" {
		config.Message = fmt.Sprintf("You're doing that too fast! Please wait %v before trying again.", config.Window)
	}
	if config.Store == nil {
		config.Store = NewMemoryRateLimitStore()
	}

	return func(next core.Handler) core.Handler {
		return core.Wrap(next, func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			key := config.KeyFunc(ctx)
			if key == "" {
				return next.Handle(ctx)
			}

			count, err := config.Store.Increment(ctx.Context, key, config.Window)
			if err != nil {
				// A broken store must not take the bot down
				log.Printf("[RateLimit] Store error for %s, letting request through: %v", key, err)
				return next.Handle(ctx)
			}

			if count > config.MaxRequests {
				return core.Result(core.NewEphemeralResponse("⏱️ " + config.Message)), nil
			}

			return next.Handle(ctx)
		})
	}
}

// MemoryRateLimitStore is an in-memory rate limit store for a single process
type MemoryRateLimitStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

type bucket struct {
	count   int
	resetAt time.Time
}

// NewMemoryRateLimitStore creates a new in-memory store
func NewMemoryRateLimitStore() *MemoryRateLimitStore {
	return &MemoryRateLimitStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Increment increments the counter for a key
func (s *MemoryRateLimitStore) Increment(_ context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, exists := s.buckets[key]
	if !exists || !now.Before(b.resetAt) {
		s.sweep(now)
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}

	b.count++

	return b.count, nil
}

// Reset resets the counter for a key
func (s *MemoryRateLimitStore) Reset(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, key)
	return nil
}

// sweep drops expired buckets. Caller must hold the lock.
func (s *MemoryRateLimitStore) sweep(now time.Time) {
	for key, b := range s.buckets {
		if !now.Before(b.resetAt) {
			delete(s.buckets, key)
		}
	}
}
