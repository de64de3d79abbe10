package middleware

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/KirkDiggler/pretty-help-bot/internal/discord/v2/core"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	Logger *zap.Logger
}

// RateLimitStore tracks rate limit data
type RateLimitStore interface {
	// Increment increments the counter for a key and returns the new count
	Increment(ctx context.Context, key string, window time.Duration) (int, error)

	// Reset resets the counter for a key
	Reset(ctx context.Context, key string) error
}

// defaultKeyFunc uses user ID as the rate limit key
func defaultKeyFunc(ctx *core.InteractionContext) string {
	return ctx.UserID
}

// RateLimitMiddleware rejects interactions over the limit with an ephemeral notice
func RateLimitMiddleware(config *RateLimitConfig) core.Middleware {
	if config.KeyFunc == nil {
		config.KeyFunc = defaultKeyFunc
	}
	if config.Message == "" {
		config.Message = fmt.Sprintf("You're doing that too fast! Please wait %v before trying again.", config.Window)
	}
	if config.Store == nil {
		config.Store = NewMemoryRateLimitStore()
	}
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(next core.Handler) core.Handler {
		return core.HandlerFunc(func(ctx *core.InteractionContext) (*core.HandlerResult, error) {
			key := config.KeyFunc(ctx)
			if key == "" || config.MaxRequests <= 0 {
				return next.Handle(ctx)
			}

			count, err := config.Store.Increment(ctx.Context, key, config.Window)
			if err != nil {
				// fail open
				logger.Warn("Rate limit store failed", zap.String("key", key), zap.Error(err))
				return next.Handle(ctx)
			}

			if count > config.MaxRequests {
				logger.Debug("Rate limited", zap.String("key", key), zap.Int("count", count))
				return &core.HandlerResult{
					Response: core.NewEphemeralResponse("⏱️ " + config.Message),
				}, nil
			}

			return next.Handle(ctx)
		})
	}
}

// UserRateLimitMiddleware applies per-user rate limiting
func UserRateLimitMiddleware(maxRequests int, window time.Duration, store RateLimitStore) core.Middleware {
	return RateLimitMiddleware(&RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		KeyFunc:     defaultKeyFunc,
		Store:       store,
	})
}

// CommandRateLimitMiddleware applies rate limiting per user and command
func CommandRateLimitMiddleware(maxRequests int, window time.Duration, store RateLimitStore) core.Middleware {
	return RateLimitMiddleware(&RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      window,
		Store:       store,
		KeyFunc: func(ctx *core.InteractionContext) string {
			if ctx.IsCommand() {
				return fmt.Sprintf("%s:%s", ctx.UserID, ctx.GetCommandName())
			}
			return ctx.UserID
		},
	})
}

// MemoryRateLimitStore is an in-memory fixed window store
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
func (s *MemoryRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	b, exists := s.buckets[key]
	if !exists || !now.Before(b.resetAt) {
		b = &bucket{resetAt: now.Add(window)}
		s.buckets[key] = b
	}

	b.count++
	return b.count, nil
}

// Reset resets the counter for a key
func (s *MemoryRateLimitStore) Reset(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets, key)
	return nil
}

// Sweep removes expired buckets and returns how many were dropped
func (s *MemoryRateLimitStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for key, b := range s.buckets {
		if !now.Before(b.resetAt) {
			delete(s.buckets, key)
			removed++
		}
	}
	return removed
}

const rateLimitKeyPrefix = "ratelimit:"

// RedisRateLimitStore shares fixed windows between bot instances
type RedisRateLimitStore struct {
	client redis.UniversalClient
}

// NewRedisRateLimitStore creates a Redis-backed store
func NewRedisRateLimitStore(client redis.UniversalClient) *RedisRateLimitStore {
	if client == nil {
		panic("redis client is required")
	}
	return &RedisRateLimitStore{client: client}
}

// Increment counts a request; the first request of a window sets its expiry
func (s *RedisRateLimitStore) Increment(ctx context.Context, key string, window time.Duration) (int, error) {
	redisKey := rateLimitKeyPrefix + key

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		if err := s.client.Expire(ctx, redisKey, window).Err(); err != nil {
			return 0, fmt.Errorf("failed to set rate limit window: %w", err)
		}
	}

	return int(count), nil
}

// Reset resets the counter for a key
func (s *RedisRateLimitStore) Reset(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, rateLimitKeyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to reset rate limit: %w", err)
	}
	return nil
}
