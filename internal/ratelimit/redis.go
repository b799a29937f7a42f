package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// RedisLimiter is a fixed-window limiter sharing counters through redis, for
// deployments running more than one API instance.
type RedisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	logger zerolog.Logger
}

// NewRedisLimiter creates a redis-backed fixed-window limiter. It verifies
// connectivity by pinging the server.
func NewRedisLimiter(ctx context.Context, client *redis.Client, limit int, windowLen time.Duration, logger zerolog.Logger) (*RedisLimiter, error) {
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return &RedisLimiter{
		client: client,
		limit:  limit,
		window: windowLen,
		logger: logger.With().Str("component", "redis-limiter").Logger(),
	}, nil
}

// Allow increments the key's counter and reports whether it is within the
// limit. The key expires when its window does, so a fresh window starts at 1.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := "ratelimit:track:" + key

	count, err := l.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	if count == 1 {
		if err := l.client.Expire(ctx, redisKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	if count > int64(l.limit) {
		l.logger.Debug().Str("key", key).Int64("count", count).Msg("rate limit exceeded")
		return false, nil
	}

	return true, nil
}
