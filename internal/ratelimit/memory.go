package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a fixed-window limiter backed by a process-local map.
// Suitable only for single-process deployments.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	logger zerolog.Logger
}

// NewMemoryLimiter creates an in-memory fixed-window limiter.
func NewMemoryLimiter(limit int, windowLen time.Duration, logger zerolog.Logger) *MemoryLimiter {
	return &MemoryLimiter{
		limit:   limit,
		window:  windowLen,
		now:     time.Now,
		windows: make(map[string]*window),
		logger:  logger.With().Str("component", "memory-limiter").Logger(),
	}
}

// Allow records one request for the key and reports whether it is within the
// limit. Expired windows reset lazily on the next request.
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.windows[key]
	if !ok || now.After(w.resetAt) {
		l.windows[key] = &window{count: 1, resetAt: now.Add(l.window)}
		return true, nil
	}

	if w.count >= l.limit {
		l.logger.Debug().Str("key", key).Int("count", w.count).Msg("rate limit exceeded")
		return false, nil
	}

	w.count++
	return true, nil
}
