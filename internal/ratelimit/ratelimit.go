// Package ratelimit provides fixed-window request limiting for the public
// order tracking endpoint. The limiter is an injected abstraction so a
// single-process deployment can use the in-memory implementation while a
// multi-instance deployment shares counters through redis.
package ratelimit

import "context"

// Limiter checks and increments a request counter for a caller identity
// within a fixed window.
type Limiter interface {
	// Allow records one request for the key and reports whether it is within
	// the limit.
	Allow(ctx context.Context, key string) (bool, error)
}
