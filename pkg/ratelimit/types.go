package ratelimit

import (
	"context"
	"time"
)

// Result contains the result of a rate limit check.
type Result struct {
	// Allowed indicates whether the request is allowed.
	Allowed bool

	// Limit is the maximum number of requests allowed in the window.
	Limit int

	// Remaining is the number of requests remaining in the current window.
	Remaining int

	// ResetAt is the time when the oldest recorded request leaves the window
	// and a slot becomes available again.
	ResetAt time.Time
}

// RetryAfter returns how long to wait before the next request is allowed.
// Returns 0 if the current request was allowed.
func (r *Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

// Limiter defines the interface for rate limiting implementations.
type Limiter interface {
	// Allow checks if a single request is allowed for the given key.
	// If allowed, it consumes one slot.
	Allow(ctx context.Context, key string) (*Result, error)

	// Status returns the current rate limit status for the given key
	// without consuming any slots.
	Status(ctx context.Context, key string) (*Result, error)

	// Reset resets the rate limit for the given key.
	Reset(ctx context.Context, key string) error
}

// Store defines the interface for sliding window storage backends.
// Implementations must treat a timestamp exactly window old as expired.
type Store interface {
	// RecordIfAllowed atomically drops timestamps older than now-window,
	// and records n timestamps at now if the remaining count plus n does not
	// exceed limit. Returns whether the timestamps were recorded, the final
	// count in the window and the oldest timestamp still in the window.
	RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (allowed bool, count int64, oldest time.Time, err error)

	// CountInWindow returns the number of timestamps within the window
	// ending at now and the oldest of them.
	CountInWindow(ctx context.Context, key string, now time.Time, window time.Duration) (count int64, oldest time.Time, err error)

	// Delete removes the given key from the store.
	Delete(ctx context.Context, key string) error
}
