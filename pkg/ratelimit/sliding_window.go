package ratelimit

import (
	"context"
	"time"
)

// SlidingWindow implements a sliding window rate limiter that tracks
// individual request timestamps within a moving time window. A request is
// rejected when the window already holds limit timestamps; rejected attempts
// are not recorded.
type SlidingWindow struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// Option configures a SlidingWindow.
type Option func(*SlidingWindow)

// WithClock overrides the time source used by Allow and Status.
func WithClock(now func() time.Time) Option {
	return func(sw *SlidingWindow) {
		if now != nil {
			sw.now = now
		}
	}
}

// NewSlidingWindow creates a new sliding window rate limiter.
func NewSlidingWindow(store Store, limit int, window time.Duration, opts ...Option) (*SlidingWindow, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if window <= 0 {
		return nil, ErrInvalidInterval
	}

	sw := &SlidingWindow{
		store:  store,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(sw)
	}

	return sw, nil
}

// Allow checks if a single request is allowed for the given key.
func (sw *SlidingWindow) Allow(ctx context.Context, key string) (*Result, error) {
	return sw.allowN(ctx, key, sw.now(), 1)
}

// AllowN checks if n requests are allowed for the given key.
func (sw *SlidingWindow) AllowN(ctx context.Context, key string, n int) (*Result, error) {
	return sw.allowN(ctx, key, sw.now(), n)
}

// AllowAt checks a single request for key as if it arrived at now.
func (sw *SlidingWindow) AllowAt(ctx context.Context, key string, now time.Time) (*Result, error) {
	return sw.allowN(ctx, key, now, 1)
}

func (sw *SlidingWindow) allowN(ctx context.Context, key string, now time.Time, n int) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}
	if n <= 0 {
		n = 1
	}

	allowed, count, oldest, err := sw.store.RecordIfAllowed(ctx, key, now, sw.window, sw.limit, n)
	if err != nil {
		return nil, err
	}

	return sw.result(allowed, count, oldest, now), nil
}

// Status returns the current rate limit status without consuming a slot.
func (sw *SlidingWindow) Status(ctx context.Context, key string) (*Result, error) {
	if key == "" {
		return nil, ErrKeyRequired
	}

	now := sw.now()
	count, oldest, err := sw.store.CountInWindow(ctx, key, now, sw.window)
	if err != nil {
		return nil, err
	}

	return sw.result(int(count) < sw.limit, count, oldest, now), nil
}

// Reset resets the rate limit for the given key.
func (sw *SlidingWindow) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}

	return sw.store.Delete(ctx, key)
}

func (sw *SlidingWindow) result(allowed bool, count int64, oldest, now time.Time) *Result {
	resetAt := now.Add(sw.window)
	if count > 0 && !oldest.IsZero() {
		resetAt = oldest.Add(sw.window)
	}

	return &Result{
		Allowed:   allowed,
		Limit:     sw.limit,
		Remaining: max(0, sw.limit-int(count)),
		ResetAt:   resetAt,
	}
}
