package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements an in-memory sliding window store.
// Keys whose timestamps have all expired are swept periodically and whenever
// the number of tracked keys exceeds the configured maximum, so memory stays
// bounded by the set of recently active callers.
type MemoryStore struct {
	mu      sync.Mutex
	windows map[string]*slidingWindow

	cleanupInterval time.Duration
	initialCapacity int
	maxKeys         int
	now             func() time.Time
	stopCleanup     chan struct{}
	cleanupOnce     sync.Once
}

type slidingWindow struct {
	timestamps []time.Time
	span       time.Duration
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupInterval sets the cleanup interval for expired entries.
func WithCleanupInterval(interval time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) {
		if interval > 0 {
			s.cleanupInterval = interval
		}
	}
}

// WithInitialCapacity sets the initial capacity for sliding window timestamps.
func WithInitialCapacity(capacity int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if capacity > 0 {
			s.initialCapacity = capacity
		}
	}
}

// WithMaxKeys caps the number of tracked keys. When a new key would exceed
// the cap, expired keys are swept first; if the store is still full the
// least recently active key is evicted.
func WithMaxKeys(n int) MemoryStoreOption {
	return func(s *MemoryStore) {
		if n > 0 {
			s.maxKeys = n
		}
	}
}

// WithStoreClock overrides the time source used by the background sweep.
func WithStoreClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory store with automatic cleanup.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:         make(map[string]*slidingWindow),
		cleanupInterval: 1 * time.Minute,
		initialCapacity: 8,
		maxKeys:         100_000,
		now:             time.Now,
		stopCleanup:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	go s.cleanupLoop()

	return s
}

// RecordIfAllowed prunes, compares and inserts under a single lock so
// concurrent bursts for the same key cannot undercount.
func (s *MemoryStore) RecordIfAllowed(ctx context.Context, key string, now time.Time, window time.Duration, limit, n int) (bool, int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, exists := s.windows[key]
	if !exists {
		if len(s.windows) >= s.maxKeys {
			s.makeRoom(now)
		}
		sw = &slidingWindow{
			timestamps: make([]time.Time, 0, max(s.initialCapacity, n)),
		}
		s.windows[key] = sw
	}
	sw.span = window
	sw.prune(now.Add(-window))

	if len(sw.timestamps)+n > limit {
		return false, int64(len(sw.timestamps)), sw.oldest(), nil
	}

	for range n {
		sw.timestamps = append(sw.timestamps, now)
	}

	return true, int64(len(sw.timestamps)), sw.oldest(), nil
}

// CountInWindow returns the number of timestamps within the sliding window.
func (s *MemoryStore) CountInWindow(ctx context.Context, key string, now time.Time, window time.Duration) (int64, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sw, exists := s.windows[key]
	if !exists {
		return 0, time.Time{}, nil
	}

	sw.prune(now.Add(-window))
	if len(sw.timestamps) == 0 {
		delete(s.windows, key)
		return 0, time.Time{}, nil
	}

	return int64(len(sw.timestamps)), sw.oldest(), nil
}

// Delete removes the given key from the store.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.windows, key)
	return nil
}

// Len returns the number of tracked keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.windows)
}

// Sweep removes every key whose timestamps have all left their window.
func (s *MemoryStore) Sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	s.cleanupOnce.Do(func() {
		close(s.stopCleanup)
	})
	return nil
}

// cleanupLoop runs periodically to remove expired keys.
func (s *MemoryStore) cleanupLoop() {
	ticker := time.NewTicker(s.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Sweep(s.now())
		case <-s.stopCleanup:
			return
		}
	}
}

// sweep must be called with s.mu held.
func (s *MemoryStore) sweep(now time.Time) {
	for key, sw := range s.windows {
		sw.prune(now.Add(-sw.span))
		if len(sw.timestamps) == 0 {
			delete(s.windows, key)
		}
	}
}

// makeRoom must be called with s.mu held.
func (s *MemoryStore) makeRoom(now time.Time) {
	s.sweep(now)
	if len(s.windows) < s.maxKeys {
		return
	}

	var (
		victim string
		seen   time.Time
	)
	for key, sw := range s.windows {
		last := sw.timestamps[len(sw.timestamps)-1]
		if victim == "" || last.Before(seen) {
			victim, seen = key, last
		}
	}
	delete(s.windows, victim)
}

// prune keeps only timestamps strictly after cutoff.
func (sw *slidingWindow) prune(cutoff time.Time) {
	valid := sw.timestamps[:0]
	for _, ts := range sw.timestamps {
		if ts.After(cutoff) {
			valid = append(valid, ts)
		}
	}
	sw.timestamps = valid
}

func (sw *slidingWindow) oldest() time.Time {
	if len(sw.timestamps) == 0 {
		return time.Time{}
	}
	return sw.timestamps[0]
}
