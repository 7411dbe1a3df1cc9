// Package ratelimit provides a fixed-window request limiter keyed by caller
// identity and endpoint class. This is part of the platform layer and
// contains no business logic.
package ratelimit

import (
	"fmt"
	"sync"
	"time"

	"rental_portal_backend/platform/apperr"
)

// Class groups endpoints sharing a request ceiling.
type Class string

const (
	// ClassRead covers list/search traffic.
	ClassRead Class = "read"
	// ClassWrite covers creation/mutation traffic.
	ClassWrite Class = "write"
)

// DefaultWindow is the interval over which counts are accumulated.
const DefaultWindow = time.Minute

// Default per-window ceilings. Read traffic is keystroke-driven and gets a
// generous ceiling; writes are strict.
const (
	DefaultReadCeiling  = 100
	DefaultWriteCeiling = 20
)

type record struct {
	count       int
	windowStart time.Time
}

// Limiter counts requests per (identity, class) pair over a fixed window.
// Increments are atomic under a single mutex; a lost update would under-count
// and defeat the limiter.
type Limiter struct {
	mu       sync.Mutex
	records  map[string]*record
	ceilings map[Class]int
	window   time.Duration
	now      func() time.Time
}

// Option customizes a Limiter.
type Option func(*Limiter)

// WithWindow overrides the window duration.
func WithWindow(window time.Duration) Option {
	return func(l *Limiter) { l.window = window }
}

// WithCeiling overrides the ceiling for a class.
func WithCeiling(class Class, ceiling int) Option {
	return func(l *Limiter) { l.ceilings[class] = ceiling }
}

// WithClock overrides the clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

// New creates a Limiter with default ceilings. Construct one per service
// instance and pass it by reference; the limiter holds the only shared state.
func New(opts ...Option) *Limiter {
	l := &Limiter{
		records: make(map[string]*record),
		ceilings: map[Class]int{
			ClassRead:  DefaultReadCeiling,
			ClassWrite: DefaultWriteCeiling,
		},
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Check increments the counter for (identity, class), resetting the window
// when it has elapsed, and returns a KindRateLimited error when the
// post-increment count exceeds the class ceiling. It is O(1) and must run
// before any expensive work in the request path.
func (l *Limiter) Check(identity string, class Class) error {
	ceiling, ok := l.ceilings[class]
	if !ok {
		return apperr.Internal(fmt.Sprintf("unknown endpoint class %q", class))
	}

	key := identity + "|" + string(class)
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	rec, exists := l.records[key]
	if !exists || now.Sub(rec.windowStart) > l.window {
		rec = &record{windowStart: now}
		l.records[key] = rec
	}

	// The ceiling applies to a fresh window too: a ceiling of zero admits
	// nothing, not one request per window.
	rec.count++
	if rec.count > ceiling {
		return apperr.RateLimited("too many requests, slow down")
	}
	return nil
}

// Reset clears all counters. Intended for tests.
func (l *Limiter) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = make(map[string]*record)
}
