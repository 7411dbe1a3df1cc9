// Package cache provides a short-lived key-value store for hot read paths.
// Entries expire by wall-clock comparison; callers must tolerate slightly
// stale data. Nothing here survives a process restart.
package cache

import (
	"context"
	"sync"
	"time"
)

// Store is the minimal cache contract. Get returns (nil, false) on a miss;
// Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
}

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Memory is a process-local Store guarded by a single mutex. Expiry is lazy:
// stale entries are evicted on the read that observes them.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// MemoryOption customizes a Memory store.
type MemoryOption func(*Memory)

// WithClock overrides the store's clock, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *Memory) { m.now = now }
}

// NewMemory creates an empty in-memory store.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		entries: make(map[string]entry),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get returns the payload for key when present and unexpired.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		return nil, false
	}
	return e.payload, true
}

// Set stores payload under key for ttl, replacing any previous entry.
func (m *Memory) Set(_ context.Context, key string, payload []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{payload: payload, expiresAt: m.now().Add(ttl)}
}

// Sweep removes every expired entry. Lazy eviction keeps the store correct
// without it; a periodic sweep just bounds memory on keys that are never
// read again.
func (m *Memory) Sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for key, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, key)
		}
	}
}

// StartSweeper runs Sweep every interval until ctx is cancelled.
func (m *Memory) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.Sweep()
			}
		}
	}()
}
