package ratelimit

import (
	"testing"
	"time"

	"rental_portal_backend/platform/apperr"
)

func TestCheck_AllowsUpToCeiling(t *testing.T) {
	limiter := New(WithCeiling(ClassRead, 3))

	for i := 0; i < 3; i++ {
		if err := limiter.Check("203.0.113.7", ClassRead); err != nil {
			t.Fatalf("request %d: expected allow, got %v", i+1, err)
		}
	}

	err := limiter.Check("203.0.113.7", ClassRead)
	if err == nil {
		t.Fatal("expected request over ceiling to be rejected")
	}
	if !apperr.Is(err, apperr.KindRateLimited) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
}

func TestCheck_WindowResetRestoresAllowance(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(
		WithCeiling(ClassRead, 2),
		WithWindow(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	limiter.Check("203.0.113.7", ClassRead)
	limiter.Check("203.0.113.7", ClassRead)
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected rejection before window reset")
	}

	// Still inside the window: rejection persists.
	now = now.Add(30 * time.Second)
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected rejection mid-window")
	}

	// Past the window: counter resets and traffic flows again.
	now = now.Add(2 * time.Minute)
	if err := limiter.Check("203.0.113.7", ClassRead); err != nil {
		t.Fatalf("expected allow after window elapsed, got %v", err)
	}
}

func TestCheck_IdentitiesAreIsolated(t *testing.T) {
	limiter := New(WithCeiling(ClassRead, 1))

	if err := limiter.Check("203.0.113.7", ClassRead); err != nil {
		t.Fatalf("expected first identity allowed, got %v", err)
	}
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected first identity exhausted")
	}
	if err := limiter.Check("198.51.100.9", ClassRead); err != nil {
		t.Fatalf("expected second identity unaffected, got %v", err)
	}
}

func TestCheck_ClassesAreIsolated(t *testing.T) {
	limiter := New(WithCeiling(ClassRead, 1), WithCeiling(ClassWrite, 1))

	if err := limiter.Check("203.0.113.7", ClassRead); err != nil {
		t.Fatalf("expected read allowed, got %v", err)
	}
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected read exhausted")
	}
	if err := limiter.Check("203.0.113.7", ClassWrite); err != nil {
		t.Fatalf("expected write allowance untouched by read traffic, got %v", err)
	}
}

func TestCheck_ZeroCeilingAdmitsNothing(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	limiter := New(
		WithCeiling(ClassRead, 0),
		WithWindow(time.Minute),
		WithClock(func() time.Time { return now }),
	)

	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected zero ceiling to reject the very first request")
	}

	// A fresh window must not admit one either.
	now = now.Add(2 * time.Minute)
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected zero ceiling to reject after a window reset")
	}
}

func TestCheck_UnknownClassRejected(t *testing.T) {
	limiter := New()
	if err := limiter.Check("203.0.113.7", Class("admin")); err == nil {
		t.Fatal("expected unknown class to be rejected")
	}
}

func TestReset_ClearsCounters(t *testing.T) {
	limiter := New(WithCeiling(ClassRead, 1))

	limiter.Check("203.0.113.7", ClassRead)
	if err := limiter.Check("203.0.113.7", ClassRead); err == nil {
		t.Fatal("expected exhausted before reset")
	}

	limiter.Reset()
	if err := limiter.Check("203.0.113.7", ClassRead); err != nil {
		t.Fatalf("expected allow after reset, got %v", err)
	}
}
