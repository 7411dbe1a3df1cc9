package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"rental_portal_backend/platform/logger"
)

func TestNewStore_EmptyURLFallsBackToMemory(t *testing.T) {
	store := NewStore(context.Background(), "", logger.New("test"))
	if _, ok := store.(*Memory); !ok {
		t.Fatalf("expected memory fallback, got %T", store)
	}
}

func TestNewStore_InvalidURLFallsBackToMemory(t *testing.T) {
	store := NewStore(context.Background(), "not-a-url", logger.New("test"))
	if _, ok := store.(*Memory); !ok {
		t.Fatalf("expected memory fallback, got %T", store)
	}
}

func TestRedis_SetThenGet(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store := NewStore(ctx, "redis://"+mr.Addr(), logger.New("test"))
	if _, ok := store.(*Redis); !ok {
		t.Fatalf("expected redis store, got %T", store)
	}

	store.Set(ctx, "listings:hot", []byte(`[]`), time.Minute)

	payload, ok := store.Get(ctx, "listings:hot")
	if !ok {
		t.Fatal("expected hit")
	}
	if string(payload) != `[]` {
		t.Fatalf("expected stored payload back, got %q", payload)
	}
}

func TestRedis_ExpiredKeyIsMiss(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	store := NewStore(ctx, "redis://"+mr.Addr(), logger.New("test"))
	store.Set(ctx, "listings:hot", []byte(`[]`), 30*time.Second)

	mr.FastForward(time.Minute)

	if _, ok := store.Get(ctx, "listings:hot"); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
}
