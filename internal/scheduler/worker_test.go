package scheduler

import (
	"testing"
	"time"

	"rental_portal_backend/platform/logger"
)

type stubSchedulerConfig struct {
	redisURL string
}

func (c stubSchedulerConfig) GetRedisURL() string                 { return c.redisURL }
func (c stubSchedulerConfig) GetRedisTLSInsecure() bool           { return false }
func (c stubSchedulerConfig) GetAsynqQueueName() string           { return "default" }
func (c stubSchedulerConfig) GetAsynqConcurrency() int            { return 1 }
func (c stubSchedulerConfig) GetCacheWarmInterval() time.Duration { return time.Second }

func TestNewWorker_RequiresRedisURL(t *testing.T) {
	_, err := NewWorker(stubSchedulerConfig{}, nil, logger.New("test"))
	if err == nil {
		t.Fatal("expected error when redis url is not configured")
	}
}

func TestNewWorker_RejectsMalformedRedisURL(t *testing.T) {
	_, err := NewWorker(stubSchedulerConfig{redisURL: "not-a-redis-url"}, nil, logger.New("test"))
	if err == nil {
		t.Fatal("expected error for malformed redis url")
	}
}

func TestListingsCacheWarmTaskRoundTrip(t *testing.T) {
	task, err := NewListingsCacheWarmTask(ListingsCacheWarmPayload{Reason: "periodic"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Type() != TaskListingsCacheWarm {
		t.Fatalf("unexpected task type %q", task.Type())
	}

	payload, err := ParseListingsCacheWarmPayload(task)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Reason != "periodic" {
		t.Fatalf("expected reason carried through, got %q", payload.Reason)
	}
}
