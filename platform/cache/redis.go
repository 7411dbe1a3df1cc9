package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"rental_portal_backend/platform/logger"
)

// Redis is a Store backed by a shared Redis instance, so multiple API
// processes short-circuit the same hot keys. Expiry is delegated to Redis
// TTLs. Errors degrade to a miss; the cache is a load shedder, not a source
// of truth.
type Redis struct {
	client *redis.Client
	log    *logger.Logger
}

// NewStore connects to redisURL and returns a Redis-backed Store. When the
// URL is empty or the instance is unreachable it falls back to a process-local
// Memory store with a log warning, never an error: the cache service is
// optional infrastructure.
func NewStore(ctx context.Context, redisURL string, log *logger.Logger) Store {
	if redisURL == "" {
		log.Info("redis not configured, using in-memory cache")
		return NewMemory()
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Warn("invalid redis url, using in-memory cache", "error", err)
		return NewMemory()
	}

	client := redis.NewClient(opt)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory cache", "error", err)
		_ = client.Close()
		return NewMemory()
	}

	return &Redis{client: client, log: log}
}

// Get returns the payload for key, treating any Redis error as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	payload, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn("redis get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return payload, true
}

// Set stores payload under key with a Redis-side TTL.
func (r *Redis) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		r.log.Warn("redis set failed", "key", key, "error", err)
	}
}
