// Package scheduler runs the background worker that keeps the hot listings
// cache warm. It is an optimization layer: the API stays correct when no
// worker is running.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/logger"
)

// CacheWarmer refreshes the hot listings cache. Satisfied by the listings
// service.
type CacheWarmer interface {
	WarmHotList(ctx context.Context) error
}

// Worker consumes scheduler tasks from the shared Redis instance.
type Worker struct {
	server    *asynq.Server
	scheduler *asynq.Scheduler
	mux       *asynq.ServeMux
	warmer    CacheWarmer
	log       *logger.Logger
}

// NewWorker builds the asynq server plus the periodic schedule that enqueues
// the cache warm task at the configured interval.
func NewWorker(cfg config.SchedulerConfig, warmer CacheWarmer, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queue: 1,
		},
	})

	interval := cfg.GetCacheWarmInterval()
	if interval <= 0 {
		interval = defaultWarmInterval
	}

	sched := asynq.NewScheduler(opt, nil)
	warmTask, err := NewListingsCacheWarmTask(ListingsCacheWarmPayload{Reason: "periodic"})
	if err != nil {
		return nil, err
	}
	if _, err := sched.Register(fmt.Sprintf("@every %s", interval), warmTask, asynq.Queue(queue)); err != nil {
		return nil, err
	}

	mux := asynq.NewServeMux()
	w := &Worker{
		server:    server,
		scheduler: sched,
		mux:       mux,
		warmer:    warmer,
		log:       log,
	}

	mux.HandleFunc(TaskListingsCacheWarm, w.handleListingsCacheWarm)

	return w, nil
}

// Run starts the periodic scheduler and the task server, blocking until ctx
// is cancelled, then shuts both down.
func (w *Worker) Run(ctx context.Context) error {
	if err := w.scheduler.Start(); err != nil {
		return err
	}
	if err := w.server.Start(w.mux); err != nil {
		w.scheduler.Shutdown()
		return err
	}

	<-ctx.Done()
	w.log.Info("scheduler shutting down")
	w.scheduler.Shutdown()
	w.server.Shutdown()
	return nil
}

func (w *Worker) handleListingsCacheWarm(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseListingsCacheWarmPayload(task)
	if err != nil {
		return err
	}

	if err := w.warmer.WarmHotList(ctx); err != nil {
		w.log.Error("cache warm failed", "reason", payload.Reason, "error", err)
		return err
	}

	w.log.Debug("hot list cache warmed", "reason", payload.Reason)
	return nil
}

const defaultWarmInterval = 20 * time.Second

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Network:   "tcp",
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
