package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental_portal_backend/internal/geocode"
	"rental_portal_backend/internal/listings/repository"
	"rental_portal_backend/internal/listings/service"
	"rental_portal_backend/internal/scheduler"
	"rental_portal_backend/platform/cache"
	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/db"
	"rental_portal_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	store := cache.NewStore(ctx, cfg.GetRedisURL(), log)
	if memory, ok := store.(*cache.Memory); ok {
		memory.StartSweeper(ctx, time.Minute)
	}

	geoClient := geocode.NewClient(cfg, log)
	svc := service.New(repository.New(pool), geoClient, store, cfg, log)

	worker, err := scheduler.NewWorker(cfg, svc, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	if err := worker.Run(ctx); err != nil {
		log.Error("scheduler worker failed", "error", err)
		panic("scheduler worker failed: " + err.Error())
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
