package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental_portal_backend/internal/geocode"
	apphttp "rental_portal_backend/internal/http"
	"rental_portal_backend/internal/http/router"
	"rental_portal_backend/internal/listings"
	"rental_portal_backend/platform/cache"
	"rental_portal_backend/platform/config"
	"rental_portal_backend/platform/db"
	"rental_portal_backend/platform/logger"
	"rental_portal_backend/platform/ratelimit"
	"rental_portal_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	if err := withRetry(ctx, log, "database migrations", 5, 2*time.Second, func() error {
		return db.RunMigrations(ctx, cfg, "migrations")
	}); err != nil {
		log.Error("failed to run database migrations", "error", err)
		panic("failed to run database migrations: " + err.Error())
	}
	log.Info("database migrations complete")

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
	log.Info("database connection established")

	// Ephemeral cache: Redis when configured, process-local memory otherwise.
	store := cache.NewStore(ctx, cfg.GetRedisURL(), log)
	if memory, ok := store.(*cache.Memory); ok {
		memory.StartSweeper(ctx, time.Minute)
	}

	// Shared validator instance for dependency injection
	val := validator.New()

	// Fixed-window request limiter, one per process.
	limiter := ratelimit.New(
		ratelimit.WithWindow(cfg.GetRateWindow()),
		ratelimit.WithCeiling(ratelimit.ClassRead, cfg.GetRateReadCeiling()),
		ratelimit.WithCeiling(ratelimit.ClassWrite, cfg.GetRateWriteCeiling()),
	)

	// Geocoding collaborator: best-effort, bounded timeout, no retry.
	geoClient := geocode.NewClient(cfg, log)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	listingsModule := listings.NewModule(pool, store, geoClient, cfg, val, log)

	// Prime the hot list so the first request after boot is served warm.
	if err := listingsModule.WarmCache(ctx); err != nil {
		log.Warn("initial cache warm failed", "error", err)
	}

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	app := &apphttp.App{
		Config:  cfg,
		Logger:  log,
		Health:  db.NewPoolAdapter(pool),
		Limiter: limiter,
		Modules: []apphttp.Module{
			listingsModule,
		},
	}

	engine := router.New(app)

	srvErr := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		srvErr <- engine.Run(cfg.HTTPAddr)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = shutdownCtx
	case err := <-srvErr:
		if err != nil {
			log.Error("server error", "error", err)
			panic("server error: " + err.Error())
		}
	}
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
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
