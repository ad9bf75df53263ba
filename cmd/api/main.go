package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flagphone_backend/internal/adapters"
	"flagphone_backend/internal/adapters/storage"
	"flagphone_backend/internal/countries"
	"flagphone_backend/internal/events"
	apphttp "flagphone_backend/internal/http"
	"flagphone_backend/internal/http/router"
	"flagphone_backend/internal/phoneinput"
	"flagphone_backend/internal/phoneinput/service"
	"flagphone_backend/internal/phoneinput/session"
	"flagphone_backend/platform/config"
	"flagphone_backend/platform/httpkit"
	"flagphone_backend/platform/logger"
	"flagphone_backend/platform/phone"
	"flagphone_backend/platform/validator"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = time.Minute
	limiterMaxIdle  = 10 * time.Minute
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting server", "env", cfg.Env, "addr", cfg.HTTPAddr, "defaultRegion", cfg.GetDefaultRegion())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	plan := phone.NewPlan(cfg.GetDefaultRegion())
	dir, err := countries.Load(plan, cfg.GetDisplayLocale())
	if err != nil {
		log.Error("failed to load country directory", "error", err)
		panic("failed to load country directory: " + err.Error())
	}
	if sel := countries.FromLists(cfg.GetCountriesInclude(), cfg.GetCountriesExclude()); sel.Mode != countries.ModeAll {
		dir = countries.NewDirectory(dir.Apply(sel))
	}
	log.Info("country directory loaded", "countries", dir.Len(), "locale", cfg.GetDisplayLocale().String())

	store, memStore, closeStore := initSessionStore(ctx, cfg, log)
	defer closeStore()

	flags := initFlagResolver(ctx, cfg, log)

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)
	events.SubscribeLogging(eventBus, log)

	// Shared validator instance for dependency injection
	val := validator.New()

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	countriesModule := countries.NewModule(dir, flags, val, log)
	phoneInputModule := phoneinput.NewModule(dir, plan, store, eventBus, val, log, service.Options{
		DefaultRegion: cfg.GetDefaultRegion(),
		MaxDigits:     cfg.GetPhoneMaxDigits(),
		Placeholder:   cfg.GetPlaceholderEnabled(),
	})

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	limiter := httpkit.NewIPRateLimiter(rate.Limit(cfg.GetRateLimitRPS()), cfg.GetRateLimitBurst(), log)

	app := &apphttp.App{
		Config:      cfg,
		Logger:      log,
		Health:      store,
		EventBus:    eventBus,
		RateLimiter: limiter,
		Modules: []apphttp.Module{
			countriesModule,
			phoneInputModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				removed := limiter.Sweep(limiterMaxIdle)
				if memStore != nil {
					removed += memStore.Sweep()
				}
				if removed > 0 {
					log.Debug("swept idle entries", "removed", removed)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		panic("server error: " + err.Error())
	}

	eventBus.Wait()
	log.Info("server stopped")
}

// initSessionStore returns Redis when configured, otherwise an in-process
// store. The memory store is returned separately so it can be swept.
func initSessionStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (session.Store, *session.MemoryStore, func()) {
	if !cfg.IsRedisEnabled() {
		log.Warn("REDIS_URL not configured; phone input sessions kept in memory")
		mem := session.NewMemoryStore(cfg.GetSessionTTL())
		return mem, mem, func() {}
	}

	redisStore, err := session.NewRedisStore(cfg)
	if err != nil {
		log.Error("failed to initialize redis session store", "error", err)
		panic("failed to initialize redis session store: " + err.Error())
	}
	if err := withRetry(ctx, log, "redis connection", 5, 2*time.Second, func() error {
		return redisStore.Ping(ctx)
	}); err != nil {
		log.Error("failed to connect to redis", "error", err)
		panic("failed to connect to redis: " + err.Error())
	}
	log.Info("redis session store connected", "ttl", cfg.GetSessionTTL().String())

	return redisStore, nil, func() {
		_ = redisStore.Close()
	}
}

// initFlagResolver serves presigned MinIO flag images when storage is
// configured and falls back to emoji flags otherwise.
func initFlagResolver(ctx context.Context, cfg *config.Config, log *logger.Logger) countries.FlagResolver {
	if !cfg.IsMinIOEnabled() {
		log.Info("MINIO_ENDPOINT not configured; serving emoji flags")
		return nil
	}

	storageSvc, err := storage.NewMinIOService(cfg)
	if err != nil {
		log.Error("failed to initialize storage service", "error", err)
		panic("failed to initialize storage service: " + err.Error())
	}

	bucket := cfg.GetMinioBucketFlags()
	if err := withRetry(ctx, log, "ensure flags bucket", 5, 2*time.Second, func() error {
		return storageSvc.EnsureBucketExists(ctx, bucket)
	}); err != nil {
		log.Error("failed to ensure storage bucket exists", "error", err, "bucket", bucket)
		panic("failed to ensure storage bucket exists: " + err.Error())
	}
	log.Info("storage service initialized", "flagsBucket", bucket)

	return adapters.NewFlagPresigner(storageSvc, bucket, cfg.GetFlagURLTTL())
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
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
