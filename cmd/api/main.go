// Copyright (c) 2026 IronLog. All rights reserved.

// Command api is the entry point for the IronLog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ironlog-app/ironlog/internal/api"
	"github.com/ironlog-app/ironlog/internal/fitness/movement"
	"github.com/ironlog-app/ironlog/internal/fitness/nutrition"
	"github.com/ironlog-app/ironlog/internal/fitness/weight"
	"github.com/ironlog-app/ironlog/internal/fitness/workout"
	"github.com/ironlog-app/ironlog/internal/platform/config"
	"github.com/ironlog-app/ironlog/internal/platform/constants"
	"github.com/ironlog-app/ironlog/internal/platform/migration"
	pgstore "github.com/ironlog-app/ironlog/internal/platform/postgres"
	redisstore "github.com/ironlog-app/ironlog/internal/platform/redis"
	"github.com/ironlog-app/ironlog/internal/platform/sec"
	"github.com/ironlog-app/ironlog/internal/users/account"
	"github.com/ironlog-app/ironlog/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 7. Identity & Sessions ────────────────────────────────────────────
	tokenCodec := sec.NewTokenCodec(cfg.SessionSecret)
	userRepository := auth.NewUserRepository(pool)
	attemptRepository := auth.NewAttemptRepository(pool)
	loginLimiter := auth.NewLoginLimiter(attemptRepository)
	sessionManager := auth.NewSessionManager(tokenCodec, userRepository, cfg.IsProduction())
	authService := auth.NewService(userRepository, loginLimiter)
	authHandler := auth.NewHandler(authService, sessionManager)

	accountRepository := account.NewRepository(pool)
	accountService := account.NewService(accountRepository, log)
	accountHandler := account.NewHandler(accountService)

	// ── 8. Fitness Domain ─────────────────────────────────────────────────
	movementRepository := movement.NewRepository(pool)
	movementService := movement.NewService(movementRepository)
	movementHandler := movement.NewHandler(movementService)

	workoutRepository := workout.NewRepository(pool)
	workoutService := workout.NewService(workoutRepository, movementRepository)
	workoutHandler := workout.NewHandler(workoutService)

	weightRepository := weight.NewRepository(pool)
	weightPreferences := weight.NewPreferenceStore(pool)
	weightService := weight.NewService(weightRepository, weightPreferences)
	weightHandler := weight.NewHandler(weightService)

	nutritionRepository := nutrition.NewRepository(pool)
	nutritionCache := nutrition.NewTotalsCache(rdb)
	nutritionService := nutrition.NewService(nutritionRepository, nutritionCache, log)
	nutritionHandler := nutrition.NewHandler(nutritionService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Account:   accountHandler,
		Movement:  movementHandler,
		Workout:   workoutHandler,
		Weight:    weightHandler,
		Nutrition: nutritionHandler,
	}

	server := api.NewServer(context.Background(), cfg, log, sessionManager, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
