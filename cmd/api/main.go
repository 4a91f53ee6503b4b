// Command api serves the LifeScope HTTP API and, unless disabled, drains the
// email queue in the same process.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/lifescope/backend/config"
	"github.com/lifescope/backend/internal/infra/cache"
	"github.com/lifescope/backend/internal/infra/db"
	"github.com/lifescope/backend/internal/infra/dependency"
	"github.com/lifescope/backend/internal/integration/persistence/model"
)

const shutdownGrace = 10 * time.Second

func main() {
	// .env is optional and only used in development.
	_ = godotenv.Load()

	cfg := config.Load()
	slog.SetDefault(newLogger(cfg.Log))

	if err := run(cfg); err != nil {
		slog.Error("lifescope api stopped", "error", err)
		os.Exit(1)
	}
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func run(cfg *config.Config) error {
	slog.Info("starting lifescope api",
		"environment", cfg.Server.Environment,
		"database_driver", cfg.Database.Driver,
		"ai_provider", cfg.AI.Provider,
	)

	database, err := db.Open(&cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		if err := database.Close(); err != nil {
			slog.Warn("closing database", "error", err)
		}
	}()

	if err := database.AutoMigrate(model.All()...); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Without Redis the life report is never cached and rate limits are
	// kept per process.
	var redisClient redis.UniversalClient
	if client, err := cache.NewRedisClient(ctx, &cfg.Redis); err != nil {
		slog.Warn("redis unavailable, continuing without it", "error", err)
	} else {
		redisClient = client
		defer client.Close()
	}

	injector, err := dependency.NewInjector(cfg, database.DB(), redisClient)
	if err != nil {
		return fmt.Errorf("wire dependencies: %w", err)
	}

	if cfg.Email.WorkerEnabled {
		go injector.EmailWorker.Start(ctx)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      injector.Router.Setup(cfg.Server.Environment),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "address", srv.Addr, "email_worker", cfg.Email.WorkerEnabled)
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
