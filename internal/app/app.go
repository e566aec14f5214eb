// Package app wires configuration, storage, services and the HTTP server
// into a running estimate API.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/hvac-estimate/internal/adapter/postgres"
	estimaterepo "github.com/heartmarshall/hvac-estimate/internal/adapter/postgres/estimate"
	"github.com/heartmarshall/hvac-estimate/internal/config"
	"github.com/heartmarshall/hvac-estimate/internal/render"
	estimatesvc "github.com/heartmarshall/hvac-estimate/internal/service/estimate"
	"github.com/heartmarshall/hvac-estimate/internal/transport/middleware"
	"github.com/heartmarshall/hvac-estimate/internal/transport/rest"
	"github.com/heartmarshall/hvac-estimate/migrations"
)

// Run loads configuration, connects to PostgreSQL, applies migrations when
// enabled and serves the API until ctx is cancelled. Shutdown drains
// in-flight requests within Server.ShutdownTimeout.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, migrations.FS, logger); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	svc := estimatesvc.NewService(logger, estimaterepo.New(pool), render.Renderers(), cfg.Estimate)

	deps := rest.RouterDeps{
		Estimates: rest.NewEstimateHandler(svc, cfg.Estimate.MaxBodyBytes, logger),
		Health:    rest.NewHealthHandler(pool, svc, cfg.App.Environment, cfg.App.VersionLabel, logger),
		CORS:      cfg.CORS,
		Logger:    logger,
	}
	if cfg.RateLimit.Enabled() {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)
		defer limiter.Stop()
		deps.Limiter = limiter
		deps.DownloadsPerMinute = cfg.RateLimit.DownloadsPerMinute
	}

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      rest.NewRouter(deps),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return serve(ctx, srv, cfg.Server, logger)
}

// serve runs srv until ctx is done or ListenAndServe fails, then shuts it
// down gracefully.
func serve(ctx context.Context, srv *http.Server, cfg config.ServerConfig, logger *slog.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down", slog.Duration("timeout", cfg.ShutdownTimeout))

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("shutdown complete")
	return nil
}
