// Package fanservice boots the fan prioritization HTTP service.
package fanservice

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/fanpulse/fanpulse/internal/api"
	"github.com/fanpulse/fanpulse/internal/config"
	"github.com/fanpulse/fanpulse/internal/health"
	"github.com/fanpulse/fanpulse/internal/monetize"
	"github.com/fanpulse/fanpulse/internal/platform/logger"
	"github.com/fanpulse/fanpulse/internal/services"
	"github.com/fanpulse/fanpulse/internal/store"
	"github.com/fanpulse/fanpulse/internal/store/postgres"
	"github.com/fanpulse/fanpulse/internal/store/sqlite"
)

// Run starts the fanpulse HTTP server and blocks until shutdown or error.
func Run(cfg *config.Config) error {
	log := logger.New("fanpulse-service", cfg.LogLevel)

	log.Info().
		Str("build_target", cfg.BuildTarget).
		Str("db_driver", cfg.DBDriver).
		Int("http_port", cfg.HTTPPort).
		Msg("Fanpulse service starting")

	// Cancellable root context bound to SIGINT/SIGTERM
	ctx, stop := newServerContext()
	defer stop()

	st, err := newStore(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Store adapter unavailable")
		return err
	}

	// Health checkers and the service-level aggregator
	svcHealth := startHealthCheckers(ctx, cfg, log, st)

	router := buildRouter(st, cfg, log, svcHealth)

	// Block startup until the store reports healthy; fail fast otherwise
	if err := waitUntilHealthy(ctx, cfg, svcHealth); err != nil {
		log.Error().Err(err).Msg("startup health check failed")
		return err
	}

	server := newHTTPServer(ctx, cfg, router)
	errCh := serveHTTP(server, log, cfg)

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down server")
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctxShutdown); err != nil {
			log.Error().Err(err).Msg("Server forced to shutdown")
			return err
		}
		log.Info().Msg("Server exited")
		return nil
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
}

// newStore constructs the configured storage adapter.
func newStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (store.Store, error) {
	switch cfg.DBDriver {
	case "sqlite":
		db, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite at %s: %w", cfg.SQLitePath, err)
		}
		log.Info().Str("path", cfg.SQLitePath).Msg("sqlite store ready")
		return sqlite.New(db), nil
	case "postgres":
		if err := postgres.Bootstrap(ctx, cfg.PostgresDSN); err != nil {
			return nil, fmt.Errorf("bootstrap postgres: %w", err)
		}
		db, err := postgres.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		log.Info().Msg("postgres store ready")
		return postgres.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER: %s", cfg.DBDriver)
	}
}

// buildRouter wires services and handlers onto the HTTP surface.
func buildRouter(st store.Store, cfg *config.Config, log zerolog.Logger, svcHealth *health.ServiceHealthChecker) http.Handler {
	queueSvc := services.NewQueueService(st, log)
	rollup := monetize.NewStoreProvider(st)
	summarySvc := services.NewSummaryService(st, rollup, queueSvc, log, !cfg.IsProduction())

	return api.NewRouter(api.RouterDeps{
		Store:     st,
		Summaries: summarySvc,
		Queues:    queueSvc,
		Health:    svcHealth,
	})
}

// startHealthCheckers starts the component checkers and the aggregator.
func startHealthCheckers(ctx context.Context, cfg *config.Config, log zerolog.Logger, st store.Store) *health.ServiceHealthChecker {
	probeTimeout := time.Duration(cfg.HealthProbeTimeoutSeconds) * time.Second
	interval := time.Duration(cfg.HealthIntervalSeconds) * time.Second

	storeChecker := store.NewStoreHealthChecker(st, log, probeTimeout)
	go storeChecker.Start(ctx, interval)

	svcHealth := health.NewServiceHealthChecker(log, storeChecker)
	go svcHealth.Start(ctx, interval)
	return svcHealth
}

func newHTTPServer(ctx context.Context, cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.GetHTTPAddr(),
		Handler:           handler,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
}

func serveHTTP(server *http.Server, log zerolog.Logger, cfg *config.Config) <-chan error {
	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.HTTPPort).Msg("HTTP server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()
	return errCh
}

// calculateStartupHealthTimeout returns interval*2 with a 60 second floor.
func calculateStartupHealthTimeout(healthIntervalSeconds int) int {
	timeout := healthIntervalSeconds * 2
	if timeout < 60 {
		return 60
	}
	return timeout
}

// waitUntilHealthy blocks until service health is up or the startup window
// expires. Checkers start unhealthy and need a first probe cycle.
func waitUntilHealthy(ctx context.Context, cfg *config.Config, svcHealth *health.ServiceHealthChecker) error {
	timeoutSeconds := calculateStartupHealthTimeout(cfg.HealthIntervalSeconds)
	deadline := time.Now().Add(time.Duration(timeoutSeconds) * time.Second)
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()
	for {
		if svcHealth.IsHealthy() {
			return nil
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("startup aborted: dependencies not healthy within %d seconds", timeoutSeconds)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// newServerContext returns a context cancelled on SIGINT/SIGTERM.
func newServerContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}
