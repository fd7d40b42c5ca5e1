// Command app runs the GlowMine ledger backend.
//
// @title GlowMine Ledger API
// @version 1.0
// @description Authoritative balance ledger for GlowMine clients.
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
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

	"github.com/osse101/GlowMine_Go/internal/bootstrap"
	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/database"
	"github.com/osse101/GlowMine_Go/internal/eventlog"
	"github.com/osse101/GlowMine_Go/internal/handler"
	"github.com/osse101/GlowMine_Go/internal/ledger"
	"github.com/osse101/GlowMine_Go/internal/scheduler"
	"github.com/osse101/GlowMine_Go/internal/server"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Ledger backend failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	bootstrap.SetupLogger(cfg)
	handler.InitValidator()

	if warnings, err := config.ValidateEnvWithWarnings(); err != nil {
		slog.Warn("Environment check failed", "error", err)
	} else {
		for _, w := range warnings {
			slog.Warn(w)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbPool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		return err
	}
	if err := database.Migrate(ctx, dbPool); err != nil {
		dbPool.Close()
		return err
	}

	repos := bootstrap.InitializeRepositories(dbPool)
	bus, workers := bootstrap.InitializeEventSystem(cfg)
	eventLog := eventlog.NewService(repos.EventLog)
	if err := bootstrap.RegisterEventHandlers(bootstrap.EventHandlerDependencies{
		EventBus:   bus,
		Dispatcher: workers,
		Config:     cfg,
		EventLog:   eventLog,
	}); err != nil {
		workers.Stop()
		dbPool.Close()
		return err
	}

	ledgerService := ledger.NewService(repos.Ledger, bus, ledger.Options{
		CacheSize: cfg.BalanceCacheSize,
		CacheTTL:  cfg.BalanceCacheTTL,
	})

	srv, err := server.NewServer(server.Options{
		Port:            cfg.Port,
		APIKey:          cfg.APIKey,
		AdminKey:        cfg.AdminAccessCode,
		TrustedProxies:  cfg.TrustedProxies,
		RateLimitRPS:    cfg.RateLimitRPS,
		RateLimitBurst:  cfg.RateLimitBurst,
		MaxRequestBytes: cfg.MaxRequestBytes,
		ServiceName:     cfg.ServiceName,
	}, dbPool, ledgerService, eventLog)
	if err != nil {
		workers.Stop()
		dbPool.Close()
		return err
	}

	sched := scheduler.New(workers)
	sched.Schedule("event-log-cleanup", cfg.EventLogCleanupInterval, eventlog.CleanupJob(eventLog, cfg.EventLogRetention))

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err = <-serveErr:
	}

	sched.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Server:     srv,
		WorkerPool: workers,
		DBPool:     dbPool,
	})
	return err
}
