package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/configstore"
	"github.com/osse101/GlowMine_Go/internal/domain"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/ledgerclient"
	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/metrics"
	"github.com/osse101/GlowMine_Go/internal/reconcile"
	"github.com/osse101/GlowMine_Go/internal/snapshot"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// app holds everything one command invocation needs
type app struct {
	cfg     *config.ClientConfig
	store   *snapshot.Store
	client  *ledgerclient.HTTPClient
	configs *configstore.Store
	bus     *event.MemoryBus
	pool    *worker.Pool
	coord   *reconcile.Coordinator
}

// openApp loads the config, opens the local snapshot and builds the coordinator.
// With background set, reward submissions run on a worker pool that close drains;
// otherwise they run inline so one-shot commands see their outcome.
func openApp(ctx context.Context, background bool) (*app, error) {
	cfg, err := config.LoadClient(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireIdentity(); err != nil {
		return nil, fmt.Errorf("%s: %w", configPath, err)
	}

	logCfg := logger.CLIConfig()
	logCfg.Level = cfg.LogLevel
	logger.InitLoggerWithWriter(logCfg, os.Stderr)

	store, err := snapshot.Open(ctx, cfg.StatePath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		store:  store,
		client: ledgerclient.NewHTTPClient(cfg.BackendURL, cfg.APIKey, cfg.HTTPTimeout),
		bus:    event.NewMemoryBus(),
	}
	metrics.NewEventMetricsCollector().Register(a.bus)

	a.configs = configstore.New(a.client, domain.DefaultEconomyConfig())
	if saved, err := store.LoadConfig(ctx); err == nil {
		if err := a.configs.Restore(saved); err != nil {
			slog.Warn("Ignoring persisted economy config", "error", err)
		}
	} else if !errors.Is(err, snapshot.ErrNotFound) {
		slog.Warn("Failed to load persisted economy config", "error", err)
	}

	user, err := a.loadUser(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	res, err := store.LoadResolution(ctx)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	var dispatcher worker.Dispatcher = worker.Inline{}
	if background {
		a.pool = worker.NewPool(cfg.Workers, cfg.QueueSize)
		a.pool.Start()
		dispatcher = a.pool
	}

	a.coord, err = reconcile.New(user, res, reconcile.Options{
		Client:      a.client,
		Config:      a.configs,
		Pending:     store,
		Mirror:      store,
		Withdrawals: store,
		Bus:         a.bus,
		Dispatcher:  dispatcher,
		Retry: reconcile.RetryPolicy{
			MaxRetries: cfg.Retry.MaxRetries,
			BaseDelay:  cfg.Retry.BaseDelay,
			MaxDelay:   cfg.Retry.MaxDelay,
		},
	})
	if err != nil {
		a.close()
		return nil, err
	}
	a.coord.ReplaceTasks(ctx, cfg.TaskCatalogue())
	return a, nil
}

// loadUser returns the persisted mirror for the configured subject, or a
// fresh account when there is none or it belongs to someone else
func (a *app) loadUser(ctx context.Context) (domain.User, error) {
	u, err := a.store.LoadUser(ctx)
	switch {
	case errors.Is(err, snapshot.ErrNotFound):
	case err != nil:
		return domain.User{}, err
	case u.SubjectID == a.cfg.SubjectID:
		return u, nil
	default:
		slog.Warn("Persisted account belongs to another subject; starting fresh",
			"persisted", u.SubjectID, "configured", a.cfg.SubjectID)
	}
	return domain.User{
		SubjectID:   a.cfg.SubjectID,
		DisplayName: a.cfg.DisplayName,
		Tasks:       a.cfg.TaskCatalogue(),
	}, nil
}

// sync registers the subject (idempotent) and pulls the authoritative balance and config.
// Failures are reported but not fatal: the client keeps working on its mirror.
func (a *app) sync(ctx context.Context) {
	if _, err := a.coord.Register(ctx, a.cfg.ReferrerID); err != nil {
		slog.Warn("Register failed; using local mirror", "error", err)
	}
	if _, err := a.coord.RefreshConfig(ctx); err != nil {
		slog.Warn("Config refresh failed; using last known config", "error", err)
	}
	if _, err := a.coord.FetchAuthoritative(ctx); err != nil {
		slog.Warn("Balance fetch failed; using local mirror", "error", err)
	}
}

// close drains queued submissions and closes the snapshot
func (a *app) close() {
	if a.pool != nil {
		a.pool.Stop()
	}
	if err := a.store.Close(); err != nil {
		slog.Warn("Failed to close snapshot", "error", err)
	}
}
