package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GlowMine_Go/internal/database"
	"github.com/osse101/GlowMine_Go/internal/server"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server     *server.Server
	WorkerPool *worker.Pool
	DBPool     database.Pool
}

// GracefulShutdown stops the backend in order:
//  1. HTTP server (stop accepting new requests)
//  2. worker pool (drain queued notifications)
//  3. database pool
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.WorkerPool != nil {
		slog.Info(LogMsgDrainingWorkers)
		done := make(chan struct{})
		go func() {
			components.WorkerPool.Stop()
			close(done)
		}()
		select {
		case <-done:
		case <-ctx.Done():
			slog.Warn(LogMsgWorkerDrainTimeout, "error", ctx.Err())
		}
	}

	if components.DBPool != nil {
		components.DBPool.Close()
	}

	slog.Info(LogMsgServerStopped)
}
