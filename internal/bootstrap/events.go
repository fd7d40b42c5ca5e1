package bootstrap

import (
	"log/slog"

	"github.com/osse101/GlowMine_Go/internal/config"
	"github.com/osse101/GlowMine_Go/internal/event"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// InitializeEventSystem creates the event bus and the worker pool that runs
// slow subscribers (notifications) off the request path. The pool is started.
func InitializeEventSystem(cfg *config.Config) (*event.MemoryBus, *worker.Pool) {
	workers := cfg.WorkerCount
	if workers < 1 {
		workers = config.DefaultWorkerCount
	}
	queue := cfg.WorkerQueueSize
	if queue < 1 {
		queue = config.DefaultWorkerQueueSize
	}

	bus := event.NewMemoryBus()
	pool := worker.NewPool(workers, queue)
	pool.Start()

	slog.Info(LogMsgEventSystemInitialized, "workers", workers, "queue_size", queue)
	return bus, pool
}
