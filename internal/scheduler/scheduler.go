package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// Scheduler enqueues jobs on a dispatcher at fixed intervals
type Scheduler struct {
	dispatcher worker.Dispatcher
	quit       chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// New creates a new scheduler
func New(dispatcher worker.Dispatcher) *Scheduler {
	return &Scheduler{
		dispatcher: dispatcher,
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run every interval until Stop.
// The first run happens one interval after registration.
func (s *Scheduler) Schedule(name string, interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := s.dispatcher.Enqueue(job); err != nil {
					logger.FromContext(context.Background()).Warn(LogMsgEnqueueFailed, "job", name, "error", err)
					return
				}
			case <-s.quit:
				return
			}
		}
	}()
}

// Stop stops all scheduled jobs. Jobs already handed to the dispatcher still run.
func (s *Scheduler) Stop() {
	s.once.Do(func() { close(s.quit) })
	s.wg.Wait()
}
