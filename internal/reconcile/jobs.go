package reconcile

import (
	"context"

	"github.com/osse101/GlowMine_Go/internal/worker"
)

// SweepJob retries every parked reward once
func SweepJob(c *Coordinator) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		_, err := c.RetryPending(ctx)
		return err
	})
}

// ConfigRefreshJob pulls the economy config from the ledger
func ConfigRefreshJob(c *Coordinator) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		_, err := c.RefreshConfig(ctx)
		return err
	})
}
