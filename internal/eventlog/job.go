package eventlog

import (
	"context"
	"time"

	"github.com/osse101/GlowMine_Go/internal/logger"
	"github.com/osse101/GlowMine_Go/internal/worker"
)

// CleanupJob prunes entries older than the retention window
func CleanupJob(svc Service, retention time.Duration) worker.Job {
	return worker.JobFunc(func(ctx context.Context) error {
		log := logger.FromContext(ctx)
		log.Info(LogMsgCleanupJobStarting, "retention", retention)

		start := time.Now()
		count, err := svc.CleanupOldEvents(ctx, retention)
		if err != nil {
			log.Error(LogMsgCleanupJobFailed, "error", err, "duration", time.Since(start))
			return err
		}
		log.Info(LogMsgCleanupJobCompleted, "deleted", count, "duration", time.Since(start))
		return nil
	})
}
