// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"go.uber.org/zap"
)

// StagingSweepJob creates a job that removes finished uploads from the
// staging area once their retention window has passed, so the upload
// panel does not fill with stale success rows.
func StagingSweepJob(staging *stagingstore.Store, logger *zap.Logger) Job {
	interval := staging.Config().Retention / 2
	if interval < time.Second {
		interval = time.Second
	}
	return Job{
		Name:     "staging-sweep",
		Interval: interval,
		Run: func(ctx context.Context) error {
			if n := staging.SweepFinished(time.Now().UTC()); n > 0 {
				logger.Info("swept finished uploads from staging",
					zap.Int("count", n))
			}
			return nil
		},
	}
}
