// internal/app/system/tasks/jobs.go
package tasks

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Pruner removes records older than a cutoff and reports how many went.
type Pruner interface {
	PruneBefore(ctx context.Context, cutoff time.Time) int
}

// RetentionJob creates a job that drops records older than retention from
// p every interval. now may be nil.
func RetentionJob(name string, p Pruner, retention, interval time.Duration, now func() time.Time, logger *zap.Logger) Job {
	if now == nil {
		now = time.Now
	}
	return Job{
		Name:     name,
		Interval: interval,
		Run: func(ctx context.Context) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			count := p.PruneBefore(ctx, now().Add(-retention))
			if count > 0 {
				logger.Info("pruned expired records",
					zap.String("job", name),
					zap.Int("count", count),
					zap.Duration("retention", retention))
			}
			return nil
		},
	}
}
