// internal/app/system/tasks/runner.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/dalemusser/waffle/pantry/jobs"
	"go.uber.org/zap"
)

// Job is one periodic background task.
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Runner runs jobs on WAFFLE's interval scheduler.
type Runner struct {
	sched *jobs.Scheduler
}

// NewRunner registers jobs with a scheduler. Each run gets timeout as its
// deadline; zero means 30 seconds. Job names must be unique.
func NewRunner(logger *zap.Logger, timeout time.Duration, js ...Job) (*Runner, error) {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	sched := jobs.NewScheduler(logger)
	for _, j := range js {
		if j.Interval <= 0 {
			return nil, fmt.Errorf("job %q: interval must be positive", j.Name)
		}
		if err := sched.Add(&jobs.ScheduledJob{
			Name:     j.Name,
			Interval: j.Interval,
			Handler:  j.Run,
			Timeout:  timeout,
		}); err != nil {
			return nil, err
		}
	}
	return &Runner{sched: sched}, nil
}

// Start begins the tick loops. Calling it on a running Runner is a no-op.
func (r *Runner) Start() { r.sched.Start() }

// Stop waits for running jobs to finish or ctx to expire. It is safe to
// call more than once.
func (r *Runner) Stop(ctx context.Context) error { return r.sched.Stop(ctx) }

// Running reports whether the tick loops are active.
func (r *Runner) Running() bool { return r.sched.IsRunning() }

// RunNow executes the named job once, outside its schedule. Failures are
// logged, not returned; the error reports an unknown name.
func (r *Runner) RunNow(ctx context.Context, name string) error {
	return r.sched.RunNow(ctx, name)
}
