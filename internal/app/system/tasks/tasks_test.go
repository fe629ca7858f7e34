package tasks_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/tasks"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakePruner struct {
	cutoff time.Time
	n      int
}

func (f *fakePruner) PruneBefore(_ context.Context, cutoff time.Time) int {
	f.cutoff = cutoff
	return f.n
}

func TestRetentionJob_UsesCutoff(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	p := &fakePruner{n: 3}

	job := tasks.RetentionJob("login-history", p, 48*time.Hour, time.Hour, func() time.Time { return now }, zap.New(core))
	if job.Name != "login-history" || job.Interval != time.Hour {
		t.Fatalf("job = %+v", job)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if want := now.Add(-48 * time.Hour); !p.cutoff.Equal(want) {
		t.Errorf("cutoff = %v, want %v", p.cutoff, want)
	}
	if got := logs.FilterMessage("pruned expired records").Len(); got != 1 {
		t.Errorf("prune log entries = %d, want 1", got)
	}
}

func TestRetentionJob_QuietWhenNothingPruned(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	job := tasks.RetentionJob("activity", &fakePruner{}, time.Hour, time.Minute, nil, zap.New(core))
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("expected no log entries, got %d", logs.Len())
	}
}

func TestRetentionJob_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := tasks.RetentionJob("activity", &fakePruner{}, time.Hour, time.Minute, nil, zap.NewNop())
	if err := job.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestRunner_RunsUntilStopped(t *testing.T) {
	var runs atomic.Int32
	job := tasks.Job{
		Name:     "tick",
		Interval: 5 * time.Millisecond,
		Run: func(context.Context) error {
			runs.Add(1)
			return nil
		},
	}
	r, err := tasks.NewRunner(zap.NewNop(), 0, job)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	r.Start()
	if !r.Running() {
		t.Fatal("Running = false after Start")
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
	if r.Running() {
		t.Error("Running = true after Stop")
	}

	if runs.Load() < 2 {
		t.Fatalf("job ran %d times, want at least 2", runs.Load())
	}
	after := runs.Load()
	time.Sleep(20 * time.Millisecond)
	if runs.Load() != after {
		t.Error("job kept running after Stop")
	}
}

func TestRunner_RunNowLogsFailure(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	r, err := tasks.NewRunner(zap.New(core), time.Second, tasks.Job{
		Name:     "broken",
		Interval: time.Hour,
		Run:      func(context.Context) error { return errors.New("boom") },
	})
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := r.RunNow(context.Background(), "broken"); err != nil {
		t.Fatalf("RunNow: %v", err)
	}

	entries := logs.FilterMessage("scheduled job failed").All()
	if len(entries) != 1 {
		t.Fatalf("failure log entries = %d, want 1", len(entries))
	}
	if entries[0].ContextMap()["name"] != "broken" {
		t.Errorf("name field = %v", entries[0].ContextMap()["name"])
	}
}

func TestRunner_RunNowUnknownJob(t *testing.T) {
	r, err := tasks.NewRunner(zap.NewNop(), time.Second)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	if err := r.RunNow(context.Background(), "missing"); err == nil {
		t.Error("RunNow(missing) = nil, want error")
	}
}

func TestNewRunner_RejectsBadJobs(t *testing.T) {
	noop := func(context.Context) error { return nil }
	if _, err := tasks.NewRunner(zap.NewNop(), 0, tasks.Job{Name: "zero", Run: noop}); err == nil {
		t.Error("zero interval accepted")
	}
	dup := tasks.Job{Name: "dup", Interval: time.Minute, Run: noop}
	if _, err := tasks.NewRunner(zap.NewNop(), 0, dup, dup); err == nil {
		t.Error("duplicate job name accepted")
	}
}
