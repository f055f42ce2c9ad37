package tasks

import (
	"context"
	"testing"
	"time"

	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"go.uber.org/zap"
)

func newSweepStore(retention time.Duration) *stagingstore.Store {
	return stagingstore.New(stagingstore.Config{
		MaxFileBytes: 10 << 20,
		MaxFiles:     5,
		TickInterval: time.Millisecond,
		ProgressStep: 50,
		Retention:    retention,
	}, zap.NewNop())
}

func TestStagingSweepJob_Interval(t *testing.T) {
	job := StagingSweepJob(newSweepStore(time.Minute), zap.NewNop())

	if job.Name != "staging-sweep" {
		t.Errorf("Name = %q", job.Name)
	}
	if job.Interval != 30*time.Second {
		t.Errorf("Interval = %v, want half the retention window", job.Interval)
	}
}

func TestStagingSweepJob_IntervalFloor(t *testing.T) {
	job := StagingSweepJob(newSweepStore(time.Millisecond), zap.NewNop())

	if job.Interval != time.Second {
		t.Errorf("Interval = %v, want the one-second floor", job.Interval)
	}
}

func TestStagingSweepJob_RemovesExpiredUploads(t *testing.T) {
	staging := newSweepStore(time.Millisecond)
	if _, err := staging.Stage("a.txt", 10, "text/plain"); err != nil {
		t.Fatalf("Stage() returned error: %v", err)
	}

	done := make(chan struct{})
	staging.Start(context.Background(), func([]models.StagedUpload) { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not finish")
	}

	// The retention window is a millisecond; the finished row is stale
	// by the time the sweep runs.
	time.Sleep(5 * time.Millisecond)

	job := StagingSweepJob(staging, zap.NewNop())
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if n := len(staging.Items()); n != 0 {
		t.Errorf("staging area holds %d items after sweep, want 0", n)
	}
}
