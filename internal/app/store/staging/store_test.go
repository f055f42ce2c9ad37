package stagingstore

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"go.uber.org/zap"
)

func newTestStore(cfg Config) *Store {
	return New(cfg, zap.NewNop())
}

func fastConfig() Config {
	return Config{
		MaxFileBytes: 10 << 20,
		MaxFiles:     5,
		TickInterval: time.Millisecond,
		ProgressStep: 50,
		Retention:    time.Minute,
	}
}

func TestStage(t *testing.T) {
	s := newTestStore(fastConfig())

	item, err := s.Stage("report.pdf", 2<<20, "application/pdf")
	if err != nil {
		t.Fatalf("Stage() returned error: %v", err)
	}
	if item.ID == "" {
		t.Error("staged item has no ID")
	}
	if item.Status != models.StatusPending {
		t.Errorf("Status = %q, want %q", item.Status, models.StatusPending)
	}
	if item.Progress != 0 {
		t.Errorf("Progress = %d, want 0", item.Progress)
	}
	if item.StagedAt.IsZero() {
		t.Error("StagedAt not set")
	}
	if len(s.Items()) != 1 {
		t.Errorf("Items() length = %d, want 1", len(s.Items()))
	}
}

func TestStage_TooLarge(t *testing.T) {
	s := newTestStore(fastConfig())

	// An 11 MB file against a 10 MB ceiling.
	_, err := s.Stage("video.mp4", 11<<20, "video/mp4")
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("Stage(11MB) error = %v, want ErrTooLarge", err)
	}
	if len(s.Items()) != 0 {
		t.Error("rejected file must not be staged")
	}

	// Exactly at the ceiling is allowed.
	if _, err := s.Stage("fits.bin", 10<<20, "application/octet-stream"); err != nil {
		t.Errorf("Stage(10MB) returned error: %v", err)
	}
}

func TestStage_TypeNotAllowed(t *testing.T) {
	cfg := fastConfig()
	cfg.AllowedTypes = []string{"image/png", "image/jpeg"}
	s := newTestStore(cfg)

	_, err := s.Stage("script.sh", 100, "application/x-sh")
	if !errors.Is(err, ErrTypeNotAllowed) {
		t.Fatalf("error = %v, want ErrTypeNotAllowed", err)
	}

	// Allow-list comparison ignores case.
	if _, err := s.Stage("photo.png", 100, "IMAGE/PNG"); err != nil {
		t.Errorf("Stage(allowed type) returned error: %v", err)
	}
}

func TestStage_TooMany(t *testing.T) {
	cfg := fastConfig()
	cfg.MaxFiles = 2
	s := newTestStore(cfg)

	for i := 0; i < 2; i++ {
		if _, err := s.Stage("f.txt", 10, "text/plain"); err != nil {
			t.Fatalf("Stage() returned error: %v", err)
		}
	}

	_, err := s.Stage("one-too-many.txt", 10, "text/plain")
	if !errors.Is(err, ErrTooMany) {
		t.Fatalf("error = %v, want ErrTooMany", err)
	}
	if len(s.Items()) != 2 {
		t.Errorf("Items() length = %d, want 2", len(s.Items()))
	}
}

func TestRemove(t *testing.T) {
	s := newTestStore(fastConfig())
	item, _ := s.Stage("doc.txt", 10, "text/plain")

	if err := s.Remove(item.ID); err != nil {
		t.Fatalf("Remove(pending) returned error: %v", err)
	}
	if len(s.Items()) != 0 {
		t.Error("item still present after Remove")
	}

	if err := s.Remove(item.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Remove(absent) error = %v, want ErrNotFound", err)
	}
}

func TestStartAndFinish(t *testing.T) {
	s := newTestStore(fastConfig())
	defer s.Stop()

	s.Stage("a.txt", 10, "text/plain")
	s.Stage("b.txt", 20, "text/plain")

	var mu sync.Mutex
	var succeeded []models.StagedUpload
	done := make(chan struct{})

	started := s.Start(context.Background(), func(items []models.StagedUpload) {
		mu.Lock()
		succeeded = items
		mu.Unlock()
		close(done)
	})
	if !started {
		t.Fatal("Start() = false with pending items")
	}

	// Starting again while running is refused.
	if s.Start(context.Background(), nil) {
		t.Error("second Start() while running should report false")
	}

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not finish")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(succeeded) != 2 {
		t.Fatalf("onDone received %d items, want 2", len(succeeded))
	}
	for _, item := range succeeded {
		if item.Status != models.StatusSuccess {
			t.Errorf("item %q status = %q, want success", item.FileName, item.Status)
		}
		if item.Progress != 100 {
			t.Errorf("item %q progress = %d, want 100", item.FileName, item.Progress)
		}
		if item.FinishedAt == nil {
			t.Errorf("item %q has no FinishedAt", item.FileName)
		}
	}

	if s.Running() {
		t.Error("Running() = true after the batch finished")
	}
}

func TestStart_EmptyStagingArea(t *testing.T) {
	s := newTestStore(fastConfig())

	if s.Start(context.Background(), nil) {
		t.Error("Start() with nothing staged should report false")
	}
}

func TestRemove_RefusedOnceUploading(t *testing.T) {
	cfg := fastConfig()
	cfg.TickInterval = time.Hour // batch never progresses during the test
	s := newTestStore(cfg)
	defer s.Stop()

	item, _ := s.Stage("locked.txt", 10, "text/plain")
	if !s.Start(context.Background(), nil) {
		t.Fatal("Start() = false")
	}

	if err := s.Remove(item.ID); !errors.Is(err, ErrNotPending) {
		t.Errorf("Remove(uploading) error = %v, want ErrNotPending", err)
	}
}

func TestStop_CancelsBatch(t *testing.T) {
	cfg := fastConfig()
	cfg.TickInterval = time.Hour
	s := newTestStore(cfg)

	s.Stage("never-finishes.txt", 10, "text/plain")
	onDoneCalled := false
	s.Start(context.Background(), func([]models.StagedUpload) { onDoneCalled = true })

	s.Stop() // waits for the goroutine

	if s.Running() {
		t.Error("Running() = true after Stop")
	}
	if onDoneCalled {
		t.Error("onDone must not fire for a cancelled batch")
	}

	// The item stays at its last state rather than completing.
	items := s.Items()
	if len(items) != 1 || items[0].Status != models.StatusUploading {
		t.Errorf("cancelled item = %+v", items)
	}
}

func TestStart_ContextCancellation(t *testing.T) {
	cfg := fastConfig()
	cfg.TickInterval = time.Hour
	s := newTestStore(cfg)

	s.Stage("ctx.txt", 10, "text/plain")

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx, nil)
	cancel()

	// Stop drains the goroutine so the assertion is race-free.
	s.Stop()
	if s.Running() {
		t.Error("Running() = true after context cancellation")
	}
}

func TestSweepFinished(t *testing.T) {
	cfg := fastConfig()
	cfg.Retention = time.Minute
	s := newTestStore(cfg)
	defer s.Stop()

	s.Stage("done.txt", 10, "text/plain")
	s.Stage("pending.txt", 20, "text/plain")

	done := make(chan struct{})
	s.Start(context.Background(), func([]models.StagedUpload) { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("batch did not finish")
	}

	// Inside the retention window nothing is swept.
	if n := s.SweepFinished(time.Now().UTC()); n != 0 {
		t.Errorf("SweepFinished(now) = %d, want 0", n)
	}

	// Past the window both finished items go.
	n := s.SweepFinished(time.Now().UTC().Add(2 * time.Minute))
	if n != 2 {
		t.Errorf("SweepFinished(+2m) = %d, want 2", n)
	}
	if len(s.Items()) != 0 {
		t.Errorf("Items() length = %d after sweep, want 0", len(s.Items()))
	}
}
