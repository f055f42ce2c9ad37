// Package stagingstore manages the upload staging area.
//
// Nothing is actually transferred: files are validated and staged as
// metadata, and "uploading" is a per-batch goroutine that advances each
// item's progress on a ticker until it reaches 100. The goroutine is tied
// to a context so shutdown (or a new batch) disposes of the timers
// instead of leaking them.
package stagingstore

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Validation failures. Rejected files are never staged.
var (
	ErrTooLarge       = errors.New("file exceeds the maximum upload size")
	ErrTypeNotAllowed = errors.New("file type is not allowed")
	ErrTooMany        = errors.New("staging area is full")
)

// Removal failures.
var (
	ErrNotFound   = errors.New("staged upload not found")
	ErrNotPending = errors.New("upload is no longer pending")
)

// Config bounds the staging area and paces the simulated transfer.
type Config struct {
	MaxFileBytes int64         // per-file size ceiling
	MaxFiles     int           // staged-item ceiling
	AllowedTypes []string      // content-type allow list; empty allows all
	TickInterval time.Duration // progress tick spacing
	ProgressStep int           // percent added per tick
	Retention    time.Duration // how long finished items stay visible
}

// normalized fills in usable values for anything left zero.
func (c Config) normalized() Config {
	if c.MaxFileBytes <= 0 {
		c.MaxFileBytes = 10 << 20
	}
	if c.MaxFiles <= 0 {
		c.MaxFiles = 10
	}
	if c.TickInterval <= 0 {
		c.TickInterval = 200 * time.Millisecond
	}
	if c.ProgressStep <= 0 {
		c.ProgressStep = 10
	}
	if c.Retention <= 0 {
		c.Retention = time.Minute
	}
	return c
}

// Store is the in-memory staging area.
type Store struct {
	cfg    Config
	logger *zap.Logger

	mu     sync.Mutex
	items  map[string]*models.StagedUpload
	order  []string
	cancel context.CancelFunc // cancels the running batch, nil when idle
	wg     sync.WaitGroup
}

// New creates a staging store with the given bounds.
func New(cfg Config, logger *zap.Logger) *Store {
	return &Store{
		cfg:    cfg.normalized(),
		logger: logger,
		items:  make(map[string]*models.StagedUpload),
	}
}

// Config returns the store's effective configuration.
func (s *Store) Config() Config {
	return s.cfg
}

// Stage validates a file and adds it to the staging area as pending.
// A validation failure returns one of the typed errors and stages nothing.
func (s *Store) Stage(fileName string, sizeBytes int64, contentType string) (models.StagedUpload, error) {
	if sizeBytes > s.cfg.MaxFileBytes {
		return models.StagedUpload{}, ErrTooLarge
	}
	if !s.typeAllowed(contentType) {
		return models.StagedUpload{}, ErrTypeNotAllowed
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.items) >= s.cfg.MaxFiles {
		return models.StagedUpload{}, ErrTooMany
	}

	item := &models.StagedUpload{
		ID:          uuid.NewString(),
		FileName:    fileName,
		SizeBytes:   sizeBytes,
		ContentType: contentType,
		Status:      models.StatusPending,
		StagedAt:    time.Now().UTC(),
	}
	s.items[item.ID] = item
	s.order = append(s.order, item.ID)
	return *item, nil
}

func (s *Store) typeAllowed(contentType string) bool {
	if len(s.cfg.AllowedTypes) == 0 {
		return true
	}
	for _, t := range s.cfg.AllowedTypes {
		if strings.EqualFold(strings.TrimSpace(t), contentType) {
			return true
		}
	}
	return false
}

// Items returns a snapshot of the staging area in staging order.
func (s *Store) Items() []models.StagedUpload {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.StagedUpload, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.items[id])
	}
	return out
}

// Get returns a staged item by id.
func (s *Store) Get(id string) (models.StagedUpload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.items[id]
	if !ok {
		return models.StagedUpload{}, false
	}
	return *item, true
}

// Remove drops a staged item. Only pending items can be removed; once a
// batch has started the item belongs to the simulated transfer.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[id]
	if !ok {
		return ErrNotFound
	}
	if item.Status != models.StatusPending {
		return ErrNotPending
	}
	s.drop(id)
	return nil
}

// drop removes an item from the map and order slice. Caller holds mu.
func (s *Store) drop(id string) {
	delete(s.items, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Start flips every pending item to uploading and runs the batch on its
// own goroutine: each tick adds ProgressStep percent to every uploading
// item, and an item that reaches 100 flips to success. When the whole
// batch is done, onDone is called once with the items that succeeded.
//
// The goroutine stops when ctx is cancelled or Stop is called; a cancelled
// batch leaves its items at their current progress. Start on an already
// running batch or an empty staging area does nothing and reports false.
func (s *Store) Start(ctx context.Context, onDone func([]models.StagedUpload)) bool {
	s.mu.Lock()

	if s.cancel != nil {
		s.mu.Unlock()
		return false
	}

	var batch []string
	for _, id := range s.order {
		if s.items[id].Status == models.StatusPending {
			s.items[id].Status = models.StatusUploading
			batch = append(batch, id)
		}
	}
	if len(batch) == 0 {
		s.mu.Unlock()
		return false
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx, batch, onDone)
	return true
}

func (s *Store) run(ctx context.Context, batch []string, onDone func([]models.StagedUpload)) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.finishBatch(nil)
			return
		case <-ticker.C:
			done, completed := s.tick(batch)
			if done {
				s.finishBatch(nil)
				if onDone != nil && len(completed) > 0 {
					onDone(completed)
				}
				return
			}
		}
	}
}

// tick advances every still-uploading batch item one step. It reports
// whether the batch has finished and, when it has, the successful items.
func (s *Store) tick(batch []string) (done bool, completed []models.StagedUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := 0
	for _, id := range batch {
		item, ok := s.items[id]
		if !ok || item.Status != models.StatusUploading {
			continue
		}
		item.Progress += s.cfg.ProgressStep
		if item.Progress >= 100 {
			item.Progress = 100
			item.Status = models.StatusSuccess
			now := time.Now().UTC()
			item.FinishedAt = &now
			continue
		}
		active++
	}
	if active > 0 {
		return false, nil
	}

	for _, id := range batch {
		if item, ok := s.items[id]; ok && item.Status == models.StatusSuccess {
			completed = append(completed, *item)
		}
	}
	return true, completed
}

// finishBatch clears the running-batch marker.
func (s *Store) finishBatch(_ []models.StagedUpload) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// Running reports whether a batch is in flight.
func (s *Store) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancel != nil
}

// Stop cancels any running batch and waits for its goroutine to exit.
func (s *Store) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// SweepFinished drops finished items older than the retention window so
// the staging panel does not accumulate stale rows. Returns the number
// swept.
func (s *Store) SweepFinished(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stale []string
	for id, item := range s.items {
		if item.Done() && item.FinishedAt != nil && now.Sub(*item.FinishedAt) >= s.cfg.Retention {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		s.drop(id)
	}
	if n := len(stale); n > 0 {
		s.logger.Debug("swept finished uploads", zap.Int("count", n))
	}
	return len(stale)
}
