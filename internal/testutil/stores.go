// Package testutil provides request, store, and template helpers for
// handler tests. Everything is in-memory; no external services are
// needed to run the suite.
package testutil

import (
	"time"

	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"go.uber.org/zap"
)

// NewEntryStore builds an entry store seeded with a small fixture
// listing: folders first in insertion order, then files with parseable
// size labels.
func NewEntryStore() *entrystore.Store {
	s := entrystore.New()
	now := time.Now().UTC()
	s.Seed([]models.Entry{
		{Name: "Documents", Kind: models.KindFolder, ModifiedAt: now.Add(-48 * time.Hour)},
		{Name: "Photos", Kind: models.KindFolder, Favorite: true, ModifiedAt: now.Add(-240 * time.Hour)},
		{Name: "notes.txt", Kind: models.KindFile, SizeLabel: "500 Bytes", ModifiedAt: now.Add(-24 * time.Hour)},
		{Name: "readme.md", Kind: models.KindFile, SizeLabel: "1.00 KB", ModifiedAt: now.Add(-120 * time.Hour)},
		{Name: "report.pdf", Kind: models.KindFile, SizeLabel: "2.00 MB", ModifiedAt: now.Add(-72 * time.Hour)},
	})
	return s
}

// NewStagingStore builds a staging store with tight timings so upload
// batches finish in a few milliseconds.
func NewStagingStore() *stagingstore.Store {
	return stagingstore.New(stagingstore.Config{
		MaxFileBytes: 10 << 20,
		MaxFiles:     5,
		TickInterval: time.Millisecond,
		ProgressStep: 50,
		Retention:    time.Minute,
	}, zap.NewNop())
}
