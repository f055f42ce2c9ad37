// internal/app/system/seeding/seeding.go
package seeding

import (
	"time"

	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"go.uber.org/zap"
)

// Demo account credentials. The workbench has no real user base; this is
// what the login page accepts out of the box.
const (
	DemoEmail    = "demo@example.com"
	DemoName     = "Demo User"
	DemoPassword = "workbench"
)

// SeedAll loads the fixture data every fresh process starts with: the
// demo account and a dashboard listing worth browsing. State is
// in-memory only, so this runs on every startup.
func SeedAll(entries *entrystore.Store, accounts *accountstore.Store, logger *zap.Logger) error {
	if err := seedAccounts(accounts, logger); err != nil {
		return err
	}
	seedEntries(entries, logger)
	return nil
}

func seedAccounts(accounts *accountstore.Store, logger *zap.Logger) error {
	if _, ok := accounts.GetByEmail(DemoEmail); ok {
		return nil
	}
	if _, err := accounts.Create(DemoEmail, DemoName, DemoPassword); err != nil {
		logger.Error("failed to seed demo account", zap.Error(err))
		return err
	}
	logger.Info("seeded demo account", zap.String("email", DemoEmail))
	return nil
}

// seedEntries fills the dashboard with a browsable mix of folders and
// files. The file sizes sum to roughly 2.5 GB so the usage meter shows
// 25% of the default 10 GB quota.
func seedEntries(entries *entrystore.Store, logger *zap.Logger) {
	now := time.Now().UTC()
	at := func(daysAgo int) time.Time { return now.AddDate(0, 0, -daysAgo) }

	fixtures := []models.Entry{
		{Name: "Documents", Kind: models.KindFolder, ModifiedAt: at(2)},
		{Name: "Photos", Kind: models.KindFolder, Favorite: true, ModifiedAt: at(9)},
		{Name: "Work Projects", Kind: models.KindFolder, ModifiedAt: at(30)},
		{Name: "notes.txt", Kind: models.KindFile, SizeLabel: "500 Bytes", ModifiedAt: at(1)},
		{Name: "readme.md", Kind: models.KindFile, SizeLabel: "1.00 KB", ModifiedAt: at(5)},
		{Name: "quarterly-report.pdf", Kind: models.KindFile, SizeLabel: "2.00 MB", Favorite: true, ModifiedAt: at(3)},
		{Name: "presentation.pptx", Kind: models.KindFile, SizeLabel: "14.60 MB", ModifiedAt: at(12)},
		{Name: "holiday-video.mp4", Kind: models.KindFile, SizeLabel: "1.00 GB", ModifiedAt: at(20)},
		{Name: "site-backup.tar", Kind: models.KindFile, SizeLabel: "1.50 GB", ModifiedAt: at(45)},
	}

	for i := range fixtures {
		fixtures[i].CreatedAt = fixtures[i].ModifiedAt
	}

	entries.Seed(fixtures)
	logger.Info("seeded dashboard entries", zap.Int("count", len(fixtures)))
}
