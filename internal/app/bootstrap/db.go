// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"

	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/outcome"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// ConnectDB builds the app's backends.
//
// WAFFLE calls this after configuration is loaded but before Startup.
// In a database-backed app this is where clients get connected; the
// workbench keeps everything in memory, so "connecting" is constructing
// the stores from configuration. There is nothing to time out on and
// nothing that can fail, but the hook keeps its place in the lifecycle
// so a persistent backend can slot in without reshaping startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	staging := stagingstore.New(stagingstore.Config{
		MaxFileBytes: appCfg.UploadMaxFileBytes,
		MaxFiles:     appCfg.UploadMaxFiles,
		AllowedTypes: appCfg.UploadAllowedTypes,
		TickInterval: appCfg.UploadTickInterval,
		ProgressStep: appCfg.UploadProgressStep,
		Retention:    appCfg.UploadRetention,
	}, logger)

	settings := sitesettingsstore.New()
	settings.SetQuota(appCfg.QuotaTotalBytes)

	logger.Info("initialized in-memory stores",
		zap.Int64("upload_max_file_bytes", appCfg.UploadMaxFileBytes),
		zap.Int("upload_max_files", appCfg.UploadMaxFiles),
		zap.Int64("quota_total_bytes", settings.Get().QuotaTotalBytes),
	)

	return DBDeps{
		Entries:  entrystore.New(),
		Staging:  staging,
		Accounts: accountstore.New(),
		Settings: settings,
		Outcomes: buildOutcomeSource(appCfg, logger),
	}, nil
}

// buildOutcomeSource constructs the auth outcome gate from config.
func buildOutcomeSource(appCfg AppConfig, logger *zap.Logger) outcome.Source {
	switch appCfg.AuthOutcomeMode {
	case "allow":
		return outcome.Fixed(true)
	case "deny":
		logger.Warn("auth outcome gate is set to deny; all login and registration attempts will fail")
		return outcome.Fixed(false)
	default:
		return outcome.NewRandom(float64(appCfg.AuthOutcomePassRate)/100, appCfg.AuthOutcomeSeed)
	}
}
