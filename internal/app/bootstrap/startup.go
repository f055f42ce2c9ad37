// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/SadiqNaizam/fileworkbench/internal/app/resources"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/seeding"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/tasks"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs once after the stores are constructed, but before the
// HTTP handler is built and requests are served.
//
// This is the place for one-time initialization that depends on having
// the stores and fully loaded configuration. Unlike ConnectDB, which
// focuses on infrastructure, Startup is for application-level
// initialization.
//
// Common uses for Startup:
//   - Load shared templates from the resources directory
//   - Seed demo data
//   - Set up background workers or scheduled tasks
//
// Returning a non-nil error will abort startup and prevent the server
// from starting. Returning nil signals that initialization succeeded.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	// Seed the demo account and sample listing. Stores are in-memory,
	// so every boot starts from the same fixtures.
	if appCfg.SeedDemoData {
		if err := seeding.SeedAll(deps.Entries, deps.Accounts, logger); err != nil {
			logger.Error("failed to seed demo data", zap.Error(err))
			return err
		}
	}

	startTaskRunner(deps, logger)

	return nil
}

// taskRunner is the global task runner instance, used for graceful shutdown.
var taskRunner *tasks.Runner

// startTaskRunner initializes and starts the background task runner.
func startTaskRunner(deps DBDeps, logger *zap.Logger) {
	taskRunner = tasks.New(logger)

	// Periodically drop finished uploads from the staging area so the
	// panel does not accumulate stale successes.
	taskRunner.Register(tasks.StagingSweepJob(deps.Staging, logger))

	taskRunner.Start()
}
