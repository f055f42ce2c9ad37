// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/outcome"
)

// DBDeps holds the backend dependencies for this WAFFLE app.
//
// This struct is created in ConnectDB and passed to subsequent lifecycle
// hooks: Startup, BuildHandler, and Shutdown. The workbench holds all of
// its state in memory, so the "backends" here are in-process stores; a
// restart starts fresh. The struct keeps the same shape a database-backed
// app would use so swapping a store for a persistent one later only
// touches ConnectDB.
type DBDeps struct {
	// Entry listing (folders and files shown on the dashboard)
	Entries *entrystore.Store

	// Upload staging area and its simulated transfers
	Staging *stagingstore.Store

	// Registered accounts
	Accounts *accountstore.Store

	// Site settings singleton (site name, footer, quota)
	Settings *sitesettingsstore.Store

	// Outcome gate consulted by login and registration
	Outcomes outcome.Source
}
