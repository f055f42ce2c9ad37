// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). They represent *app-level*
// configuration, not WAFFLE core configuration.
//
// WAFFLE's CoreConfig handles framework-level settings like HTTP/HTTPS
// ports, TLS, logging level, CORS, and request body limits. AppConfig is
// where everything specific to the workbench lives.
type AppConfig struct {
	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions (default: fileworkbench-session)
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Maximum session cookie lifetime (default: 24h)

	// CSRF protection configuration
	CSRFKey string // Secret key for CSRF token signing (32 bytes, must be strong in production)

	// Upload staging configuration
	UploadMaxFileBytes int64         // Per-file size ceiling for staged uploads
	UploadMaxFiles     int           // Maximum items in the staging area at once
	UploadAllowedTypes []string      // Content-type allow list (empty allows all)
	UploadTickInterval time.Duration // Simulated transfer progress tick spacing
	UploadProgressStep int           // Percent of progress added per tick
	UploadRetention    time.Duration // How long finished uploads stay visible

	// Storage quota configuration
	QuotaTotalBytes int64 // Capacity the usage meter measures against (default: 10 GiB)

	// Auth outcome configuration.
	// Login and registration consult an outcome source before touching
	// credentials, standing in for an identity provider that can be
	// down or flaky.
	//   - "allow": every attempt passes the gate
	//   - "deny": every attempt fails the gate
	//   - "random": attempts pass with AuthOutcomePassRate percent probability
	AuthOutcomeMode     string
	AuthOutcomePassRate int   // Percent of attempts that pass in random mode (0-100)
	AuthOutcomeSeed     int64 // RNG seed for random mode; 0 seeds from the clock

	// Demo data seeding
	SeedDemoData bool // Seed the demo account and sample listing on startup
}
