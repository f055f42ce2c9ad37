// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// EnvVarPrefix is the prefix for environment variables.
// Change this constant when forking fileworkbench for a new project.
const EnvVarPrefix = "FILEWORKBENCH"

// appConfigKeys defines the configuration keys for this application.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: session_name, upload_max_file_bytes, etc.
//   - Environment variables: FILEWORKBENCH_SESSION_NAME, etc.
//   - Command-line flags: --session_name, --upload_max_file_bytes, etc.
var appConfigKeys = []config.AppKey{
	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_name", Default: "fileworkbench-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie max age (e.g., 24h, 720h, 30m)"},

	{Name: "csrf_key", Default: "dev-only-csrf-key-please-change-0123456789", Desc: "CSRF token signing key (32+ chars in production)"},

	// Upload staging configuration
	{Name: "upload_max_file_bytes", Default: 10485760, Desc: "Per-file size ceiling for staged uploads (default: 10 MiB)"},
	{Name: "upload_max_files", Default: 10, Desc: "Max items in the staging area at once"},
	{Name: "upload_allowed_types", Default: "", Desc: "Comma-separated content-type allow list (empty allows all)"},
	{Name: "upload_tick_interval", Default: "200ms", Desc: "Simulated transfer progress tick spacing"},
	{Name: "upload_progress_step", Default: 10, Desc: "Percent of progress added per tick"},
	{Name: "upload_retention", Default: "1m", Desc: "How long finished uploads stay visible in the staging area"},

	// Storage quota configuration
	{Name: "quota_total_bytes", Default: 0, Desc: "Usage meter capacity in bytes (0 uses the 10 GiB default)"},

	// Auth outcome configuration
	{Name: "auth_outcome_mode", Default: "random", Desc: "Auth outcome gate: 'allow', 'deny', or 'random'"},
	{Name: "auth_outcome_pass_rate", Default: 90, Desc: "Percent of auth attempts that pass the gate in random mode"},
	{Name: "auth_outcome_seed", Default: 0, Desc: "RNG seed for random mode (0 seeds from the clock)"},

	// Demo data seeding
	{Name: "seed_demo_data", Default: true, Desc: "Seed the demo account and sample listing on startup"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
// CoreConfig comes from the shared WAFFLE layer; AppConfig is specific
// to this app and can be extended as the app grows.
//
// WAFFLE's config.LoadWithAppConfig handles:
//   - Loading from .env files
//   - Loading from config.yaml/json/toml files
//   - Reading environment variables (WAFFLE_* for core, FILEWORKBENCH_* for app)
//   - Parsing command-line flags
//   - Merging with precedence: flags > env > files > defaults
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, EnvVarPrefix, appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey: appValues.String("csrf_key"),

		// Upload staging
		UploadMaxFileBytes: int64(appValues.Int("upload_max_file_bytes")),
		UploadMaxFiles:     appValues.Int("upload_max_files"),
		UploadAllowedTypes: splitTypes(appValues.String("upload_allowed_types")),
		UploadTickInterval: appValues.Duration("upload_tick_interval", 200*time.Millisecond),
		UploadProgressStep: appValues.Int("upload_progress_step"),
		UploadRetention:    appValues.Duration("upload_retention", time.Minute),

		// Storage quota
		QuotaTotalBytes: int64(appValues.Int("quota_total_bytes")),

		// Auth outcome gate
		AuthOutcomeMode:     appValues.String("auth_outcome_mode"),
		AuthOutcomePassRate: appValues.Int("auth_outcome_pass_rate"),
		AuthOutcomeSeed:     int64(appValues.Int("auth_outcome_seed")),

		// Demo seeding
		SeedDemoData: appValues.Bool("seed_demo_data"),
	}

	return coreCfg, appCfg, nil
}

// splitTypes parses a comma-separated content-type list, dropping blanks.
func splitTypes(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	types := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			types = append(types, t)
		}
	}
	return types
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
// This is the right place to enforce required fields or invariants that
// involve both the core and app configs.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	switch appCfg.AuthOutcomeMode {
	case "allow", "deny", "random":
	default:
		return fmt.Errorf("invalid auth_outcome_mode %q: must be 'allow', 'deny', or 'random'", appCfg.AuthOutcomeMode)
	}

	if appCfg.AuthOutcomePassRate < 0 || appCfg.AuthOutcomePassRate > 100 {
		return fmt.Errorf("invalid auth_outcome_pass_rate %d: must be 0-100", appCfg.AuthOutcomePassRate)
	}

	if appCfg.UploadMaxFileBytes <= 0 {
		return fmt.Errorf("invalid upload_max_file_bytes %d: must be positive", appCfg.UploadMaxFileBytes)
	}
	if appCfg.UploadMaxFiles <= 0 {
		return fmt.Errorf("invalid upload_max_files %d: must be positive", appCfg.UploadMaxFiles)
	}
	if appCfg.UploadProgressStep <= 0 || appCfg.UploadProgressStep > 100 {
		return fmt.Errorf("invalid upload_progress_step %d: must be 1-100", appCfg.UploadProgressStep)
	}

	if appCfg.QuotaTotalBytes < 0 {
		return fmt.Errorf("invalid quota_total_bytes %d: must not be negative", appCfg.QuotaTotalBytes)
	}

	return nil
}
