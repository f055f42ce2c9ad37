// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"
	"strings"
	"time"

	dashboardfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/dashboard"
	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	loginfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/login"
	logoutfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/logout"
	registrationfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/registration"
	settingsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/settings"
	uploadsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/uploads"
	appresources "github.com/SadiqNaizam/fileworkbench/internal/app/resources"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/config"
	"github.com/dalemusser/waffle/middleware"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, store construction, and any
// Startup hooks have completed. At this point you have access to:
//   - coreCfg: WAFFLE core configuration (ports, env, timeouts, etc.)
//   - appCfg: app-specific configuration defined in AppConfig
//   - deps: the in-memory stores bundled in DBDeps
//   - logger: the fully configured zap.Logger for this app
//
// This function should:
//  1. Create a router (chi, standard mux, etc.)
//  2. Mount feature routers for different parts of the application
//  3. Add any additional middleware needed for specific routes
//  4. Return the configured router as an http.Handler
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Create the session manager using app config.
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}

	// Initialize and boot the template engine once at startup.
	// Dev mode enables template reloading for faster iteration.
	eng := templates.New(coreCfg.Env == "dev")
	if err := eng.Boot(logger); err != nil {
		logger.Error("template engine boot failed", zap.Error(err))
		return nil, err
	}
	templates.UseEngine(eng, logger)

	// Initialize viewdata with the settings store so every page carries
	// the current site name and footer.
	viewdata.Init(deps.Settings)

	// Create error logger for handlers.
	errLog := errorsfeature.NewErrorLogger(logger)

	r := chi.NewRouter()

	// ─────────────────────────────────────────────────────────────────────────────
	// Global Middleware (applies to ALL routes)
	// ─────────────────────────────────────────────────────────────────────────────

	// Request timeout middleware: prevents requests from hanging indefinitely.
	r.Use(chimw.Timeout(30 * time.Second))

	// CORS middleware: must be early in the chain to handle preflight requests.
	r.Use(middleware.CORSFromConfig(coreCfg))

	// Security headers middleware: adds X-Frame-Options, X-Content-Type-Options, etc.
	r.Use(middleware.SecurityHeadersFromConfig(coreCfg))

	// Session middleware: loads SessionUser into context if logged in.
	r.Use(sessionMgr.LoadSessionUser)

	// CSRF protection middleware with path-based exemption for the upload
	// API. Cookie name is "fileworkbench_csrf" to avoid collisions with
	// other services on the same domain.
	csrfOpts := []csrf.Option{
		csrf.Secure(secure),
		csrf.Path("/"),
		csrf.CookieName("fileworkbench_csrf"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			logger.Warn("CSRF validation failed",
				zap.String("path", req.URL.Path),
				zap.String("method", req.Method),
				zap.String("reason", csrf.FailureReason(req).Error()),
			)
			http.Error(w, "CSRF token invalid or missing", http.StatusForbidden)
		})),
	}
	// In dev mode, trust localhost origins for CSRF validation.
	if !secure {
		csrfOpts = append(csrfOpts, csrf.TrustedOrigins([]string{
			"localhost:8080",
			"localhost:3000",
			"127.0.0.1:8080",
			"127.0.0.1:3000",
		}))
	}
	if appCfg.SessionDomain != "" {
		csrfOpts = append(csrfOpts, csrf.Domain(appCfg.SessionDomain))
	}
	csrfProtect := csrf.Protect([]byte(appCfg.CSRFKey), csrfOpts...)

	// Wrap CSRF middleware to skip the upload API: those routes are
	// session-authenticated JSON called from our own JS, which sends the
	// token in X-CSRF-Token but has no form field to validate.
	csrfMiddleware := func(next http.Handler) http.Handler {
		csrfHandler := csrfProtect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if strings.HasPrefix(req.URL.Path, "/uploads") {
				next.ServeHTTP(w, req)
				return
			}
			csrfHandler.ServeHTTP(w, req)
		})
	}
	r.Use(csrfMiddleware)

	// ─────────────────────────────────────────────────────────────────────────────
	// Routes
	// ─────────────────────────────────────────────────────────────────────────────

	// /assets/* serves embedded assets (bundled into the binary)
	r.Handle("/assets/*", appresources.AssetsHandler("/assets"))

	// Authentication
	loginHandler := loginfeature.NewHandler(deps.Accounts, sessionMgr, deps.Outcomes, errLog, logger)
	r.Mount("/login", loginfeature.Routes(loginHandler))

	registrationHandler := registrationfeature.NewHandler(deps.Accounts, sessionMgr, deps.Outcomes, errLog, logger)
	r.Mount("/registration", registrationfeature.Routes(registrationHandler))

	logoutHandler := logoutfeature.NewHandler(sessionMgr, logger)
	r.Mount("/logout", logoutfeature.Routes(logoutHandler, sessionMgr))

	// Upload staging API (session-authenticated JSON, used by dashboard JS)
	uploadsHandler := uploadsfeature.NewHandler(deps.Staging, deps.Entries, errLog, logger)
	r.Mount("/uploads", uploadsfeature.Routes(uploadsHandler))

	// Site settings
	settingsHandler := settingsfeature.NewHandler(deps.Settings, errLog, logger)
	r.Mount("/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

	// File dashboard at the root. Registered as a group rather than a
	// mount so unmatched paths still reach the catch-all 404 below.
	dashboardHandler := dashboardfeature.NewHandler(deps.Entries, deps.Staging, deps.Settings, errLog, logger)
	r.Group(func(gr chi.Router) {
		gr.Use(sessionMgr.RequireAuth)
		dashboardHandler.MountRoutes(gr)
	})

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Get("/forbidden", errorsHandler.Forbidden)
	r.Get("/unauthorized", errorsHandler.Unauthorized)

	// 404 catch-all for unmatched routes
	r.NotFound(errorsHandler.NotFound)

	return r, nil
}
