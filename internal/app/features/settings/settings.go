// internal/app/features/settings/settings.go
package settings

import (
	"net/http"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/htmlsanitize"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/normalize"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/sizeutil"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/viewdata"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MaxFooterLength is the maximum allowed length for footer HTML (10KB).
const MaxFooterLength = 10000

// Handler provides settings handlers.
type Handler struct {
	settings *sitesettingsstore.Store
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new settings Handler.
func NewHandler(
	settings *sitesettingsstore.Store,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		settings: settings,
		errLog:   errLog,
		logger:   logger,
	}
}

// Routes returns a chi.Router with settings routes mounted.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)

	r.Get("/", h.show)
	r.Post("/", h.update)

	return r
}

// SettingsVM is the view model for the settings page.
type SettingsVM struct {
	viewdata.BaseVM
	Settings   models.SiteSettings
	QuotaLabel string // display form of the quota ("10.00 GB")
	Success    string
	Error      string
}

// show displays the settings page.
func (h *Handler) show(w http.ResponseWriter, r *http.Request) {
	settings := h.settings.Get()

	vm := SettingsVM{
		BaseVM:     viewdata.New(r),
		Settings:   settings,
		QuotaLabel: sizeutil.Format(settings.QuotaTotalBytes),
	}
	vm.Title = "Site Settings"

	if r.URL.Query().Get("success") == "1" {
		vm.Success = "Settings updated successfully"
	}

	templates.Render(w, r, "settings/show", vm)
}

// update saves the settings form.
func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	siteName := normalize.Name(r.FormValue("site_name"))
	rawFooterHTML := r.FormValue("footer_html")
	quotaLabel := normalize.Name(r.FormValue("quota"))

	if siteName == "" {
		h.renderWithError(w, r, "Site name is required.")
		return
	}
	if len(rawFooterHTML) > MaxFooterLength {
		h.renderWithError(w, r, "Footer HTML is too long. Maximum length is 10,000 characters.")
		return
	}

	var quotaBytes int64
	if quotaLabel != "" {
		parsed, err := sizeutil.Parse(quotaLabel)
		if err != nil || parsed <= 0 {
			h.renderWithError(w, r, `Quota must be a size like "10.00 GB".`)
			return
		}
		quotaBytes = parsed
	}

	actor, _ := auth.CurrentUser(r)
	actorName := ""
	if actor != nil {
		actorName = actor.Name
	}

	updated := h.settings.Update(sitesettingsstore.UpdateInput{
		SiteName:        siteName,
		FooterHTML:      htmlsanitize.Sanitize(rawFooterHTML),
		QuotaTotalBytes: quotaBytes,
		UpdatedByName:   actorName,
	})

	h.logger.Info("site settings updated",
		zap.String("site_name", updated.SiteName),
		zap.Int64("quota_bytes", updated.QuotaTotalBytes),
		zap.String("updated_by", actorName))

	http.Redirect(w, r, "/settings?success=1", http.StatusSeeOther)
}

// renderWithError re-renders the settings page with an error banner and
// the submitted values echoed back.
func (h *Handler) renderWithError(w http.ResponseWriter, r *http.Request, msg string) {
	settings := h.settings.Get()
	settings.SiteName = normalize.Name(r.FormValue("site_name"))
	settings.FooterHTML = r.FormValue("footer_html")

	vm := SettingsVM{
		BaseVM:     viewdata.New(r),
		Settings:   settings,
		QuotaLabel: normalize.Name(r.FormValue("quota")),
		Error:      msg,
	}
	vm.Title = "Site Settings"

	templates.Render(w, r, "settings/show", vm)
}
