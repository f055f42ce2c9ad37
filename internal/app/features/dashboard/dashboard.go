// Package dashboard renders the file workbench: the filtered, sorted
// entry listing with folder and file actions, the usage meter, and the
// upload panel.
package dashboard

import (
	"errors"
	"net/http"
	"net/url"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	entrystore "github.com/SadiqNaizam/fileworkbench/internal/app/store/entry"
	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	stagingstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/staging"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/normalize"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/sizeutil"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/viewdata"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dustin/go-humanize"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides dashboard handlers.
type Handler struct {
	entries  *entrystore.Store
	staging  *stagingstore.Store
	settings *sitesettingsstore.Store
	errLog   *errorsfeature.ErrorLogger
	logger   *zap.Logger
}

// NewHandler creates a new dashboard Handler.
func NewHandler(
	entries *entrystore.Store,
	staging *stagingstore.Store,
	settings *sitesettingsstore.Store,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		entries:  entries,
		staging:  staging,
		settings: settings,
		errLog:   errLog,
		logger:   logger,
	}
}

// Routes returns a chi.Router with dashboard routes mounted.
// Everything here requires a session.
func Routes(h *Handler, sessionMgr *auth.SessionManager) http.Handler {
	r := chi.NewRouter()
	r.Use(sessionMgr.RequireAuth)
	h.MountRoutes(r)
	return r
}

// MountRoutes registers the dashboard routes on an existing router.
// The dashboard lives at the application root, so the bootstrap layer
// registers these directly on the root router rather than mounting a
// subrouter; a wildcard mount at "/" would capture unknown paths before
// the catch-all 404 handler sees them.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.browse)
	r.Post("/folder/new", h.createFolder)
	r.Post("/entry/{id}/rename", h.renameEntry)
	r.Post("/entry/{id}/delete", h.deleteEntry)
	r.Post("/entry/{id}/favorite", h.toggleFavorite)
}

// EntryRow represents one listing row.
type EntryRow struct {
	ID       string
	Name     string
	IsFolder bool
	Size     string // display label, empty for folders
	Modified string // relative label ("3 days ago")
	Favorite bool
}

// UsageVM is the usage meter state.
type UsageVM struct {
	Used    string
	Total   string
	Percent int
}

// BrowseVM is the view model for the dashboard page.
type BrowseVM struct {
	viewdata.BaseVM
	Rows        []EntryRow
	SearchQuery string
	SortBy      string
	SortOrder   string
	Usage       UsageVM
	Staged      []models.StagedUpload
	TotalRows   int
	Success     string
	Error       string
}

// browse renders the listing with the active filter and sort.
func (h *Handler) browse(w http.ResponseWriter, r *http.Request) {
	searchQuery := normalize.QueryParam(r.URL.Query().Get("q"))
	spec := entrystore.ParseSortSpec(
		r.URL.Query().Get("sort"),
		r.URL.Query().Get("order"),
	)

	snapshot := h.entries.List()
	visible := entrystore.Project(snapshot, searchQuery, spec)

	rows := make([]EntryRow, 0, len(visible))
	for _, e := range visible {
		rows = append(rows, EntryRow{
			ID:       e.ID,
			Name:     e.Name,
			IsFolder: e.IsFolder(),
			Size:     e.SizeLabel,
			Modified: humanize.Time(e.ModifiedAt),
			Favorite: e.Favorite,
		})
	}

	quota := h.settings.Get().QuotaTotalBytes
	if quota <= 0 {
		quota = models.DefaultQuotaTotalBytes
	}
	used, percent := entrystore.Usage(snapshot, quota)

	vm := BrowseVM{
		BaseVM:      viewdata.New(r),
		Rows:        rows,
		SearchQuery: searchQuery,
		SortBy:      string(spec.Key),
		SortOrder:   string(spec.Dir),
		Usage: UsageVM{
			Used:    sizeutil.Format(used),
			Total:   sizeutil.Format(quota),
			Percent: percent,
		},
		Staged:    h.staging.Items(),
		TotalRows: len(rows),
	}
	vm.Title = "Dashboard"

	// Flash messages
	switch r.URL.Query().Get("success") {
	case "folder_created":
		vm.Success = "Folder created successfully"
	case "renamed":
		vm.Success = "Entry renamed successfully"
	case "deleted":
		vm.Success = "Entry deleted successfully"
	case "uploaded":
		vm.Success = "Upload complete"
	}

	switch r.URL.Query().Get("error") {
	case "blank_name":
		vm.Error = "A name is required"
	}

	templates.Render(w, r, "dashboard/dashboard", vm)
}

// createFolder adds a folder from the new-folder form.
func (h *Handler) createFolder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")

	created, err := h.entries.CreateFolder(name)
	if err != nil {
		if errors.Is(err, entrystore.ErrBlankName) {
			http.Redirect(w, r, h.backToListing(r, "error", "blank_name"), http.StatusSeeOther)
			return
		}
		h.errLog.Log(r, "failed to create folder", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("folder created",
		zap.String("id", created.ID),
		zap.String("name", created.Name))
	http.Redirect(w, r, h.backToListing(r, "success", "folder_created"), http.StatusSeeOther)
}

// renameEntry renames an entry. A vanished id is a silent no-op.
func (h *Handler) renameEntry(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	id := chi.URLParam(r, "id")
	name := r.FormValue("name")

	renamed, err := h.entries.Rename(id, name)
	switch {
	case errors.Is(err, entrystore.ErrBlankName):
		http.Redirect(w, r, h.backToListing(r, "error", "blank_name"), http.StatusSeeOther)
		return
	case errors.Is(err, entrystore.ErrNotFound):
		// The entry disappeared between render and submit; nothing to do.
		http.Redirect(w, r, h.backToListing(r, "", ""), http.StatusSeeOther)
		return
	case err != nil:
		h.errLog.Log(r, "failed to rename entry", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("entry renamed",
		zap.String("id", renamed.ID),
		zap.String("name", renamed.Name))
	http.Redirect(w, r, h.backToListing(r, "success", "renamed"), http.StatusSeeOther)
}

// deleteEntry removes an entry. A vanished id is a silent no-op.
func (h *Handler) deleteEntry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if h.entries.Remove(id) {
		h.logger.Info("entry deleted", zap.String("id", id))
		http.Redirect(w, r, h.backToListing(r, "success", "deleted"), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, h.backToListing(r, "", ""), http.StatusSeeOther)
}

// toggleFavorite flips the favorite flag. A vanished id is a silent no-op.
func (h *Handler) toggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if _, ok := h.entries.ToggleFavorite(id); !ok {
		http.Redirect(w, r, h.backToListing(r, "", ""), http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, h.backToListing(r, "", ""), http.StatusSeeOther)
}

// backToListing builds the redirect back to the listing, carrying the
// active filter and sort (from the form's hidden fields) plus an
// optional flash parameter.
func (h *Handler) backToListing(r *http.Request, flashKey, flashVal string) string {
	q := url.Values{}
	if v := normalize.QueryParam(r.FormValue("q")); v != "" {
		q.Set("q", v)
	}
	if v := r.FormValue("sort"); v != "" {
		q.Set("sort", v)
	}
	if v := r.FormValue("order"); v != "" {
		q.Set("order", v)
	}
	if flashKey != "" && flashVal != "" {
		q.Set(flashKey, flashVal)
	}
	if len(q) == 0 {
		return "/"
	}
	return "/?" + q.Encode()
}
