// Package viewdata builds the view-model fields every page shares.
package viewdata

import (
	"html/template"
	"net/http"

	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/htmlsanitize"
	"github.com/SadiqNaizam/fileworkbench/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/gorilla/csrf"
)

// BaseVM contains common fields for all view models.
// Embed this struct in your feature-specific view models.
//
// Usage:
//
//	type myPageData struct {
//	    viewdata.BaseVM
//	    // page-specific fields...
//	}
type BaseVM struct {
	// Site settings
	SiteName   string
	FooterHTML template.HTML

	// User context (from auth middleware)
	IsLoggedIn bool
	UserID     string
	UserName   string
	Email      string

	// Page context
	Title       string
	BackURL     string
	CurrentPath string

	// CSRF token for forms (use in hidden input field)
	CSRFToken string
}

// settingsStore is set by Init and read by New for site name and footer.
var settingsStore *sitesettingsstore.Store

// Init wires the settings store into viewdata.
// Call this once at startup from bootstrap.
func Init(store *sitesettingsstore.Store) {
	settingsStore = store
}

// New creates a BaseVM populated from the request and site settings.
// This is the standard way to create a BaseVM for most handlers.
func New(r *http.Request) BaseVM {
	vm := BaseVM{
		SiteName:    models.DefaultSiteName,
		FooterHTML:  htmlsanitize.SanitizeToHTML(models.DefaultFooterHTML),
		CurrentPath: httpnav.CurrentPath(r),
		CSRFToken:   csrf.Token(r),
	}

	if user, ok := auth.CurrentUser(r); ok {
		vm.IsLoggedIn = true
		vm.UserID = user.ID
		vm.UserName = user.Name
		vm.Email = user.Email
	}

	if settingsStore != nil {
		settings := settingsStore.Get()
		vm.SiteName = settings.SiteName
		footerHTML := settings.FooterHTML
		if footerHTML == "" {
			footerHTML = models.DefaultFooterHTML
		}
		vm.FooterHTML = htmlsanitize.SanitizeToHTML(footerHTML)
	}

	return vm
}

// NewPage creates a BaseVM with a title and a resolved back URL.
func NewPage(r *http.Request, title, backDefault string) BaseVM {
	vm := New(r)
	vm.Title = title
	vm.BackURL = httpnav.ResolveBackURL(r, backDefault)
	return vm
}

// SiteName returns the configured site name, or the default when the
// settings store has not been wired yet (tests, early startup).
func SiteName() string {
	if settingsStore == nil {
		return models.DefaultSiteName
	}
	return settingsStore.Get().SiteName
}
