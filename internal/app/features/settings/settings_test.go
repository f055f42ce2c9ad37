package settings

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	sitesettingsstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/sitesettings"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, settings *sitesettingsstore.Store) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-0123456789ABCDEF", "", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager() returned error: %v", err)
	}
	return Routes(NewHandler(settings, errorsfeature.NewErrorLogger(logger), logger), sessionMgr)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithCSRFToken(testutil.WithUser(req, testutil.DemoUser()))
}

func validForm() url.Values {
	return url.Values{
		"site_name":   {"Team Drive"},
		"quota":       {"20.00 GB"},
		"footer_html": {"<p>Custom footer</p>"},
	}
}

func TestShow(t *testing.T) {
	testutil.MustBootTemplates(t)
	router := newTestRouter(t, sitesettingsstore.New())

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/", testutil.DemoUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Site Settings")
	rec.AssertContains(t, `name="site_name"`)
	// Default 10 GiB quota renders in display form.
	rec.AssertContains(t, "10.00 GB")
}

func TestShow_SuccessBanner(t *testing.T) {
	testutil.MustBootTemplates(t)
	router := newTestRouter(t, sitesettingsstore.New())

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/?success=1", testutil.DemoUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Settings updated successfully")
}

func TestShow_RequiresSession(t *testing.T) {
	router := newTestRouter(t, sitesettingsstore.New())

	req := testutil.NewRequest(http.MethodGet, "/")
	req.Header.Set("Accept", "text/html")
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect to login", rec.Code)
	}
	if location := rec.Header().Get("Location"); !strings.HasPrefix(location, "/login") {
		t.Errorf("Location = %q, want /login with return URL", location)
	}
}

func TestUpdate_Success(t *testing.T) {
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	req := postForm("/", validForm())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/settings?success=1")

	got := settings.Get()
	if got.SiteName != "Team Drive" {
		t.Errorf("SiteName = %q", got.SiteName)
	}
	if got.QuotaTotalBytes != 20<<30 {
		t.Errorf("QuotaTotalBytes = %d, want 20 GiB", got.QuotaTotalBytes)
	}
	if got.UpdatedByName != "Demo User" {
		t.Errorf("UpdatedByName = %q, want the session user's name", got.UpdatedByName)
	}
	if got.UpdatedAt == nil {
		t.Error("UpdatedAt not set")
	}
}

func TestUpdate_SanitizesFooter(t *testing.T) {
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	form := validForm()
	form.Set("footer_html", `<p>ok</p><script>alert("x")</script>`)

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/settings?success=1")

	got := settings.Get()
	if strings.Contains(got.FooterHTML, "<script") {
		t.Errorf("FooterHTML kept a script tag: %q", got.FooterHTML)
	}
	if !strings.Contains(got.FooterHTML, "<p>ok</p>") {
		t.Errorf("FooterHTML lost safe markup: %q", got.FooterHTML)
	}
}

func TestUpdate_BlankSiteName(t *testing.T) {
	testutil.MustBootTemplates(t)
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	form := validForm()
	form.Set("site_name", "   ")

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Site name is required.")
	if settings.Get().UpdatedAt != nil {
		t.Error("invalid submission must not save")
	}
}

func TestUpdate_FooterTooLong(t *testing.T) {
	testutil.MustBootTemplates(t)
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	form := validForm()
	form.Set("footer_html", strings.Repeat("x", MaxFooterLength+1))

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Footer HTML is too long. Maximum length is 10,000 characters.")
	if settings.Get().UpdatedAt != nil {
		t.Error("oversized footer must not save")
	}
}

func TestUpdate_BadQuota(t *testing.T) {
	testutil.MustBootTemplates(t)
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	for _, quota := range []string{"lots", "10.00 XB", "-1.00 GB"} {
		form := validForm()
		form.Set("quota", quota)

		req := postForm("/", form)
		rec := testutil.NewRecorder()
		router.ServeHTTP(rec, req)

		rec.AssertStatus(t, http.StatusOK)
		rec.AssertContains(t, `Quota must be a size like "10.00 GB".`)
	}
	if settings.Get().UpdatedAt != nil {
		t.Error("invalid quota must not save")
	}
}

func TestUpdate_BlankQuotaKeepsCurrent(t *testing.T) {
	settings := sitesettingsstore.New()
	router := newTestRouter(t, settings)

	form := validForm()
	form.Set("quota", "")

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/settings?success=1")
	if got := settings.Get(); got.QuotaTotalBytes != 10<<30 {
		t.Errorf("QuotaTotalBytes = %d, want the default kept", got.QuotaTotalBytes)
	}
}
