package registration

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/outcome"
	"github.com/SadiqNaizam/fileworkbench/internal/testutil"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T, accounts *accountstore.Store, outcomes outcome.Source) http.Handler {
	t.Helper()
	logger := zap.NewNop()
	sessionMgr, err := auth.NewSessionManager("test-session-key-0123456789ABCDEF", "", "", time.Hour, false, logger)
	if err != nil {
		t.Fatalf("NewSessionManager() returned error: %v", err)
	}
	h := NewHandler(accounts, sessionMgr, outcomes, errorsfeature.NewErrorLogger(logger), logger)
	return Routes(h)
}

func postForm(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return testutil.WithCSRFToken(req)
}

func validForm() url.Values {
	return url.Values{
		"full_name":        {"Jane Doe"},
		"email":            {"jane@example.com"},
		"password":         {"long enough password"},
		"confirm_password": {"long enough password"},
	}
}

func TestShowRegistration(t *testing.T) {
	testutil.MustBootTemplates(t)
	router := newTestRouter(t, accountstore.New(), outcome.Fixed(true))

	req := testutil.WithCSRFToken(httptest.NewRequest(http.MethodGet, "/", nil))
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Create account")
	rec.AssertContains(t, `name="full_name"`)
	rec.AssertContains(t, `name="confirm_password"`)
}

func TestShowRegistration_AlreadySignedIn(t *testing.T) {
	router := newTestRouter(t, accountstore.New(), outcome.Fixed(true))

	req := testutil.NewAuthenticatedRequestWithCSRF(http.MethodGet, "/", testutil.DemoUser())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/")
}

func TestHandleRegistration_Success(t *testing.T) {
	accounts := accountstore.New()
	router := newTestRouter(t, accounts, outcome.Fixed(true))

	req := postForm("/", validForm())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertRedirect(t, "/login?registered=1")

	acct, ok := accounts.GetByEmail("jane@example.com")
	if !ok {
		t.Fatal("account not created")
	}
	if acct.FullName != "Jane Doe" {
		t.Errorf("FullName = %q", acct.FullName)
	}
}

func TestHandleRegistration_MissingFields(t *testing.T) {
	testutil.MustBootTemplates(t)
	accounts := accountstore.New()
	router := newTestRouter(t, accounts, outcome.Fixed(true))

	form := validForm()
	form.Del("full_name")

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Full name is required.")
	if accounts.Count() != 0 {
		t.Error("invalid submission must not create an account")
	}
}

func TestHandleRegistration_ShortPassword(t *testing.T) {
	testutil.MustBootTemplates(t)
	router := newTestRouter(t, accountstore.New(), outcome.Fixed(true))

	form := validForm()
	form.Set("password", "short")
	form.Set("confirm_password", "short")

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "at least 8")
}

func TestHandleRegistration_PasswordMismatch(t *testing.T) {
	testutil.MustBootTemplates(t)
	accounts := accountstore.New()
	router := newTestRouter(t, accounts, outcome.Fixed(true))

	form := validForm()
	form.Set("confirm_password", "something else entirely")

	req := postForm("/", form)
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Passwords do not match.")
	if accounts.Count() != 0 {
		t.Error("mismatched passwords must not create an account")
	}
}

func TestHandleRegistration_EmailTaken(t *testing.T) {
	testutil.MustBootTemplates(t)
	accounts := accountstore.New()
	accounts.Create("jane@example.com", "Existing Jane", "some password")
	router := newTestRouter(t, accounts, outcome.Fixed(true))

	req := postForm("/", validForm())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "An account with that email already exists.")
	if accounts.Count() != 1 {
		t.Errorf("Count() = %d, want 1", accounts.Count())
	}
}

func TestHandleRegistration_OutcomeDenied(t *testing.T) {
	testutil.MustBootTemplates(t)
	accounts := accountstore.New()
	router := newTestRouter(t, accounts, outcome.Fixed(false))

	req := postForm("/", validForm())
	rec := testutil.NewRecorder()
	router.ServeHTTP(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Service temporarily unavailable. Please try again.")
	if accounts.Count() != 0 {
		t.Error("denied outcome must not create an account")
	}
}
