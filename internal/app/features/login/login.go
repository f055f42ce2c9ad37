// internal/app/features/login/login.go
package login

import (
	"net/http"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/normalize"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/outcome"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/viewdata"
	"github.com/dalemusser/waffle/pantry/query"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/dalemusser/waffle/pantry/urlutil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides login handlers.
//
// There is no authentication service behind this form: credentials are
// checked against the in-memory account store, and the backend's
// availability is simulated by the outcome source. A denied outcome maps
// to the "service temporarily unavailable" banner regardless of the
// credentials.
type Handler struct {
	accounts   *accountstore.Store
	sessionMgr *auth.SessionManager
	outcomes   outcome.Source
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new login Handler.
func NewHandler(
	accounts *accountstore.Store,
	sessionMgr *auth.SessionManager,
	outcomes outcome.Source,
	errLog *errorsfeature.ErrorLogger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		accounts:   accounts,
		sessionMgr: sessionMgr,
		outcomes:   outcomes,
		errLog:     errLog,
		logger:     logger,
	}
}

// Routes returns a chi.Router with login routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showLogin)
	r.Post("/", h.handleLogin)

	return r
}

// LoginVM is the view model for the login page.
type LoginVM struct {
	viewdata.BaseVM
	Error     string
	Notice    string
	Email     string
	ReturnURL string
}

// showLogin displays the login page.
func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	// Already signed in: go straight to the dashboard.
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	vm := LoginVM{
		BaseVM:    viewdata.New(r),
		ReturnURL: query.Get(r, "return"),
	}
	vm.Title = "Login"

	if r.URL.Query().Get("registered") == "1" {
		vm.Notice = "Account created. You can log in now."
	}

	templates.Render(w, r, "login/login", vm)
}

// handleLogin checks the submitted credentials and creates a session.
func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	email := normalize.Email(r.FormValue("email"))
	password := r.FormValue("password")
	returnURL := r.FormValue("return")

	rerender := func(errMsg string) {
		vm := LoginVM{
			BaseVM:    viewdata.New(r),
			Error:     errMsg,
			Email:     email,
			ReturnURL: returnURL,
		}
		vm.Title = "Login"
		templates.Render(w, r, "login/login", vm)
	}

	if email == "" || password == "" {
		rerender("Please enter your email and password.")
		return
	}

	// Simulated backend availability gate.
	if !h.outcomes.Allow() {
		h.logger.Info("login denied by outcome source", zap.String("email", email))
		rerender("Service temporarily unavailable. Please try again.")
		return
	}

	acct, err := h.accounts.Authenticate(email, password)
	if err != nil {
		h.logger.Info("login failed", zap.String("email", email))
		rerender("Email or password is incorrect.")
		return
	}

	if err := h.sessionMgr.CreateSession(w, r, acct.ID, acct.FullName, acct.Email); err != nil {
		h.errLog.Log(r, "failed to create session", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in", zap.String("user_id", acct.ID))
	http.Redirect(w, r, urlutil.SafeReturn(returnURL, "", "/"), http.StatusSeeOther)
}
