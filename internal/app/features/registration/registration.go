// internal/app/features/registration/registration.go
package registration

import (
	"errors"
	"net/http"

	errorsfeature "github.com/SadiqNaizam/fileworkbench/internal/app/features/errors"
	accountstore "github.com/SadiqNaizam/fileworkbench/internal/app/store/account"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/auth"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/formutil"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/inputval"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/normalize"
	"github.com/SadiqNaizam/fileworkbench/internal/app/system/outcome"
	"github.com/dalemusser/waffle/pantry/templates"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler provides registration handlers. New accounts go straight into
// the in-memory account store; the outcome source simulates the backend
// that would normally accept the registration.
type Handler struct {
	accounts   *accountstore.Store
	sessionMgr *auth.SessionManager
	outcomes   outcome.Source
	errLog     *errorsfeature.ErrorLogger
	logger     *zap.Logger
}

// NewHandler creates a new registration Handler.
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

// Routes returns a chi.Router with registration routes mounted.
func Routes(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Get("/", h.showRegistration)
	r.Post("/", h.handleRegistration)

	return r
}

// RegistrationVM is the view model for the registration page.
type RegistrationVM struct {
	formutil.Base
	FullName string
	Email    string
}

// registerInput is the validated form payload.
type registerInput struct {
	FullName        string `json:"full_name" validate:"required,max=200" label:"Full name"`
	Email           string `json:"email" validate:"required,email,max=254" label:"Email"`
	Password        string `json:"password" validate:"required,min=8,max=72" label:"Password"`
	ConfirmPassword string `json:"confirm_password" validate:"required" label:"Password confirmation"`
}

// showRegistration displays the registration page.
func (h *Handler) showRegistration(w http.ResponseWriter, r *http.Request) {
	if _, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	vm := RegistrationVM{
		Base: formutil.NewBase(r, "Create account", "/login"),
	}

	templates.Render(w, r, "registration/registration", vm)
}

// handleRegistration validates the form and creates the account.
func (h *Handler) handleRegistration(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.errLog.Log(r, "failed to parse form", err)
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	input := registerInput{
		FullName:        normalize.Name(r.FormValue("full_name")),
		Email:           normalize.Email(r.FormValue("email")),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	rerender := func(errMsg string, fields map[string]string) {
		vm := RegistrationVM{
			Base:     formutil.NewBase(r, "Create account", "/login"),
			FullName: input.FullName,
			Email:    input.Email,
		}
		vm.SetError(errMsg)
		vm.FieldErrors = fields
		templates.Render(w, r, "registration/registration", vm)
	}

	if result := inputval.Validate(input); result.HasErrors() {
		rerender(result.First(), result.Fields())
		return
	}

	if input.Password != input.ConfirmPassword {
		rerender("Passwords do not match.", map[string]string{
			"confirm_password": "Passwords do not match.",
		})
		return
	}

	// Simulated backend availability gate.
	if !h.outcomes.Allow() {
		h.logger.Info("registration denied by outcome source",
			zap.String("email", input.Email))
		rerender("Service temporarily unavailable. Please try again.", nil)
		return
	}

	acct, err := h.accounts.Create(input.Email, input.FullName, input.Password)
	if err != nil {
		if errors.Is(err, accountstore.ErrEmailTaken) {
			rerender("An account with that email already exists.", map[string]string{
				"email": "An account with that email already exists.",
			})
			return
		}
		h.errLog.Log(r, "failed to create account", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.logger.Info("account registered", zap.String("user_id", acct.ID))
	http.Redirect(w, r, "/login?registered=1", http.StatusSeeOther)
}
