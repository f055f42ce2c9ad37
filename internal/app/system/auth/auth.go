// Package auth provides cookie-session management for the workbench.
//
// There is no authentication backend: the session only records which
// demo account signed in. Sessions are signed cookies via
// gorilla/sessions; everything else about a user lives in the in-memory
// account store.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// Session error classification for logging.
type sessionErrorType int

const (
	sessionErrUnknown sessionErrorType = iota
	sessionErrExpired                  // timestamp expired - normal
	sessionErrTampered                 // MAC invalid - potential attack
	sessionErrCorrupted                // decode/decrypt failed - corruption or key rotation
)

const (
	isAuthKey       = "is_authenticated"
	userIDKey       = "user_id"
	userNameKey     = "user_name"
	userEmailKey    = "user_email"
	sessionTokenKey = "session_token"
)

// SessionManager encapsulates the session store and configuration.
// Use NewSessionManager to create an instance.
type SessionManager struct {
	store  *sessions.CookieStore
	logger *zap.Logger
	name   string
}

// NewSessionManager creates a new SessionManager.
//
// sessionKey signs the cookie and must be ≥32 random chars in production
// (secure=true); in dev mode weak keys are allowed with a warning.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, &SessionConfigError{Message: "session key is empty; provide ≥32 random chars"}
	}

	isWeak := len(sessionKey) < 32 || isDefaultKey(sessionKey)
	if secure && isWeak {
		return nil, &SessionConfigError{
			Message: "session key is too weak for production; provide ≥32 random chars (not the default dev key)",
		}
	}
	if !secure && isWeak {
		logger.Warn("session key is weak; 32+ random chars required in production",
			zap.Int("length", len(sessionKey)),
			zap.Bool("is_default", isDefaultKey(sessionKey)))
	}

	if name == "" {
		name = "fileworkbench-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	store.Options = &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Secure:   secure,
		HttpOnly: true,
		// Lax allows cookies on top-level navigations while blocking
		// cross-site POSTs, which is right for a first-party session.
		SameSite: http.SameSiteLaxMode,
	}

	logger.Info("session manager initialized",
		zap.Bool("secure", secure),
		zap.String("name", name),
		zap.String("domain", domain))

	return &SessionManager{
		store:  store,
		logger: logger,
		name:   name,
	}, nil
}

// SessionConfigError is returned when session configuration is invalid.
type SessionConfigError struct {
	Message string
}

func (e *SessionConfigError) Error() string {
	return e.Message
}

// SessionName returns the configured session cookie name.
func (sm *SessionManager) SessionName() string {
	return sm.name
}

// GetSession retrieves the session for the request.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

// SessionUser represents the signed-in demo user in the request context.
type SessionUser struct {
	ID    string
	Name  string
	Email string
	Token string // session token for this login
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & "found?" flag from the request context.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// LoadSessionUser returns middleware that injects the user into context
// if signed in. Session decode failures start a fresh session rather
// than failing the request.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			errType, errCategory := classifySessionError(err)
			switch errType {
			case sessionErrExpired:
				sm.logger.Debug("session expired, starting fresh session",
					zap.String("category", errCategory),
					zap.String("path", r.URL.Path))
			case sessionErrTampered:
				sm.logger.Warn("session MAC validation failed (possible tampering)",
					zap.String("category", errCategory),
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr))
			default:
				sm.logger.Info("session decode failed, starting fresh session",
					zap.Error(err),
					zap.String("category", errCategory),
					zap.String("path", r.URL.Path))
			}
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if userID := getString(sess, userIDKey); userID != "" {
				u := &SessionUser{
					ID:    userID,
					Name:  getString(sess, userNameKey),
					Email: getString(sess, userEmailKey),
					Token: getString(sess, sessionTokenKey),
				}
				r = withUser(r, u)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAuth returns middleware that ensures there is a user in context.
// Browser requests are redirected to /login with a return URL; API
// callers get a plain 401.
func (sm *SessionManager) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}

		if wantsHTML(r) {
			ret := url.QueryEscape(currentURI(r))
			http.Redirect(w, r, "/login?return="+ret, http.StatusSeeOther)
			return
		}

		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// CreateSession establishes a session for the given account.
func (sm *SessionManager) CreateSession(w http.ResponseWriter, r *http.Request, userID, name, email string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		sess, _ = sm.store.New(r, sm.name)
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return err
	}

	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	sess.Values[userNameKey] = name
	sess.Values[userEmailKey] = email
	sess.Values[sessionTokenKey] = token

	return sess.Save(r, w)
}

// DestroySession terminates the user's session.
func (sm *SessionManager) DestroySession(w http.ResponseWriter, r *http.Request) {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return
	}

	sess.Values[isAuthKey] = false
	delete(sess.Values, userIDKey)
	delete(sess.Values, userNameKey)
	delete(sess.Values, userEmailKey)
	delete(sess.Values, sessionTokenKey)

	sess.Options.MaxAge = -1
	_ = sess.Save(r, w)
}

// GenerateSessionToken generates a random URL-safe token.
func GenerateSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// WithTestUser injects a user into the request context. Only for tests.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func getString(s *sessions.Session, key string) string {
	v, _ := s.Values[key].(string)
	return v
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") || accept == ""
}

func currentURI(r *http.Request) string {
	if r.URL.RawQuery != "" {
		return r.URL.Path + "?" + r.URL.RawQuery
	}
	return r.URL.Path
}

func isDefaultKey(key string) bool {
	return strings.Contains(key, "dev-only") || strings.Contains(key, "change-me")
}

// classifySessionError maps cookie-decode failures to a type and a
// short category string for logging.
func classifySessionError(err error) (sessionErrorType, string) {
	var scErr securecookie.Error
	if asSecurecookieError(err, &scErr) {
		switch {
		case scErr.IsDecode() && strings.Contains(scErr.Error(), "expired"):
			return sessionErrExpired, "expired"
		case strings.Contains(scErr.Error(), "the value is not valid"):
			return sessionErrTampered, "mac_invalid"
		case scErr.IsDecode():
			return sessionErrCorrupted, "decode_failed"
		}
	}
	return sessionErrUnknown, "unknown"
}

func asSecurecookieError(err error, target *securecookie.Error) bool {
	for err != nil {
		if scErr, ok := err.(securecookie.Error); ok {
			*target = scErr
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
