// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/session"
	"github.com/dalemusser/attendhub/internal/domain/models"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

/*─────────────────────────────────────────────────────────────────────────────*
| Session constants                                                           |
*─────────────────────────────────────────────────────────────────────────────*/

const (
	DefaultSessionName = "attendhub-session"

	isAuthKey  = "is_authenticated"
	userRole   = "user_role"
	userLogin  = "login_id"
	minKeySize = 32
)

// SessionManager stores one session.State per browser in a signed cookie.
// Each browser is one running UI instance; the server keeps no session
// state of its own.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true) cookies are Secure + SameSite=None.
// In local dev over http://localhost, use secure=false so cookies are accepted.
func NewSessionManager(sessionKey, name, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥%d random chars", minKeySize)
	}
	if len(sessionKey) < minKeySize {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if name == "" {
		name = DefaultSessionName
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	// MaxAge also bounds the signed timestamp accepted by the codec.
	store.MaxAge(int(maxAge.Seconds()))
	store.Options.Domain = domain
	store.Options.Path = "/"
	store.Options.Secure = secure
	store.Options.HttpOnly = true
	if secure {
		store.Options.SameSite = http.SameSiteNoneMode
	} else {
		store.Options.SameSite = http.SameSiteLaxMode
	}

	logger.Info("session store initialized",
		zap.String("name", name),
		zap.Bool("secure", secure),
		zap.String("domain", domain),
		zap.Duration("max_age", maxAge))

	return &SessionManager{store: store, name: name, log: logger}, nil
}

// Store exposes the underlying cookie store (cookie option inspection in tests).
func (sm *SessionManager) Store() *sessions.CookieStore { return sm.store }

// Name is the session cookie name.
func (sm *SessionManager) Name() string { return sm.name }

// GetSession returns the raw gorilla session. On a decode error a fresh
// session is still returned together with the error.
func (sm *SessionManager) GetSession(r *http.Request) (*sessions.Session, error) {
	return sm.store.Get(r, sm.name)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Request context                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

type ctxKey string

const (
	stateKey   ctxKey = "sessionState"
	loginIDKey ctxKey = "sessionLoginID"
)

// CurrentState returns the session snapshot for this request. Requests that
// did not pass through LoadSession are logged out.
func CurrentState(r *http.Request) session.State {
	if s, ok := r.Context().Value(stateKey).(session.State); ok {
		return s
	}
	return session.LoggedOut()
}

// CurrentLoginID returns the login ID recorded at login, used by views to
// pick the profile to display. The gate never looks at it.
func CurrentLoginID(r *http.Request) string {
	id, _ := r.Context().Value(loginIDKey).(string)
	return id
}

// WithState returns a copy of r carrying s (and loginID for views).
func WithState(r *http.Request, s session.State, loginID string) *http.Request {
	ctx := context.WithValue(r.Context(), stateKey, s)
	ctx = context.WithValue(ctx, loginIDKey, loginID)
	return r.WithContext(ctx)
}

/*─────────────────────────────────────────────────────────────────────────────*
| Middleware                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// LoadSession decodes the session cookie into a session.State and stores it
// in the request context. Undecodable cookies and unknown roles yield
// LoggedOut.
func (sm *SessionManager) LoadSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state, loginID := sm.decode(r)
		next.ServeHTTP(w, WithState(r, state, loginID))
	})
}

func (sm *SessionManager) decode(r *http.Request) (session.State, string) {
	sess, err := sm.GetSession(r)
	if err != nil {
		// A cookie signed with another key, expired or edited is routine
		// (key rotation, old tabs); anything else is worth a warning.
		if cerr, ok := err.(securecookie.Error); ok && cerr.IsDecode() {
			sm.log.Debug("session cookie rejected; treating as logged out", zap.Error(err))
		} else {
			sm.log.Warn("session decode failed; treating as logged out", zap.Error(err))
		}
		return session.LoggedOut(), ""
	}

	isAuth, _ := sess.Values[isAuthKey].(bool)
	if !isAuth {
		return session.LoggedOut(), ""
	}

	raw, _ := sess.Values[userRole].(string)
	role, ok := models.ParseRole(raw)
	if !ok {
		// Only the login action writes roles; deny anything else.
		sm.log.Debug("session carries unknown role; treating as logged out",
			zap.String("role", raw))
		return session.LoggedOut(), ""
	}

	loginID, _ := sess.Values[userLogin].(string)
	return session.FromRole(role), loginID
}

/*─────────────────────────────────────────────────────────────────────────────*
| Actions                                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

// Login applies the login action for role and writes the new snapshot to the
// session cookie. Credentials must already have been checked by the caller.
func (sm *SessionManager) Login(w http.ResponseWriter, r *http.Request, role models.Role, loginID string) (session.State, error) {
	next := session.Reduce(CurrentState(r), session.Login(role))
	if !next.Authenticated() {
		return CurrentState(r), fmt.Errorf("login: invalid role %v", role)
	}

	sess, err := sm.GetSession(r)
	if err != nil {
		// A stale or tampered cookie is replaced by the fresh one below.
		sm.log.Debug("login: replacing undecodable session", zap.Error(err))
	}
	sess.Values[isAuthKey] = true
	sess.Values[userRole] = role.String()
	sess.Values[userLogin] = loginID

	if err := sess.Save(r, w); err != nil {
		return CurrentState(r), fmt.Errorf("login: save session: %w", err)
	}
	return next, nil
}

// Logout applies the logout action and deletes the session cookie. It is
// idempotent: logging out while logged out still returns LoggedOut and
// clears whatever cookie the browser sent.
func (sm *SessionManager) Logout(w http.ResponseWriter, r *http.Request) (session.State, error) {
	next := session.Reduce(CurrentState(r), session.Logout())

	sess, err := sm.GetSession(r)
	if err != nil {
		sm.log.Debug("logout: session decode failed; clearing cookie anyway", zap.Error(err))
	}

	// The deletion cookie must match the original store settings.
	opts := sm.store.Options
	sess.Options = &sessions.Options{
		Domain:   opts.Domain,
		Path:     opts.Path,
		Secure:   opts.Secure,
		HttpOnly: opts.HttpOnly,
		SameSite: opts.SameSite,
		MaxAge:   -1,
	}
	for k := range sess.Values {
		delete(sess.Values, k)
	}

	if err := sess.Save(r, w); err != nil {
		return next, fmt.Errorf("logout: save session: %w", err)
	}
	return next, nil
}
