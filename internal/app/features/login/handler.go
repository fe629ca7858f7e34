// internal/app/features/login/handler.go
package login

import (
	"context"
	"errors"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/attendhub/internal/app/features/errors"
	accountstore "github.com/dalemusser/attendhub/internal/app/store/accounts"
	loginstore "github.com/dalemusser/attendhub/internal/app/store/logins"
	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"github.com/dalemusser/attendhub/internal/app/system/inputval"
	"github.com/dalemusser/attendhub/internal/app/system/ratelimit"
	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"github.com/dalemusser/attendhub/internal/app/system/viewdata"
	"go.uber.org/zap"
)

// genericFailure is shown for every credential failure so the form never
// reveals whether a login ID exists.
const genericFailure = "Invalid login ID or password."

// Observer counts login outcomes.
type Observer interface {
	ObserveLogin(result string)
}

type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	ErrLog     *uierrors.ErrorLogger
	Accounts   *accountstore.Store
	Logins     *loginstore.Store
	Limiter    *ratelimit.LoginLimiter
	AuditLog   *auditlog.Logger
	Metrics    Observer // may be nil
	ShowDemo   bool     // list the demo login IDs under the form
}

func NewHandler(
	sessionMgr *auth.SessionManager,
	errLog *uierrors.ErrorLogger,
	accounts *accountstore.Store,
	logins *loginstore.Store,
	limiter *ratelimit.LoginLimiter,
	audit *auditlog.Logger,
	metrics Observer,
	showDemo bool,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		ErrLog:     errLog,
		Accounts:   accounts,
		Logins:     logins,
		Limiter:    limiter,
		AuditLog:   audit,
		Metrics:    metrics,
		ShowDemo:   showDemo,
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Template-data                                                               |
*─────────────────────────────────────────────────────────────────────────────*/

type loginFormData struct {
	viewdata.BaseVM
	FormLoginID  string // what the user typed
	DemoAccounts []demoAccount
}

type demoAccount struct {
	LoginID string
	Role    string
}

// loginInput is validated with inputval.
type loginInput struct {
	LoginID  string `validate:"required,max=254" label:"Login ID"`
	Password string `validate:"required,max=128" label:"Password"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET /login                                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	h.renderForm(w, r, http.StatusOK, "", "")
}

func (h *Handler) renderForm(w http.ResponseWriter, r *http.Request, status int, errMsg, loginID string) {
	data := loginFormData{
		BaseVM:      viewdata.NewBaseVM(r, "Sign in"),
		FormLoginID: loginID,
	}
	data.Error = errMsg
	if h.ShowDemo && h.Accounts != nil {
		for _, a := range h.Accounts.List(r.Context()) {
			data.DemoAccounts = append(data.DemoAccounts, demoAccount{LoginID: a.LoginID, Role: a.Role.Label()})
		}
	}
	viewdata.Render(w, r, status, "login", data)
}

func (h *Handler) observe(result string) {
	if h.Metrics != nil {
		h.Metrics.ObserveLogin(result)
	}
}

/*─────────────────────────────────────────────────────────────────────────────*
| POST /login                                                                 |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.ErrLog.LogBadRequest(w, r, "parse form failed", err, "Invalid form data.", "/login")
		return
	}

	in := loginInput{
		LoginID:  strings.TrimSpace(r.PostFormValue("login_id")),
		Password: r.PostFormValue("password"),
	}
	if res := inputval.Validate(in); res.HasErrors() {
		h.observe("invalid")
		h.renderForm(w, r, http.StatusUnprocessableEntity, res.First(), in.LoginID)
		return
	}

	if ok, reason := h.Limiter.Check(r, in.LoginID); !ok {
		h.observe("limited")
		h.AuditLog.LoginRateLimited(r.Context(), r, in.LoginID)
		h.renderForm(w, r, http.StatusTooManyRequests, reason, in.LoginID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Handler())
	defer cancel()

	acct, err := h.Accounts.Authenticate(ctx, in.LoginID, in.Password)
	if err != nil {
		if !errors.Is(err, accountstore.ErrInvalidCredentials) {
			h.ErrLog.LogServerError(w, r, "authenticate failed", err, "Unable to sign in right now.", "/login")
			return
		}
		h.observe("failure")
		h.AuditLog.LoginFailed(ctx, r, in.LoginID, "invalid credentials")
		h.renderForm(w, r, http.StatusUnauthorized, genericFailure, in.LoginID)
		return
	}

	state, err := h.SessionMgr.Login(w, r, acct.Role, acct.LoginID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "session login failed", err, "Unable to sign in right now.", "/login")
		return
	}

	h.Limiter.ResetLoginID(acct.LoginID)
	h.Logins.CreateFrom(ctx, r, acct.LoginID)
	h.AuditLog.LoginSuccess(ctx, r, acct.LoginID, acct.Role.String())
	h.observe("success")
	h.Log.Info("user signed in",
		zap.String("login_id", acct.LoginID),
		zap.String("state", state.String()))

	gate.RedirectTo(w, r, gate.DashboardFor(acct.Role))
}
