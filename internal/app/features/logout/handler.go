// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/auditlog"
	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/dalemusser/attendhub/internal/app/system/gate"
	"go.uber.org/zap"
)

type Handler struct {
	SessionMgr *auth.SessionManager
	AuditLog   *auditlog.Logger
	Log        *zap.Logger
}

func NewHandler(sessionMgr *auth.SessionManager, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{SessionMgr: sessionMgr, AuditLog: audit, Log: logger}
}

// ServeLogout clears the session and sends the browser to the login page.
// Logging out while logged out is allowed and ends up in the same place.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	loginID := auth.CurrentLoginID(r)
	wasIn := auth.CurrentState(r).Authenticated()

	state, err := h.SessionMgr.Logout(w, r)
	if err != nil {
		h.Log.Warn("logout: clear session failed", zap.Error(err))
	}

	if wasIn {
		h.AuditLog.Logout(r.Context(), r, loginID)
		h.Log.Info("user signed out",
			zap.String("login_id", loginID),
			zap.String("state", state.String()))
	}

	gate.RedirectTo(w, r, gate.LoginPath)
}
