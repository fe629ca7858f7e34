// internal/app/bootstrap/middleware.go
package bootstrap

import (
	"net/http"

	errorsfeature "github.com/dalemusser/attendhub/internal/app/features/errors"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/csrf"
	"go.uber.org/zap"
)

// plaintextCSRF marks requests as plain HTTP so the CSRF check does not
// demand a same-origin Referer on a dev server without TLS.
func plaintextCSRF(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
	})
}

// csrfFailure renders the 403 shown when a form post fails the token check.
func csrfFailure(logger *zap.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warn("csrf check failed",
			zap.String("path", r.URL.Path),
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.Error(csrf.FailureReason(r)))
		errorsfeature.Render(w, r, http.StatusForbidden, "Forbidden",
			"Your form expired. Go back, reload the page and try again.", "/")
	})
}
