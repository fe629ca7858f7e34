// internal/app/system/gate/middleware.go
package gate

import (
	"net/http"

	"github.com/dalemusser/attendhub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Recorder receives one observation per gate decision.
type Recorder interface {
	ObserveDecision(route, outcome string)
}

// Middleware applies Decide to every request that reaches it. Render
// decisions fall through to next; Redirect decisions are answered here.
//
// It must run after auth.SessionManager.LoadSession so the session snapshot
// is in the request context. rec may be nil.
func Middleware(logger *zap.Logger, rec Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := auth.CurrentState(r)
			p := requestPath(r)
			d := Decide(state, p)

			if rec != nil {
				rec.ObserveDecision(d.Route.String(), d.Kind.String())
			}
			logger.Debug("gate decision",
				zap.String("path", p),
				zap.String("state", state.String()),
				zap.String("route", d.Route.String()),
				zap.String("outcome", d.Kind.String()),
				zap.String("location", d.Location))

			if d.IsRender() {
				next.ServeHTTP(w, r)
				return
			}
			Apply(w, r, d)
		})
	}
}

// Apply writes a Redirect decision to the response.
func Apply(w http.ResponseWriter, r *http.Request, d Decision) {
	RedirectTo(w, r, d.Location)
}

// RedirectTo sends the browser to location.
//   - HTMX: HX-Redirect header (full-page client navigation, no partial swap)
//   - otherwise: 303 See Other
func RedirectTo(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// requestPath returns the path chi routes on, so the gate classifies exactly
// what the router will dispatch.
func requestPath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePath != "" {
		return rctx.RoutePath
	}
	if r.URL.RawPath != "" {
		return r.URL.RawPath
	}
	return r.URL.Path
}
