package health

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dalemusser/attendhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Check is one named readiness check.
type Check struct {
	Name string
	Fn   func(ctx context.Context) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	Checks  []Check
	Started time.Time
	Log     *zap.Logger
}

// NewHandler constructs a health Handler.
func NewHandler(started time.Time, logger *zap.Logger, checks ...Check) *Handler {
	return &Handler{Checks: checks, Started: started, Log: logger}
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status  string            `json:"status"`
	Uptime  string            `json:"uptime"`
	Checks  map[string]string `json:"checks,omitempty"`
	Message string            `json:"message,omitempty"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "uptime":"1h2m3s", "checks":{"jobs":"ok"} }
//
// On a failed check: 503 and
//
//	{ "status":"error", "checks":{"jobs":"…"}, "message":"One or more checks failed" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
	defer cancel()

	w.Header().Set("Content-Type", "application/json")

	resp := healthResponse{
		Status: "ok",
		Uptime: time.Since(h.Started).Round(time.Second).String(),
	}

	failed := false
	if len(h.Checks) > 0 {
		resp.Checks = make(map[string]string, len(h.Checks))
	}
	for _, c := range h.Checks {
		if err := c.Fn(ctx); err != nil {
			h.Log.Error("health-check failed", zap.String("check", c.Name), zap.Error(err))
			resp.Checks[c.Name] = err.Error()
			failed = true
			continue
		}
		resp.Checks[c.Name] = "ok"
	}

	if failed {
		resp.Status = "error"
		resp.Message = "One or more checks failed"
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	_ = json.NewEncoder(w).Encode(resp)
}
