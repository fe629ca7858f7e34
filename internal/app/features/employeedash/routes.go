// internal/app/features/employeedash/routes.go
package employeedash

import "github.com/go-chi/chi/v5"

// Routes mounts under /employee-dashboard. Sub-paths the dashboard does not
// know fall back to the overview.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeOverview)
	r.Get("/attendance", h.ServeAttendance)
	r.Get("/tasks", h.ServeTasks)
	r.Get("/leaves", h.ServeLeaves)
	r.Post("/leaves", h.HandleLeaveRequest)
	r.Get("/profile", h.ServeProfile)
	r.Post("/checkin", h.HandleCheckIn)
	r.Post("/checkout", h.HandleCheckOut)

	r.NotFound(h.ServeOverview)
	r.MethodNotAllowed(h.ServeOverview)
	return r
}
