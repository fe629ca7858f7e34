// internal/app/features/admindash/routes.go
package admindash

import "github.com/go-chi/chi/v5"

// Routes mounts under /admin-dashboard. Sub-paths the dashboard does not
// know fall back to the overview.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeOverview)
	r.Get("/overview", h.ServeOverview)

	r.Get("/employees", h.ServeEmployees)
	r.Get("/employees/{id}", h.ServeEmployee)
	r.Get("/add-employee", h.ServeAddEmployee)
	r.Post("/add-employee", h.HandleAddEmployee)

	r.Get("/attendance", h.ServeAttendance)
	r.Get("/reports", h.ServeReports)

	r.Get("/geofence", h.ServeGeofence)
	r.Post("/geofence", h.HandleGeofence)

	r.Get("/notifications", h.ServeNotifications)
	r.Post("/notifications", h.HandleSendNotification)
	r.Post("/notifications/{id}/read", h.HandleMarkRead)

	r.Get("/settings", h.ServeSettings)
	r.Post("/settings", h.HandleSettings)

	r.NotFound(h.ServeOverview)
	r.MethodNotAllowed(h.ServeOverview)
	return r
}
