package health

import (
	"github.com/go-chi/chi/v5"
)

// Routes returns a chi.Router with the health endpoint mounted.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Serve)
	return r
}
