// internal/app/features/home/routes.go
package home

import "github.com/go-chi/chi/v5"

// Routes returns a subrouter for the API root. It only answers GET / so it
// can be mounted at "/" without shadowing the other mounts.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.ServeRoot)
	return r
}
