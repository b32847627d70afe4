// internal/app/features/courses/routes.go
package courses

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/go-chi/chi/v5"
)

// Routes returns the courses subrouter. Bootstrap mounts it at
// /api/v1/courses.
//
//	GET    /       list
//	POST   /       create
//	GET    /{id}   get
//	PUT    /{id}   update
//	DELETE /{id}   delete
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.NotFound(NotFound)
	r.MethodNotAllowed(MethodNotAllowed)

	r.Get("/", h.ServeList)
	r.Post("/", h.HandleCreate)

	r.Get("/{id}", h.ServeGet)
	r.Put("/{id}", h.HandleUpdate)
	r.Delete("/{id}", h.HandleDelete)

	return r
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusNotFound, "not found")
}

// MethodNotAllowed answers known paths hit with an unsupported method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	jsonutil.Error(w, http.StatusMethodNotAllowed, "method not allowed")
}
