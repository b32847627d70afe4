package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// ServeGet handles GET /api/v1/courses/{id}.
func (h *Handler) ServeGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := h.Repo.GetByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}
	jsonutil.Write(w, http.StatusOK, course)
}
