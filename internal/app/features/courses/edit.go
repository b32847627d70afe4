package courses

import (
	"context"
	"net/http"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
)

// HandleUpdate handles PUT /api/v1/courses/{id}. Only fields present in the
// body change; "description": "" clears the description.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var in coursestore.UpdateInput
	if err := jsonutil.Decode(w, r, &in, h.MaxBodyBytes); err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := h.Repo.Update(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}
	jsonutil.Write(w, http.StatusOK, course)
}
