package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HandleDelete handles DELETE /api/v1/courses/{id}: 204 with no body.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.Repo.Delete(ctx, id); err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}
	h.Log.Info("course deleted", zap.String("id", id))
	w.WriteHeader(http.StatusNoContent)
}
