package courses

import (
	"context"
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
)

// ServeList handles GET /api/v1/courses.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	list, err := h.Repo.List(ctx)
	if err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}
	jsonutil.Write(w, http.StatusOK, list)
}
