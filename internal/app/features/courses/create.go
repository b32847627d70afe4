package courses

import (
	"context"
	"net/http"
	"strings"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"github.com/dalemusser/coursehub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// HandleCreate handles POST /api/v1/courses.
//
// 201 with the stored course, or 400 {"error": "..."} when the body is
// malformed or the title is missing.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var in coursestore.CreateInput
	if err := jsonutil.Decode(w, r, &in, h.MaxBodyBytes); err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	course, err := h.Repo.Create(ctx, in)
	if err != nil {
		jsonutil.WriteError(w, r, h.Log, err)
		return
	}
	h.Log.Info("course created", zap.String("id", course.ID.Hex()))
	w.Header().Set("Location", strings.TrimRight(r.URL.Path, "/")+"/"+course.ID.Hex())
	jsonutil.Write(w, http.StatusCreated, course)
}
