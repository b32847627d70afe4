package home

import (
	"net/http"

	"github.com/dalemusser/coursehub/internal/app/system/jsonutil"
	"go.uber.org/zap"
)

// Handler serves the API root.
type Handler struct {
	Message string
	Log     *zap.Logger
}

func NewHandler(message string, logger *zap.Logger) *Handler {
	return &Handler{
		Message: message,
		Log:     logger,
	}
}

type rootResponse struct {
	Message string `json:"message"`
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – welcome                                                             |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	jsonutil.Write(w, http.StatusOK, rootResponse{Message: h.Message})
}
