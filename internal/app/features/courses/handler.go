// internal/app/features/courses/handler.go
package courses

import (
	"context"

	coursestore "github.com/dalemusser/coursehub/internal/app/store/courses"
	"github.com/dalemusser/coursehub/internal/domain/models"
	"go.uber.org/zap"
)

// Repository is the course persistence the handlers depend on.
// *coursestore.Store and *coursestore.Memory both satisfy it.
type Repository interface {
	List(ctx context.Context) ([]models.Course, error)
	GetByID(ctx context.Context, id string) (models.Course, error)
	Create(ctx context.Context, in coursestore.CreateInput) (models.Course, error)
	Update(ctx context.Context, id string, in coursestore.UpdateInput) (models.Course, error)
	Delete(ctx context.Context, id string) error
}

// Handler owns the /api/v1/courses endpoints. Each request makes exactly one
// repository call; the handler never touches the store directly.
type Handler struct {
	Repo         Repository
	MaxBodyBytes int64
	Log          *zap.Logger
}

// NewHandler constructs a courses Handler.
func NewHandler(repo Repository, maxBodyBytes int64, logger *zap.Logger) *Handler {
	return &Handler{
		Repo:         repo,
		MaxBodyBytes: maxBodyBytes,
		Log:          logger,
	}
}
