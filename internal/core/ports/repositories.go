package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
)

// UserRepository defines the persistence port for user records.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}

// ProjectRepository defines the persistence port for project records.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	UpdateTitle(ctx context.Context, id uuid.UUID, title string) (*domain.Project, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*domain.Project, error)
}

// ListingCache defines the port for cached renderings of the listing view.
// Implementations must degrade gracefully: a cache failure is never a
// user-facing failure.
type ListingCache interface {
	Get(ctx context.Context) (string, bool, error)
	Set(ctx context.Context, rendered string) error
	Invalidate(ctx context.Context) error
}
