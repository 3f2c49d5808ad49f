package ports

import (
	"context"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
)

// AuthService defines the port for credential verification. Exactly one
// identity is ever valid; any mismatch yields ErrInvalidCredentials.
type AuthService interface {
	Verify(ctx context.Context, email, password string) (domain.Identity, error)
}

// UserService defines the core business operations for user records.
type UserService interface {
	CreateUser(ctx context.Context, params domain.UserParams) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}

// UpdateProjectParams defines the input for renaming a project.
type UpdateProjectParams struct {
	ID    string
	Title string
}

// ProjectService defines the core business operations for project records.
type ProjectService interface {
	CreateProject(ctx context.Context, title string) (*domain.Project, error)
	UpdateProject(ctx context.Context, params UpdateProjectParams) (*domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListProjects(ctx context.Context) ([]*domain.Project, error)
}
