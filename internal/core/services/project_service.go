package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

// ProjectService implements project record business logic
type ProjectService struct {
	projectRepo ports.ProjectRepository
}

var _ ports.ProjectService = (*ProjectService)(nil)

// NewProjectService creates a new project service
func NewProjectService(projectRepo ports.ProjectRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo}
}

// CreateProject validates the title and persists a new project
func (s *ProjectService) CreateProject(ctx context.Context, title string) (*domain.Project, error) {
	project, err := domain.NewProject(title)
	if err != nil {
		return nil, err
	}

	return s.projectRepo.Create(ctx, project)
}

// UpdateProject renames an existing project. Referencing a non-existent id
// fails without any partial write.
func (s *ProjectService) UpdateProject(ctx context.Context, params ports.UpdateProjectParams) (*domain.Project, error) {
	id, err := parseProjectID(params.ID)
	if err != nil {
		return nil, err
	}

	title, err := domain.ValidateTitle(params.Title)
	if err != nil {
		return nil, err
	}

	return s.projectRepo.UpdateTitle(ctx, id, title)
}

// DeleteProject removes a project by id. Deleting an already-deleted id is
// reported as not found.
func (s *ProjectService) DeleteProject(ctx context.Context, rawID string) error {
	id, err := parseProjectID(rawID)
	if err != nil {
		return err
	}

	return s.projectRepo.Delete(ctx, id)
}

// ListProjects returns all projects ordered by creation time descending
func (s *ProjectService) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	return s.projectRepo.List(ctx)
}

func parseProjectID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, apperrors.ErrIDRequired
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ErrIDInvalid
	}
	return id, nil
}
