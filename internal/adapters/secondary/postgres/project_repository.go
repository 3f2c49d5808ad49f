package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

type ProjectRepository struct {
	db *gorm.DB
}

var _ ports.ProjectRepository = (*ProjectRepository)(nil)

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	model := projectModelFromDomain(project)

	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return nil, err
	}

	return model.toDomain(), nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var model ProjectModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, err
	}
	return model.toDomain(), nil
}

// UpdateTitle changes only the title column. created_at is excluded from
// updates at the model level, so it can never drift.
func (r *ProjectRepository) UpdateTitle(ctx context.Context, id uuid.UUID, title string) (*domain.Project, error) {
	result := r.db.WithContext(ctx).
		Model(&ProjectModel{}).
		Where("id = ?", id).
		Update("title", title)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, apperrors.ErrProjectNotFound
	}

	// Read back the updated row
	return r.GetByID(ctx, id)
}

func (r *ProjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&ProjectModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrProjectNotFound
	}
	return nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]*domain.Project, error) {
	var models []ProjectModel
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}

	projects := make([]*domain.Project, 0, len(models))
	for i := range models {
		projects = append(projects, models[i].toDomain())
	}
	return projects, nil
}
