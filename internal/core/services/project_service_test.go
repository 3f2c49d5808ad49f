package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/core/mocks"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
	"github.com/lorrc/owner-dashboard/internal/core/services"
)

func TestProjectService_CreateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("success trims the title", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *domain.Project) bool {
			return p.Title == "Launch"
		})).Return(&domain.Project{
			ID:        uuid.New(),
			Title:     "Launch",
			CreatedAt: time.Now(),
		}, nil)

		project, err := svc.CreateProject(ctx, "  Launch  ")
		require.NoError(t, err)
		assert.Equal(t, "Launch", project.Title)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty title performs no write", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		project, err := svc.CreateProject(ctx, "   ")
		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		mockRepo.AssertNotCalled(t, "Create")
	})
}

func TestProjectService_UpdateProject(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		mockRepo.On("UpdateTitle", ctx, projectID, "Renamed").
			Return(&domain.Project{ID: projectID, Title: "Renamed"}, nil)

		project, err := svc.UpdateProject(ctx, ports.UpdateProjectParams{
			ID:    projectID.String(),
			Title: " Renamed ",
		})
		require.NoError(t, err)
		assert.Equal(t, "Renamed", project.Title)
	})

	t.Run("missing id performs no write", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		project, err := svc.UpdateProject(ctx, ports.UpdateProjectParams{Title: "Renamed"})
		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrIDRequired)
		mockRepo.AssertNotCalled(t, "UpdateTitle")
	})

	t.Run("malformed id performs no write", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		project, err := svc.UpdateProject(ctx, ports.UpdateProjectParams{
			ID:    "not-a-uuid",
			Title: "Renamed",
		})
		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrIDInvalid)
		mockRepo.AssertNotCalled(t, "UpdateTitle")
	})

	t.Run("empty title performs no write", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		project, err := svc.UpdateProject(ctx, ports.UpdateProjectParams{
			ID:    projectID.String(),
			Title: "  ",
		})
		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrTitleRequired)
		mockRepo.AssertNotCalled(t, "UpdateTitle")
	})

	t.Run("unknown project surfaces not found", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		mockRepo.On("UpdateTitle", ctx, projectID, "Renamed").
			Return(nil, apperrors.ErrProjectNotFound)

		project, err := svc.UpdateProject(ctx, ports.UpdateProjectParams{
			ID:    projectID.String(),
			Title: "Renamed",
		})
		assert.Nil(t, project)
		assert.ErrorIs(t, err, apperrors.ErrProjectNotFound)
	})
}

func TestProjectService_DeleteProject(t *testing.T) {
	ctx := context.Background()
	projectID := uuid.New()

	t.Run("success", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		mockRepo.On("Delete", ctx, projectID).Return(nil)

		assert.NoError(t, svc.DeleteProject(ctx, projectID.String()))
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing id performs no write", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		assert.ErrorIs(t, svc.DeleteProject(ctx, ""), apperrors.ErrIDRequired)
		mockRepo.AssertNotCalled(t, "Delete")
	})

	t.Run("already deleted id surfaces not found", func(t *testing.T) {
		mockRepo := mocks.NewMockProjectRepository()
		svc := services.NewProjectService(mockRepo)

		mockRepo.On("Delete", ctx, projectID).Return(apperrors.ErrProjectNotFound)

		assert.ErrorIs(t, svc.DeleteProject(ctx, projectID.String()), apperrors.ErrProjectNotFound)
	})
}

func TestProjectService_ListProjects(t *testing.T) {
	ctx := context.Background()

	mockRepo := mocks.NewMockProjectRepository()
	svc := services.NewProjectService(mockRepo)

	newest := &domain.Project{ID: uuid.New(), Title: "B", CreatedAt: time.Now()}
	oldest := &domain.Project{ID: uuid.New(), Title: "A", CreatedAt: time.Now().Add(-time.Hour)}

	mockRepo.On("List", ctx).Return([]*domain.Project{newest, oldest}, nil)

	projects, err := svc.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, newest.ID, projects[0].ID)
}
