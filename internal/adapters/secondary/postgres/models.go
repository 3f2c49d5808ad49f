package postgres

import (
	"time"

	"github.com/google/uuid"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
)

// UserModel is the GORM mapping for the users table
type UserModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	Name      string
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`
}

func (UserModel) TableName() string {
	return "users"
}

func (m *UserModel) toDomain() *domain.User {
	return &domain.User{
		ID:        m.ID,
		Email:     m.Email,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
	}
}

func userModelFromDomain(u *domain.User) UserModel {
	return UserModel{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}

// ProjectModel is the GORM mapping for the projects table
type ProjectModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime;<-:create"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

func (m *ProjectModel) toDomain() *domain.Project {
	return &domain.Project{
		ID:        m.ID,
		Title:     m.Title,
		CreatedAt: m.CreatedAt,
	}
}

func projectModelFromDomain(p *domain.Project) ProjectModel {
	return ProjectModel{
		ID:        p.ID,
		Title:     p.Title,
		CreatedAt: p.CreatedAt,
	}
}
