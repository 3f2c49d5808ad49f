package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
)

const MaxTitleLength = 255

// Project is a managed record with a mutable title. Projects and users are
// two independent flat lists; no relationship exists between them.
type Project struct {
	ID        uuid.UUID
	Title     string
	CreatedAt time.Time
}

// ValidateTitle normalizes and validates a project title, returning the
// trimmed value.
func ValidateTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperrors.ErrTitleRequired
	}
	if len(title) > MaxTitleLength {
		return "", apperrors.ErrTitleTooLong
	}
	return title, nil
}

// NewProject creates a new project with a validated title
func NewProject(title string) (*Project, error) {
	validated, err := ValidateTitle(title)
	if err != nil {
		return nil, err
	}

	return &Project{
		ID:        uuid.New(),
		Title:     validated,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Rename changes the project title after validation. CreatedAt is never
// touched.
func (p *Project) Rename(title string) error {
	validated, err := ValidateTitle(title)
	if err != nil {
		return err
	}
	p.Title = validated
	return nil
}
