package domain

import (
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
)

// Field length constants
const (
	MaxEmailLength = 255
	MaxNameLength  = 255
)

// User is a managed record on the dashboard. Users here are plain address
// book entries; they never log in themselves (only the configured owner
// does).
type User struct {
	ID        uuid.UUID
	Email     string
	Name      string
	CreatedAt time.Time
}

// UserParams holds parameters for creating a user record
type UserParams struct {
	Email string
	Name  string
}

// Normalize trims both fields and lower-cases the email
func (p *UserParams) Normalize() {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	p.Name = strings.TrimSpace(p.Name)
}

// Validate validates user parameters. Normalize must be called first.
func (p *UserParams) Validate() error {
	if p.Email == "" {
		return apperrors.ErrEmailRequired
	}
	if len(p.Email) > MaxEmailLength {
		return apperrors.ErrEmailTooLong
	}
	if !isValidEmail(p.Email) {
		return apperrors.ErrEmailInvalid
	}
	if len(p.Name) > MaxNameLength {
		return apperrors.ErrNameTooLong
	}
	return nil
}

// isValidEmail validates email format
func isValidEmail(email string) bool {
	_, err := mail.ParseAddress(email)
	return err == nil
}

// DisplayName returns the name to render for the user, falling back when the
// optional name is absent.
func (u *User) DisplayName() string {
	if u.Name == "" {
		return "No name"
	}
	return u.Name
}

// NewUser creates a new user record from normalized, validated parameters
func NewUser(params UserParams) (*User, error) {
	params.Normalize()
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &User{
		ID:        uuid.New(),
		Email:     params.Email,
		Name:      params.Name,
		CreatedAt: time.Now().UTC(),
	}, nil
}
