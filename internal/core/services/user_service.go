package services

import (
	"context"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

// UserService implements user record business logic
type UserService struct {
	userRepo ports.UserRepository
}

var _ ports.UserService = (*UserService)(nil)

// NewUserService creates a new user service
func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// CreateUser validates and persists a new user record. The email is trimmed
// and lower-cased before any write happens.
func (s *UserService) CreateUser(ctx context.Context, params domain.UserParams) (*domain.User, error) {
	user, err := domain.NewUser(params)
	if err != nil {
		return nil, err
	}

	return s.userRepo.Create(ctx, user)
}

// ListUsers returns all user records ordered by creation time descending
func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.userRepo.List(ctx)
}
