package services

import (
	"context"
	"crypto/subtle"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/lorrc/owner-dashboard/internal/config"
	"github.com/lorrc/owner-dashboard/internal/core/domain"
	apperrors "github.com/lorrc/owner-dashboard/internal/core/errors"
	"github.com/lorrc/owner-dashboard/internal/core/ports"
)

// AuthService verifies submitted credentials against the single configured
// owner identity. The owner config is immutable and injected at startup;
// nothing here reads the environment.
type AuthService struct {
	owner  config.OwnerConfig
	hashed bool
	logger *slog.Logger
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new credential verifier. A plaintext owner
// password is tolerated for local development but logged loudly, since it
// defeats the point of the hash comparison.
func NewAuthService(owner config.OwnerConfig, logger *slog.Logger) *AuthService {
	hashed := owner.PasswordIsHashed()
	if !hashed {
		logger.Warn("AUTH_USER_PASSWORD is not a bcrypt hash; falling back to plaintext comparison",
			"hint", "generate a hash and set it instead of the raw password",
		)
	}
	return &AuthService{
		owner:  owner,
		hashed: hashed,
		logger: logger,
	}
}

// Verify checks an email/password pair against the configured owner.
// Every failure mode returns the same ErrInvalidCredentials so callers
// cannot distinguish a wrong email from a wrong password.
func (s *AuthService) Verify(ctx context.Context, email, password string) (domain.Identity, error) {
	if email == "" || password == "" {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}

	emailMatches := subtle.ConstantTimeCompare([]byte(email), []byte(s.owner.Email)) == 1

	var passwordMatches bool
	if s.hashed {
		passwordMatches = bcrypt.CompareHashAndPassword([]byte(s.owner.Password), []byte(password)) == nil
	} else {
		passwordMatches = subtle.ConstantTimeCompare([]byte(password), []byte(s.owner.Password)) == 1
	}

	if !emailMatches || !passwordMatches {
		return domain.Identity{}, apperrors.ErrInvalidCredentials
	}

	return domain.OwnerIdentity(s.owner.Email), nil
}
