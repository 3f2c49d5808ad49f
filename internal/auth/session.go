package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lorrc/owner-dashboard/internal/core/domain"
)

// ErrInvalidSession is returned when a session token is missing, malformed,
// expired, or signed with the wrong key.
var ErrInvalidSession = errors.New("invalid session token")

// SessionManager issues and verifies signed session tokens. It is
// deliberately decoupled from cookie handling: the HTTP layer owns the
// cookie, this layer owns the token.
type SessionManager interface {
	Issue(identity domain.Identity) (string, error)
	Verify(token string) (domain.Identity, error)
}

// Claims defines the structured data we store in the session token
type Claims struct {
	User domain.Identity `json:"user"`
	jwt.RegisteredClaims
}

// TokenManager is the JWT (HS256) implementation of SessionManager.
type TokenManager struct {
	secretKey []byte
	ttl       time.Duration
}

var _ SessionManager = (*TokenManager)(nil)

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secretKey: []byte(secret), ttl: ttl}
}

// Issue creates a new signed session token for the identity
func (tm *TokenManager) Issue(identity domain.Identity) (string, error) {
	now := time.Now()
	claims := &Claims{
		User: identity,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.ttl)),
			Subject:   identity.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secretKey)
}

// Verify parses and validates the token string and returns the identity it
// carries.
func (tm *TokenManager) Verify(tokenString string) (domain.Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return tm.secretKey, nil
	})

	if err != nil {
		return domain.Identity{}, ErrInvalidSession
	}

	if !token.Valid || claims.User.ID == "" {
		return domain.Identity{}, ErrInvalidSession
	}

	return claims.User, nil
}
