package ports

import (
	"context"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

// TokenClaims is the verified content of a bearer token.
type TokenClaims struct {
	UserID    uint
	TokenID   string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
	IssueToken(userID uint) (string, error)
	VerifyToken(ctx context.Context, token string) (*TokenClaims, error)
	Logout(ctx context.Context, claims TokenClaims) error
	Profile(ctx context.Context, userID uint) (*domain.User, error)
}

// Authorizer grants or denies role-gated operations.
type Authorizer interface {
	// RequireRole loads the user fresh from the store. A missing user yields
	// domain.ErrUnauthenticated, a role mismatch domain.ErrForbidden.
	RequireRole(ctx context.Context, userID uint, role string) error
}

// SecretVerifier checks an out-of-band shared secret.
type SecretVerifier interface {
	Verify(presented string) error
}
