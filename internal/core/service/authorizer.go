package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// RoleAuthorizer checks roles against the credential store on every call,
// so a role change takes effect without reissuing tokens.
type RoleAuthorizer struct {
	users ports.UserRepository
}

func NewRoleAuthorizer(users ports.UserRepository) *RoleAuthorizer {
	return &RoleAuthorizer{users: users}
}

func (a *RoleAuthorizer) RequireRole(ctx context.Context, userID uint, role string) error {
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrUnauthenticated
		}
		return fmt.Errorf("require role: %w", err)
	}
	if !user.HasRole(role) {
		return domain.ErrForbidden
	}
	return nil
}

// SharedSecretAuth is the super-admin strategy: a static secret configured
// for the process, unrelated to any user.
type SharedSecretAuth struct {
	secret []byte
}

func NewSharedSecretAuth(secret string) *SharedSecretAuth {
	return &SharedSecretAuth{secret: []byte(secret)}
}

// Verify compares presented against the configured secret in constant time.
// An unconfigured secret denies every caller.
func (a *SharedSecretAuth) Verify(presented string) error {
	if len(a.secret) == 0 {
		return domain.ErrForbidden
	}
	if subtle.ConstantTimeCompare([]byte(presented), a.secret) != 1 {
		return domain.ErrForbidden
	}
	return nil
}
