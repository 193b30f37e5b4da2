package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// UserRepository defines the credential store.
type UserRepository interface {
	// Create persists a new user. A username collision detected by the
	// store's unique index returns domain.ErrUsernameTaken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error
}
