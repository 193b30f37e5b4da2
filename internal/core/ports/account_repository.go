package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// Sort columns accepted by AccountRepository.List.
const (
	SortByName  = "name"
	SortByEmail = "email"
)

// ListAccountsFilter carries normalised query parameters for listing accounts.
// The service layer is responsible for defaults and bounds.
type ListAccountsFilter struct {
	Email  string // optional: case-insensitive substring of email
	Search string // optional: case-insensitive substring of name
	SortBy string // SortByName or SortByEmail
	Desc   bool
	Page   int // 1-based
	Limit  int
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	// Create inserts a, enforcing (email, added_by) uniqueness inside a
	// transaction. Collisions return domain.ErrAccountConflict.
	Create(ctx context.Context, a *domain.Account) error
	FindByID(ctx context.Context, id uint) (*domain.Account, error)
	// Update applies patch atomically. A changed email already held by any
	// other account returns domain.ErrEmailTaken and nothing is written.
	Update(ctx context.Context, id uint, patch domain.AccountPatch) (*domain.Account, error)
	Delete(ctx context.Context, id uint) error
	// List returns a page of accounts matching filter and the total count.
	List(ctx context.Context, filter ListAccountsFilter) ([]*domain.Account, int64, error)
}
