package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// CreateAccountInput carries the fields for a new account.
type CreateAccountInput struct {
	ActorID       uint
	Name          string
	Email         string
	ContactNumber string
}

// UpdateAccountInput carries a partial update for an existing account.
type UpdateAccountInput struct {
	ActorID uint
	ID      uint
	Patch   domain.AccountPatch
}

// ListAccountsInput carries raw list parameters; zero values select defaults.
type ListAccountsInput struct {
	Email  string
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// ListAccountsResult is returned by ListAccounts.
type ListAccountsResult struct {
	Items        []*domain.Account
	TotalRecords int64
	TotalPages   int
	Page         int
	Limit        int
}

// AccountService defines use-case operations for accounts.
type AccountService interface {
	CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id uint) (*domain.Account, error)
	// DeleteAccount re-checks that actorID holds the admin role at call time.
	DeleteAccount(ctx context.Context, actorID, id uint) error
	ListAccounts(ctx context.Context, input ListAccountsInput) (*ListAccountsResult, error)
}
