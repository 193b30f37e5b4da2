package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type AccountService struct {
	repo   ports.AccountRepository
	authz  ports.Authorizer
	audit  ports.AuditRepository
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, authz ports.Authorizer, audit ports.AuditRepository, logger zerolog.Logger) *AccountService {
	if audit == nil {
		audit = nopAuditRepository{}
	}
	return &AccountService{repo: repo, authz: authz, audit: audit, logger: logger}
}

// CreateAccount stores a new account owned by input.ActorID.
func (s *AccountService) CreateAccount(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	if input.Name == "" || input.Email == "" || input.ContactNumber == "" {
		return nil, fmt.Errorf("%w: name, email and contact_number are required", domain.ErrInvalidInput)
	}

	account := &domain.Account{
		Name:          input.Name,
		Email:         input.Email,
		ContactNumber: input.ContactNumber,
		AddedBy:       input.ActorID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	recordAudit(ctx, s.audit, s.logger, domain.AuditEvent{
		Action:     domain.AuditAccountCreated,
		ActorID:    input.ActorID,
		TargetID:   account.ID,
		Details:    map[string]string{"email": account.Email},
		OccurredAt: account.CreatedAt,
	})
	s.logger.Info().Uint("account_id", account.ID).Uint("added_by", input.ActorID).Msg("account created")

	return account, nil
}

// UpdateAccount applies a partial update. Supplied fields may not be blank.
func (s *AccountService) UpdateAccount(ctx context.Context, input ports.UpdateAccountInput) (*domain.Account, error) {
	p := input.Patch
	fields := []struct {
		name  string
		value *string
	}{{"name", p.Name}, {"email", p.Email}, {"contact_number", p.ContactNumber}}
	for _, f := range fields {
		if f.value != nil && *f.value == "" {
			return nil, fmt.Errorf("%w: %s cannot be empty", domain.ErrInvalidInput, f.name)
		}
	}

	if p.Empty() {
		return s.repo.FindByID(ctx, input.ID)
	}

	account, err := s.repo.Update(ctx, input.ID, p)
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	if p.Email != nil {
		details["email"] = *p.Email
	}
	recordAudit(ctx, s.audit, s.logger, domain.AuditEvent{
		Action:     domain.AuditAccountUpdated,
		ActorID:    input.ActorID,
		TargetID:   account.ID,
		Details:    details,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("account_id", account.ID).Uint("actor_id", input.ActorID).Msg("account updated")

	return account, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id uint) (*domain.Account, error) {
	return s.repo.FindByID(ctx, id)
}

// DeleteAccount removes an account. The admin role is read from the store at
// call time rather than trusted from the route guard.
func (s *AccountService) DeleteAccount(ctx context.Context, actorID, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.authz.RequireRole(ctx, actorID, domain.RoleAdmin); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, s.logger, domain.AuditEvent{
		Action:     domain.AuditAccountDeleted,
		ActorID:    actorID,
		TargetID:   id,
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("account_id", id).Uint("actor_id", actorID).Msg("account deleted")

	return nil
}

// ListAccounts returns one page of accounts. Unknown sort keys fall back to
// name and any order other than "desc" is ascending.
func (s *AccountService) ListAccounts(ctx context.Context, input ports.ListAccountsInput) (*ports.ListAccountsResult, error) {
	filter := listFilter(input)

	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list accounts")
		return nil, fmt.Errorf("list accounts: %w", err)
	}

	return &ports.ListAccountsResult{
		Items:        items,
		TotalRecords: total,
		TotalPages:   totalPages(total, filter.Limit),
		Page:         filter.Page,
		Limit:        filter.Limit,
	}, nil
}

func listFilter(in ports.ListAccountsInput) ports.ListAccountsFilter {
	f := ports.ListAccountsFilter{
		Email:  in.Email,
		Search: in.Search,
		SortBy: ports.SortByName,
		Desc:   in.Order == "desc",
		Page:   in.Page,
		Limit:  in.Limit,
	}
	if in.Sort == ports.SortByEmail {
		f.SortBy = ports.SortByEmail
	}
	if f.Page < 1 {
		f.Page = defaultPage
	}
	if f.Limit < 1 {
		f.Limit = defaultLimit
	}
	if f.Limit > maxLimit {
		f.Limit = maxLimit
	}
	return f
}

func totalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}
