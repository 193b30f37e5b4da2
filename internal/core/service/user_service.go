package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

type UserService struct {
	repo   ports.UserRepository
	audit  ports.AuditRepository
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, audit ports.AuditRepository, logger zerolog.Logger) *UserService {
	if audit == nil {
		audit = nopAuditRepository{}
	}
	return &UserService{repo: repo, audit: audit, logger: logger}
}

// UpdateRole reassigns a user's role. Callers must already hold the
// super-admin secret.
func (s *UserService) UpdateRole(ctx context.Context, id uint, role string) error {
	if !domain.ValidRole(role) {
		return fmt.Errorf("%w: role must be %q or %q", domain.ErrInvalidInput, domain.RoleAdmin, domain.RoleClient)
	}
	if err := s.repo.UpdateRole(ctx, id, role); err != nil {
		return err
	}

	recordAudit(ctx, s.audit, s.logger, domain.AuditEvent{
		Action:     domain.AuditUserRoleChanged,
		TargetID:   id,
		Details:    map[string]string{"role": role},
		OccurredAt: time.Now().UTC(),
	})
	s.logger.Info().Uint("user_id", id).Str("role", role).Msg("user role updated")

	return nil
}
