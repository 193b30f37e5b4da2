package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
)

// recordAudit writes event to the audit trail. Failures are logged and
// never surface to the caller.
func recordAudit(ctx context.Context, repo ports.AuditRepository, log zerolog.Logger, event domain.AuditEvent) {
	if err := repo.Record(ctx, event); err != nil {
		log.Warn().Err(err).Str("action", string(event.Action)).Uint("target_id", event.TargetID).Msg("failed to record audit event")
	}
}

type nopAuditRepository struct{}

func (nopAuditRepository) Record(context.Context, domain.AuditEvent) error { return nil }

type nopRevocationStore struct{}

func (nopRevocationStore) Revoke(context.Context, string, time.Time) error { return nil }

func (nopRevocationStore) IsRevoked(context.Context, string) (bool, error) { return false, nil }
