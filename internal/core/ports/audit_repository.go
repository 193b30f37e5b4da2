package ports

import (
	"context"

	"github.com/99minutos/account-service/internal/core/domain"
)

// AuditRepository appends mutation records to the audit trail.
type AuditRepository interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}
