package domain

import "time"

// AuditAction names a mutation recorded in the audit trail.
type AuditAction string

const (
	AuditUserRegistered  AuditAction = "user.registered"
	AuditUserRoleChanged AuditAction = "user.role_changed"
	AuditAccountCreated  AuditAction = "account.created"
	AuditAccountUpdated  AuditAction = "account.updated"
	AuditAccountDeleted  AuditAction = "account.deleted"
)

// AuditEvent records who changed what, and when.
type AuditEvent struct {
	Action     AuditAction
	ActorID    uint // zero for the super-admin secret and for signup
	TargetID   uint
	Details    map[string]string
	OccurredAt time.Time
}
