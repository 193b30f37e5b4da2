package mongo

import (
	"testing"
	"time"

	"github.com/99minutos/account-service/internal/core/domain"
)

func TestAuditDocument(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.FixedZone("CST", -6*3600))
	doc := auditDocument(domain.AuditEvent{
		Action:     domain.AuditAccountUpdated,
		ActorID:    7,
		TargetID:   42,
		Details:    map[string]string{"email": "new@x.io"},
		OccurredAt: at,
	})

	if doc["action"] != "account.updated" {
		t.Fatalf("unexpected action %v", doc["action"])
	}
	if doc["actor_id"] != "7" || doc["target_id"] != "42" {
		t.Fatalf("unexpected ids %v / %v", doc["actor_id"], doc["target_id"])
	}
	got, ok := doc["occurred_at"].(time.Time)
	if !ok || got.Location() != time.UTC || !got.Equal(at) {
		t.Fatalf("expected UTC timestamp, got %v", doc["occurred_at"])
	}
	details, ok := doc["details"].(map[string]string)
	if !ok || details["email"] != "new@x.io" {
		t.Fatalf("unexpected details %v", doc["details"])
	}
}

func TestAuditDocumentDefaults(t *testing.T) {
	doc := auditDocument(domain.AuditEvent{Action: domain.AuditAccountDeleted, ActorID: 1, TargetID: 2})

	if _, ok := doc["details"]; ok {
		t.Fatal("expected details to be omitted when empty")
	}
	if ts, ok := doc["occurred_at"].(time.Time); !ok || ts.IsZero() {
		t.Fatalf("expected occurred_at to default to now, got %v", doc["occurred_at"])
	}
}
