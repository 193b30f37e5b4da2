package mongo

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/account-service/internal/core/domain"
)

const (
	auditCollection = "audit_events"
	writeTimeout    = 3 * time.Second
)

// AuditRepository implements ports.AuditRepository using MongoDB.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{db: db}
}

// Record appends one entry to the audit_events collection.
func (r *AuditRepository) Record(ctx context.Context, event domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, auditDocument(event)); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}

// EnsureIndexes creates the lookup indexes used when browsing the trail.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.Collection(auditCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "target_id", Value: 1}, {Key: "occurred_at", Value: -1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
		{Keys: bson.D{{Key: "action", Value: 1}}, Options: options.Index().SetName("action_1")},
	})
	if err != nil {
		return fmt.Errorf("create audit indexes: %w", err)
	}
	return nil
}

// Ping reports whether MongoDB is reachable.
func (r *AuditRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, nil)
}

func auditDocument(event domain.AuditEvent) bson.M {
	occurred := event.OccurredAt
	if occurred.IsZero() {
		occurred = time.Now()
	}
	doc := bson.M{
		"action":      string(event.Action),
		"actor_id":    strconv.FormatUint(uint64(event.ActorID), 10),
		"target_id":   strconv.FormatUint(uint64(event.TargetID), 10),
		"occurred_at": occurred.UTC(),
	}
	if len(event.Details) > 0 {
		doc["details"] = event.Details
	}
	return doc
}
