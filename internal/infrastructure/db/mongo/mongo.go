// Package mongo keeps the audit trail of account and role changes in MongoDB.
package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"
)

const (
	defaultTimeout = 10 * time.Second
	defaultAppName = "account-service"
)

// Config selects the audit database.
type Config struct {
	URI      string
	Database string
	AppName  string
	Timeout  time.Duration
}

// Open connects, pings and prepares the audit collection. The client is
// returned so the caller owns disconnection. Index creation failures are
// logged, not fatal: inserts work without them.
func Open(ctx context.Context, cfg Config, log zerolog.Logger) (*AuditRepository, *mongo.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions(cfg, timeout))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	repo := NewAuditRepository(client.Database(cfg.Database))
	if err := repo.EnsureIndexes(connectCtx); err != nil {
		log.Warn().Err(err).Str("collection", auditCollection).Msg("audit indexes not created")
	}
	return repo, client, nil
}

// clientOptions tags the connection with the service name and requires
// majority acknowledgement, so a recorded audit entry survives a primary
// failover.
func clientOptions(cfg Config, timeout time.Duration) *options.ClientOptions {
	appName := cfg.AppName
	if appName == "" {
		appName = defaultAppName
	}
	return options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetRetryWrites(true).
		SetServerSelectionTimeout(timeout).
		SetWriteConcern(writeconcern.Majority())
}
