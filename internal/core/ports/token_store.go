package ports

import (
	"context"
	"time"
)

// RevocationStore remembers token ids that must no longer be accepted.
type RevocationStore interface {
	// Revoke marks tokenID as revoked until the given instant.
	Revoke(ctx context.Context, tokenID string, until time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
