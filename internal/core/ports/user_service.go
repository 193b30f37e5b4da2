package ports

import "context"

// UserService covers user administration reachable only with the
// super-admin secret.
type UserService interface {
	UpdateRole(ctx context.Context, id uint, role string) error
}
