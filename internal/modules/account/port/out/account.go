package out

import (
	"context"

	"kex/internal/modules/account/domain"
)

// Gateway is the session-based auth backend. Implementations keep the
// session cookie between calls.
type Gateway interface {
	Login(ctx context.Context, creds domain.Credentials) error
	Register(ctx context.Context, reg domain.Registration) error
	Logout(ctx context.Context) error
	Me(ctx context.Context) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
