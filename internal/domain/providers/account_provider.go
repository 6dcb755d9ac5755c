package providers

import (
	"context"

	"github.com/bananaflix/backend/internal/domain/entities"
)

// AccountProvider is the port for the document store's account sub-client.
type AccountProvider interface {
	// Register creates a new account. It does not create a session.
	Register(ctx context.Context, email, password, name string) (*entities.User, error)

	// CreateSession opens an email/password session. The provider holds the
	// session credential for subsequent CurrentUser/DeleteSession calls.
	CreateSession(ctx context.Context, email, password string) error

	// CurrentUser returns the identity bound to the active session. A missing
	// session surfaces as an unauthorized error, not (nil, nil).
	CurrentUser(ctx context.Context) (*entities.User, error)

	// DeleteSession tears down the active session.
	DeleteSession(ctx context.Context) error
}
