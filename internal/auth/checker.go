package auth

import (
	"context"

	"github.com/google/uuid"
)

var _ Checker = (*SessionChecker)(nil)
var _ Checker = (*TestChecker)(nil)

// Checker resolves a session token to the id of the user owning it.
// It returns perrors.ErrUnauthenticated for unknown or expired tokens.
type Checker interface {
	UserID(ctx context.Context, token string) (uuid.UUID, error)
}
