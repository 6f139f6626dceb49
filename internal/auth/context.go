package auth

import (
	"context"
	"net/http"

	"github.com/2beens/fitplan/internal/planner/perrors"

	"github.com/google/uuid"
)

type userIDCtxKey struct{}

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDCtxKey{}, userID)
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDCtxKey{}).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, false
	}
	return userID, true
}

// RequestUserID returns the caller set on the request context by the auth middleware.
func RequestUserID(r *http.Request) (uuid.UUID, error) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, perrors.ErrUnauthenticated
	}
	return userID, nil
}
