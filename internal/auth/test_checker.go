package auth

import (
	"context"

	"github.com/2beens/fitplan/internal/planner/perrors"

	"github.com/google/uuid"
)

// TestChecker is an in-memory Checker used by dev setups and tests.
type TestChecker struct {
	Sessions map[string]uuid.UUID
}

func NewTestChecker() *TestChecker {
	return &TestChecker{
		Sessions: map[string]uuid.UUID{},
	}
}

func (c *TestChecker) UserID(_ context.Context, token string) (uuid.UUID, error) {
	userID, ok := c.Sessions[token]
	if !ok {
		return uuid.Nil, perrors.ErrUnauthenticated
	}
	return userID, nil
}
