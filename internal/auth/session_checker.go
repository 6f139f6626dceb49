package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitplan/internal/planner/perrors"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

type SessionChecker struct {
	ttl         time.Duration
	redisClient *redis.Client
	now         func() time.Time
}

func NewSessionChecker(ttl time.Duration, redisClient *redis.Client) *SessionChecker {
	return &SessionChecker{
		ttl:         ttl,
		redisClient: redisClient,
		now:         time.Now,
	}
}

func (c *SessionChecker) UserID(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, perrors.ErrUnauthenticated
	}

	session, err := c.redisClient.HGetAll(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return uuid.Nil, fmt.Errorf("get session: %w", err)
	}
	if len(session) == 0 {
		return uuid.Nil, perrors.ErrUnauthenticated
	}

	createdAtUnix, err := strconv.ParseInt(session[fieldCreatedAt], 10, 64)
	if err != nil {
		return uuid.Nil, perrors.ErrUnauthenticated
	}
	if c.now().Sub(time.Unix(createdAtUnix, 0)) > c.ttl {
		return uuid.Nil, perrors.ErrUnauthenticated
	}

	userID, err := uuid.Parse(session[fieldUserID])
	if err != nil {
		return uuid.Nil, perrors.ErrUnauthenticated
	}

	return userID, nil
}
