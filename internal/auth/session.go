package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/2beens/fitplan/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fit-session||"
	tokensSetKey     = "fit-sessions"

	fieldUserID    = "user_id"
	fieldCreatedAt = "created_at"
)

// Service issues and revokes session tokens. Logging users in is done elsewhere;
// this only maintains the token -> user mapping the checker reads.
type Service struct {
	redisClient *redis.Client
	ttl         time.Duration
	// ability to inject random string generator func for tokens (for unit and dev testing)
	RandStringFunc func(s int) (string, error)
}

func NewService(ttl time.Duration, redisClient *redis.Client) *Service {
	return &Service{
		ttl:            ttl,
		redisClient:    redisClient,
		RandStringFunc: pkg.GenerateRandomString,
	}
}

func (s *Service) NewSession(ctx context.Context, userID uuid.UUID, createdAt time.Time) (string, error) {
	token, err := s.RandStringFunc(35)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	sessionKey := sessionKeyPrefix + token
	if err := s.redisClient.HSet(
		ctx, sessionKey,
		fieldUserID, userID.String(),
		fieldCreatedAt, createdAt.Unix(),
	).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	if err := s.redisClient.SAdd(ctx, tokensSetKey, token).Err(); err != nil {
		return "", fmt.Errorf("add session token: %w", err)
	}

	return token, nil
}

func (s *Service) Revoke(ctx context.Context, token string) (bool, error) {
	removed, err := s.redisClient.Del(ctx, sessionKeyPrefix+token).Result()
	if err != nil {
		return false, fmt.Errorf("delete session: %w", err)
	}

	if err := s.redisClient.SRem(ctx, tokensSetKey, token).Err(); err != nil {
		return false, fmt.Errorf("remove session token: %w", err)
	}

	return removed > 0, nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old
func (s *Service) ScanAndClean(ctx context.Context) {
	sessionTokens, err := s.redisClient.SMembers(ctx, tokensSetKey).Result()
	if err != nil {
		log.Errorf("!!! auth service, scan and clean, get sessions: %s", err)
		return
	}

	if len(sessionTokens) == 0 {
		log.Debugln("=> auth service, scan and clean abort, no sessions")
		return
	}

	log.Debugf("=> auth service, scan and clean [%d sessions] start ...", len(sessionTokens))
	removed := 0
	for _, token := range sessionTokens {
		createdAtStr, err := s.redisClient.HGet(ctx, sessionKeyPrefix+token, fieldCreatedAt).Result()
		if err != nil && err != redis.Nil {
			log.Errorf("=> auth service, scan and clean token %s: %s", token, err)
			continue
		}

		createdAtUnix, _ := strconv.ParseInt(createdAtStr, 10, 64)
		if err == nil && time.Since(time.Unix(createdAtUnix, 0)) <= s.ttl {
			continue
		}

		if _, err := s.Revoke(ctx, token); err != nil {
			log.Errorf("=> auth service, scan and clean, revoke: %s", err)
			continue
		}
		removed++
	}

	log.Debugf("=> auth service, scan and clean done, removed %d sessions", removed)
}
