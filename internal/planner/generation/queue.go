package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	queueKey      = "fit-gen-queue"
	processingKey = "fit-gen-processing"
)

var ErrQueueEmpty = errors.New("queue empty")

// Queue is a redis backed job id queue with at-least-once delivery: a reserved
// id moves atomically into a processing list and stays there until acked, so
// ids of a crashed worker can be found and requeued.
type Queue struct {
	redisClient *redis.Client
}

func NewQueue(redisClient *redis.Client) *Queue {
	return &Queue{
		redisClient: redisClient,
	}
}

func (q *Queue) Enqueue(ctx context.Context, jobID uuid.UUID) error {
	if err := q.redisClient.LPush(ctx, queueKey, jobID.String()).Err(); err != nil {
		return fmt.Errorf("enqueue job %s: %w", jobID, err)
	}
	return nil
}

// Reserve blocks up to timeout for the next job id. ErrQueueEmpty is returned when none came.
func (q *Queue) Reserve(ctx context.Context, timeout time.Duration) (uuid.UUID, error) {
	raw, err := q.redisClient.BRPopLPush(ctx, queueKey, processingKey, timeout).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrQueueEmpty
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("reserve job: %w", err)
	}

	jobID, err := uuid.Parse(raw)
	if err != nil {
		// garbage in the queue would otherwise be retried forever
		log.Errorf("queue: dropping invalid job id [%s]", raw)
		if ackErr := q.redisClient.LRem(ctx, processingKey, 1, raw).Err(); ackErr != nil {
			log.Errorf("queue: remove invalid job id [%s]: %s", raw, ackErr)
		}
		return uuid.Nil, fmt.Errorf("invalid job id %q: %w", raw, err)
	}
	return jobID, nil
}

func (q *Queue) Ack(ctx context.Context, jobID uuid.UUID) error {
	if err := q.redisClient.LRem(ctx, processingKey, 1, jobID.String()).Err(); err != nil {
		return fmt.Errorf("ack job %s: %w", jobID, err)
	}
	return nil
}

// InFlight lists the reserved but not yet acked job ids.
func (q *Queue) InFlight(ctx context.Context) ([]uuid.UUID, error) {
	raw, err := q.redisClient.LRange(ctx, processingKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list in flight jobs: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			log.Errorf("queue: invalid in flight job id [%s]", r)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Requeue moves an in flight job id back to the head of the queue. The id is
// pushed before it is removed, so a failure in between leaves a duplicate, never a loss.
func (q *Queue) Requeue(ctx context.Context, jobID uuid.UUID) error {
	id := jobID.String()
	if err := q.redisClient.RPush(ctx, queueKey, id).Err(); err != nil {
		return fmt.Errorf("requeue job %s: %w", jobID, err)
	}
	if err := q.redisClient.LRem(ctx, processingKey, 1, id).Err(); err != nil {
		return fmt.Errorf("remove requeued job %s: %w", jobID, err)
	}
	return nil
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.redisClient.LLen(ctx, queueKey).Result()
}
