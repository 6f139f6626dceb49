package goals

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=goals_test

type goalsRepo interface {
	Get(ctx context.Context, userID, goalID uuid.UUID) (*Goal, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*Goal, error)
	UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64, achieved bool, status Status) (*Goal, error)
}

type workoutsReader interface {
	Totals(ctx context.Context, userID uuid.UUID) (*history.Totals, error)
	ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]history.Workout, error)
}

type Service struct {
	repo          goalsRepo
	workouts      workoutsReader
	workoutsLimit int
	now           func() time.Time
	syncedCounter prometheus.Counter
}

func NewService(repo goalsRepo, workouts workoutsReader, workoutsLimit int) *Service {
	return &Service{
		repo:          repo,
		workouts:      workouts,
		workoutsLimit: workoutsLimit,
		now:           time.Now,
	}
}

// WithSyncedCounter makes SyncUserGoals count every goal it updates.
func (s *Service) WithSyncedCounter(counter prometheus.Counter) *Service {
	s.syncedCounter = counter
	return s
}

func (s *Service) Get(ctx context.Context, userID, goalID uuid.UUID) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goal, err := s.repo.Get(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return goal, nil
}

// UpdateProgress stores a manually reported current value and re-derives the
// achieved flag and the status from it.
func (s *Service) UpdateProgress(ctx context.Context, userID, goalID uuid.UUID, currentValue float64) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.updateprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if math.IsNaN(currentValue) || math.IsInf(currentValue, 0) {
		verr := perrors.NewValidationError()
		verr.Add("currentValue", "must be a finite number")
		return nil, verr
	}

	goal, err := s.repo.Get(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	updated, err := s.store(ctx, goal, currentValue)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *Service) store(ctx context.Context, goal *Goal, currentValue float64) (*Goal, error) {
	achieved := IsAchieved(goal.InitialValue, currentValue, goal.TargetValue)
	status := CalculateStatus(goal.InitialValue, currentValue, goal.TargetValue, goal.TargetDate, s.now())

	updated, err := s.repo.UpdateProgress(ctx, goal.UserID, goal.ID, currentValue, achieved, status)
	if err != nil {
		return nil, fmt.Errorf("update goal progress: %w", err)
	}

	if achieved && !goal.Achieved {
		log.WithFields(log.Fields{
			"goal_id": goal.ID,
			"user_id": goal.UserID,
		}).Infof("goal [%s] achieved", goal.Title)
	}
	return updated, nil
}
