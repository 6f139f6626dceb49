package plans

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=plans_test

type plansRepo interface {
	Get(ctx context.Context, userID, planID uuid.UUID) (*Plan, error)
	List(ctx context.Context, userID uuid.UUID) ([]*Plan, error)
	FindActive(ctx context.Context, userID uuid.UUID) (*Plan, error)
	FindCurrent(ctx context.Context, userID uuid.UUID) (*Plan, error)
	TransitionStatus(ctx context.Context, userID, planID uuid.UUID, from, to PlanStatus, now time.Time) (*Plan, error)
	UpdateDetails(ctx context.Context, userID, planID uuid.UUID, patch PlanPatch, now time.Time) (*Plan, error)
	SoftDelete(ctx context.Context, userID, planID uuid.UUID, now time.Time) error
	ListSessions(ctx context.Context, planID uuid.UUID, week int) ([]Session, error)
	GetSession(ctx context.Context, userID, sessionID uuid.UUID) (*Session, int, error)
	CompleteSession(ctx context.Context, userID, sessionID, workoutID uuid.UUID, notes *string, now time.Time) (*Session, error)
	SkipSession(ctx context.Context, userID, sessionID uuid.UUID, reason *string, now time.Time) (*Session, error)
	UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, patch SessionPatch, now time.Time) (*Session, error)
	DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) error
}

type workoutChecker interface {
	WorkoutExists(ctx context.Context, userID, workoutID uuid.UUID) (bool, error)
}

type goalsSyncer interface {
	SyncUserGoals(ctx context.Context, userID uuid.UUID) (*goals.SyncResult, error)
}

type CurrentWeek struct {
	PlanID      *uuid.UUID `json:"planId,omitempty"`
	CurrentWeek int        `json:"currentWeek"`
	Sessions    []Session  `json:"sessions"`
}

type Service struct {
	repo       plansRepo
	workouts   workoutChecker
	goalsSyncs goalsSyncer
	now        func() time.Time
}

func NewService(repo plansRepo, workouts workoutChecker, goalsSyncs goalsSyncer) *Service {
	return &Service{
		repo:       repo,
		workouts:   workouts,
		goalsSyncs: goalsSyncs,
		now:        time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID uuid.UUID) (_ []*Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plans, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	if plans == nil {
		plans = []*Plan{}
	}
	return plans, nil
}

func (s *Service) Get(ctx context.Context, userID, planID uuid.UUID) (_ *PlanWithSessions, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	sessions, err := s.repo.ListSessions(ctx, plan.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("list plan sessions: %w", err)
	}

	return &PlanWithSessions{
		Plan:        plan,
		CurrentWeek: ResolveWeek(plan.StartedAt, plan.WeeksDuration, s.now()),
		Sessions:    sessions,
	}, nil
}

func (s *Service) Update(ctx context.Context, userID, planID uuid.UUID, patch PlanPatch) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	verr := perrors.NewValidationError()
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			verr.Add("name", "must not be empty")
		} else if len(trimmed) > 200 {
			verr.Add("name", "must be at most 200 characters")
		}
		patch.Name = &trimmed
	}
	if patch.Description != nil && len(*patch.Description) > 2000 {
		verr.Add("description", "must be at most 2000 characters")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	plan, err := s.repo.UpdateDetails(ctx, userID, planID, patch, s.now())
	if err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	return plan, nil
}

// Activate makes the plan the user's active plan. Activating the plan that is
// already active is a no-op; any other active plan is reported as a conflict.
func (s *Service) Activate(ctx context.Context, userID, planID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.activate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	if plan.Status == PlanStatusActive {
		return plan, nil
	}

	active, err := s.repo.FindActive(ctx, userID)
	switch {
	case err == nil:
		return nil, perrors.NewConflictError("another plan is already active", active.ID.String(), active.Name)
	case !errors.Is(err, perrors.ErrNotFound):
		return nil, fmt.Errorf("find active plan: %w", err)
	}

	activated, err := s.transition(ctx, plan, PlanStatusActive)
	if errors.Is(err, perrors.ErrConflict) {
		// lost the race against a concurrent activation
		if active, findErr := s.repo.FindActive(ctx, userID); findErr == nil {
			return nil, perrors.NewConflictError("another plan is already active", active.ID.String(), active.Name)
		}
		return nil, perrors.NewConflictError("another plan is already active", "", "")
	}
	if err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"plan_id": activated.ID,
		"user_id": userID,
	}).Infof("plan [%s] activated", activated.Name)
	return activated, nil
}

func (s *Service) Deactivate(ctx context.Context, userID, planID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.deactivate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return s.transition(ctx, plan, PlanStatusArchived)
}

func (s *Service) Complete(ctx context.Context, userID, planID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}
	return s.transition(ctx, plan, PlanStatusCompleted)
}

func (s *Service) Delete(ctx context.Context, userID, planID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.delete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.SoftDelete(ctx, userID, planID, s.now()); err != nil {
		return fmt.Errorf("delete plan: %w", err)
	}

	log.WithFields(log.Fields{
		"plan_id": planID,
		"user_id": userID,
	}).Debug("plan deleted")
	return nil
}

// transition applies a status change guarded by the plan's current status.
// When the guarded update matches nothing, the plan is re-read to tell a
// concurrent delete from a concurrent status change.
func (s *Service) transition(ctx context.Context, plan *Plan, to PlanStatus) (*Plan, error) {
	if !plan.Status.CanTransition(to) {
		return nil, fmt.Errorf("plan %s -> %s: %w", plan.Status, to, perrors.ErrInvalidTransition)
	}

	updated, err := s.repo.TransitionStatus(ctx, plan.UserID, plan.ID, plan.Status, to, s.now())
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, perrors.ErrNotFound) {
		return nil, fmt.Errorf("update plan status: %w", err)
	}

	current, getErr := s.repo.Get(ctx, plan.UserID, plan.ID)
	if getErr != nil {
		return nil, fmt.Errorf("get plan: %w", getErr)
	}
	return nil, fmt.Errorf("plan %s -> %s: %w", current.Status, to, perrors.ErrInvalidTransition)
}

// CurrentWeekSessions returns the current week's sessions of the plan the user
// follows: the active one, else the newest draft. Without one the result is
// empty and the week is 1.
func (s *Service) CurrentWeekSessions(ctx context.Context, userID uuid.UUID) (_ *CurrentWeek, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.currentweek")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.FindCurrent(ctx, userID)
	if errors.Is(err, perrors.ErrNotFound) {
		return &CurrentWeek{CurrentWeek: 1, Sessions: []Session{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find current plan: %w", err)
	}

	week := ResolveWeek(plan.StartedAt, plan.WeeksDuration, s.now())
	sessions, err := s.repo.ListSessions(ctx, plan.ID, week)
	if err != nil {
		return nil, fmt.Errorf("list week sessions: %w", err)
	}

	return &CurrentWeek{
		PlanID:      &plan.ID,
		CurrentWeek: week,
		Sessions:    sessions,
	}, nil
}

func (s *Service) Stats(ctx context.Context, userID, planID uuid.UUID) (_ *AdherenceStats, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.stats")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	plan, err := s.repo.Get(ctx, userID, planID)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	sessions, err := s.repo.ListSessions(ctx, plan.ID, 0)
	if err != nil {
		return nil, fmt.Errorf("list plan sessions: %w", err)
	}

	stats := CalculateAdherence(sessions)
	if plan.Status == PlanStatusActive {
		stats.CurrentWeek = ResolveWeek(plan.StartedAt, plan.WeeksDuration, s.now())
	}
	return &stats, nil
}

// CompleteSession links a logged workout to a scheduled session. The goal sync
// that follows is best effort and never fails the completion.
func (s *Service) CompleteSession(ctx context.Context, userID, sessionID, workoutID uuid.UUID, notes *string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.completesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if workoutID == uuid.Nil {
		verr := perrors.NewValidationError()
		verr.Add("workoutId", "is required")
		return nil, verr
	}

	exists, err := s.workouts.WorkoutExists(ctx, userID, workoutID)
	if err != nil {
		return nil, fmt.Errorf("check workout: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("workout %s: %w", workoutID, perrors.ErrNotFound)
	}

	session, err := s.repo.CompleteSession(ctx, userID, sessionID, workoutID, notes, s.now())
	if err != nil {
		return nil, s.sessionUpdateErr(ctx, userID, sessionID, SessionStatusCompleted, err)
	}

	if s.goalsSyncs != nil {
		if res, syncErr := s.goalsSyncs.SyncUserGoals(ctx, userID); syncErr != nil {
			log.Errorf("sync goals after session [%s] completion: %s", sessionID, syncErr)
		} else if res.Updated > 0 {
			log.Debugf("session [%s] completion updated %d goal(s)", sessionID, res.Updated)
		}
	}

	return session, nil
}

func (s *Service) SkipSession(ctx context.Context, userID, sessionID uuid.UUID, reason *string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.skipsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	session, err := s.repo.SkipSession(ctx, userID, sessionID, reason, s.now())
	if err != nil {
		return nil, s.sessionUpdateErr(ctx, userID, sessionID, SessionStatusSkipped, err)
	}
	return session, nil
}

// UpdateSession reschedules or renames a session that is still scheduled.
func (s *Service) UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, patch SessionPatch) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.updatesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if patch.IsEmpty() {
		verr := perrors.NewValidationError()
		verr.Add("body", "nothing to update")
		return nil, verr
	}

	current, weeksDuration, err := s.repo.GetSession(ctx, userID, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	if current.Status != SessionStatusScheduled {
		return nil, fmt.Errorf("session is %s: %w", current.Status, perrors.ErrInvalidTransition)
	}

	verr := perrors.NewValidationError()
	if patch.WeekNumber != nil && (*patch.WeekNumber < 1 || *patch.WeekNumber > weeksDuration) {
		verr.Add("weekNumber", fmt.Sprintf("must be between 1 and %d", weeksDuration))
	}
	if patch.DayOfWeek != nil && (*patch.DayOfWeek < 0 || *patch.DayOfWeek > 6) {
		verr.Add("dayOfWeek", "must be between 0 and 6")
	}
	if patch.WorkoutName != nil && strings.TrimSpace(*patch.WorkoutName) == "" {
		verr.Add("workoutName", "must not be empty")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	session, err := s.repo.UpdateSession(ctx, userID, sessionID, patch, s.now())
	if err != nil {
		return nil, s.sessionUpdateErr(ctx, userID, sessionID, SessionStatusScheduled, err)
	}
	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.plans.deletesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.repo.DeleteSession(ctx, userID, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// sessionUpdateErr turns a guarded session update that matched nothing into
// either NotFound or an invalid transition, depending on what is stored now.
func (s *Service) sessionUpdateErr(ctx context.Context, userID, sessionID uuid.UUID, to SessionStatus, err error) error {
	if !errors.Is(err, perrors.ErrNotFound) {
		return fmt.Errorf("update session: %w", err)
	}

	current, _, getErr := s.repo.GetSession(ctx, userID, sessionID)
	if getErr != nil {
		return fmt.Errorf("get session: %w", getErr)
	}
	return fmt.Errorf("session %s -> %s: %w", current.Status, to, perrors.ErrInvalidTransition)
}
