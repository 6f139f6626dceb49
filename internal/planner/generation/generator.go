package generation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/planner/plans"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=generator_mocks_test.go -package=generation_test

const (
	defaultRationale           = "AI-generated workout plan."
	defaultProgressionStrategy = "Progressive overload."
	genericWorkoutName         = "General Workout"
	restDayName                = "Rest Day"
)

type goalsReader interface {
	Get(ctx context.Context, userID, goalID uuid.UUID) (*goals.Goal, error)
}

type plansStore interface {
	FindOpenForGoal(ctx context.Context, userID, goalID uuid.UUID) (*plans.Plan, error)
	CreateWithSessions(ctx context.Context, plan *plans.Plan, sessions []plans.Session) (*plans.Plan, error)
}

type workoutsLister interface {
	ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) ([]history.Workout, error)
}

// Generator turns validated constraints into a persisted draft plan.
type Generator struct {
	goals         goalsReader
	plans         plansStore
	workouts      workoutsLister
	proposer      Proposer
	workoutsLimit int
}

func NewGenerator(
	goals goalsReader,
	plans plansStore,
	workouts workoutsLister,
	proposer Proposer,
	workoutsLimit int,
) *Generator {
	return &Generator{
		goals:         goals,
		plans:         plans,
		workouts:      workouts,
		proposer:      proposer,
		workoutsLimit: workoutsLimit,
	}
}

// Precheck loads the goal and fails with a conflict naming the plan when the
// goal already has a draft or active one.
func (g *Generator) Precheck(ctx context.Context, userID, goalID uuid.UUID) (*goals.Goal, error) {
	goal, err := g.goals.Get(ctx, userID, goalID)
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}

	existing, err := g.plans.FindOpenForGoal(ctx, userID, goalID)
	switch {
	case err == nil:
		return nil, perrors.NewConflictError(
			"goal already has an active or draft plan",
			existing.ID.String(),
			existing.Name,
		)
	case !errors.Is(err, perrors.ErrNotFound):
		return nil, fmt.Errorf("find open plan: %w", err)
	}

	return goal, nil
}

func (g *Generator) Generate(ctx context.Context, userID uuid.UUID, c Constraints) (_ *plans.Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "generator.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("goal.id", c.GoalID.String()),
		attribute.Int("weeks", c.WeeksCount),
		attribute.Int("workouts_per_week", c.WorkoutsPerWeek),
	)

	c.Normalize()

	goal, err := g.Precheck(ctx, userID, c.GoalID)
	if err != nil {
		return nil, err
	}

	workouts, err := g.workouts.ListWorkouts(ctx, userID, g.workoutsLimit)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	stats := history.Analyze(workouts)
	slots := AllocateDays(c.WorkoutsPerWeek, c.Preferences.PreferredDays)

	log.WithFields(log.Fields{
		"user_id":   userID,
		"goal_id":   c.GoalID,
		"workouts":  len(workouts),
		"exercises": len(stats),
		"slots":     slots,
	}).Debug("generator: requesting proposal")

	proposal, err := g.proposer.ProposeSessions(ctx, ProposalRequest{
		Goal:        goal,
		Constraints: c,
		Stats:       stats,
		Slots:       slots,
	})
	if err != nil {
		return nil, fmt.Errorf("propose sessions: %w", err)
	}

	plan := &plans.Plan{
		ID:                  uuid.New(),
		UserID:              userID,
		GoalID:              c.GoalID,
		Name:                c.Name,
		Description:         c.Description,
		WeeksDuration:       c.WeeksCount,
		WorkoutsPerWeek:     c.WorkoutsPerWeek,
		AvgWorkoutDuration:  c.AvgDuration,
		Status:              plans.PlanStatusDraft,
		Rationale:           orDefault(proposal.Rationale, defaultRationale),
		ProgressionStrategy: orDefault(proposal.ProgressionStrategy, defaultProgressionStrategy),
		KeyConsiderations:   proposal.KeyConsiderations,
	}
	if plan.KeyConsiderations == nil {
		plan.KeyConsiderations = []string{}
	}

	sessions := BuildSessions(c, slots, proposal, stats)
	span.SetAttributes(attribute.Int("sessions", len(sessions)))

	created, err := g.plans.CreateWithSessions(ctx, plan, sessions)
	if err != nil {
		return nil, fmt.Errorf("create plan: %w", err)
	}
	return created, nil
}

// BuildSessions maps a proposal onto the slot grid. For every week the k-th
// proposed workout (by day) fills the k-th slot; unfilled slots get a generic
// workout and surplus proposals are dropped. Weeks outside the plan and
// proposed rest entries are ignored. With IncludeRestDays, every weekday
// without a workout gets a rest placeholder. Sessions are ordered by week and day.
func BuildSessions(c Constraints, slots []int, proposal *Proposal, stats map[string]history.ExerciseStat) []plans.Session {
	byWeek := make(map[int][]ProposedSession)
	if proposal != nil {
		for _, ps := range proposal.WeeklySchedule {
			if ps.Week < 1 || ps.Week > c.WeeksCount {
				continue
			}
			if strings.EqualFold(strings.TrimSpace(ps.WorkoutType), plans.RestWorkoutType) {
				continue
			}
			byWeek[ps.Week] = append(byWeek[ps.Week], ps)
		}
	}

	var restDays []int
	if c.IncludeRestDays {
		restDays = RestDays(slots)
	}

	sessions := make([]plans.Session, 0, c.WeeksCount*(len(slots)+len(restDays)))
	for week := 1; week <= c.WeeksCount; week++ {
		proposed := byWeek[week]
		slices.SortStableFunc(proposed, func(a, b ProposedSession) int {
			return a.Day - b.Day
		})

		weekSessions := make([]plans.Session, 0, len(slots)+len(restDays))
		for k, day := range slots {
			if k < len(proposed) {
				weekSessions = append(weekSessions, proposedSession(proposed[k], week, day, c, stats))
			} else {
				weekSessions = append(weekSessions, genericSession(week, day, c))
			}
		}
		for _, day := range restDays {
			weekSessions = append(weekSessions, restSession(week, day))
		}

		slices.SortFunc(weekSessions, func(a, b plans.Session) int {
			return a.DayOfWeek - b.DayOfWeek
		})
		for i := range weekSessions {
			weekSessions[i].SessionOrder = i + 1
		}
		sessions = append(sessions, weekSessions...)
	}

	return sessions
}

func newSession(week, day int) plans.Session {
	return plans.Session{
		ID:         uuid.New(),
		WeekNumber: week,
		DayOfWeek:  day,
		DayName:    plans.DayName(day),
		Status:     plans.SessionStatusScheduled,
		Exercises:  []plans.Exercise{},
	}
}

func proposedSession(ps ProposedSession, week, day int, c Constraints, stats map[string]history.ExerciseStat) plans.Session {
	s := newSession(week, day)
	s.WorkoutType = orDefault(strings.TrimSpace(ps.WorkoutType), defaultWorkoutType)
	s.WorkoutName = orDefault(strings.TrimSpace(ps.Name), s.WorkoutType)
	s.EstimatedDuration = ps.Duration
	if s.EstimatedDuration <= 0 {
		s.EstimatedDuration = c.AvgDuration
	}
	s.Intensity = plans.ParseIntensity(ps.Intensity)
	s.Notes = strings.TrimSpace(ps.Notes)

	for _, pe := range ps.Exercises {
		name := strings.TrimSpace(pe.Name)
		if name == "" {
			continue
		}
		ex := plans.Exercise{
			Name:        name,
			Sets:        pe.Sets,
			Reps:        pe.Reps,
			Weight:      pe.Weight,
			WeightUnit:  strings.TrimSpace(pe.WeightUnit),
			RestSeconds: pe.RestSeconds,
			Notes:       strings.TrimSpace(pe.Notes),
		}
		if ex.Sets <= 0 {
			ex.Sets = defaultSets
		}
		if ex.Reps <= 0 {
			ex.Reps = defaultReps
		}
		applyOverload(&ex, stats)
		if ex.WeightUnit == "" {
			ex.WeightUnit = history.DefaultWeightUnit
		}
		s.Exercises = append(s.Exercises, ex)
	}

	return s
}

// applyOverload sets the weight of an exercise the user has history for to the
// progressive overload target, expressed in the exercise's unit when both units are known.
func applyOverload(ex *plans.Exercise, stats map[string]history.ExerciseStat) {
	stat, ok := stats[history.NormalizeName(ex.Name)]
	if !ok || stat.MaxWeight <= 0 {
		return
	}

	maxWeight := stat.MaxWeight
	if ex.WeightUnit == "" {
		ex.WeightUnit = stat.WeightUnit
	} else if converted, err := history.ConvertWeight(stat.MaxWeight, stat.WeightUnit, ex.WeightUnit); err == nil {
		maxWeight = converted
	} else {
		ex.WeightUnit = stat.WeightUnit
		ex.Weight = nil
	}

	load := history.OverloadTarget(ex.Weight, maxWeight)
	ex.Weight = &load
}

func genericSession(week, day int, c Constraints) plans.Session {
	s := newSession(week, day)
	s.WorkoutName = genericWorkoutName
	s.WorkoutType = defaultWorkoutType
	s.EstimatedDuration = c.AvgDuration
	s.Intensity = plans.IntensityMedium
	return s
}

func restSession(week, day int) plans.Session {
	s := newSession(week, day)
	s.WorkoutName = restDayName
	s.WorkoutType = plans.RestWorkoutType
	s.Intensity = plans.IntensityLow
	return s
}
