package goals

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var (
	numbersRegex   = regexp.MustCompile(`\d+(\.\d+)?`)
	unitWordsRegex = regexp.MustCompile(`(?i)\b(kg|lbs|km|miles|reps|minutes|days|workouts)\b`)
	bodyGoalRegex  = regexp.MustCompile(`(?i)weight|body|lose|gain`)
)

type SyncedGoal struct {
	GoalID   uuid.UUID `json:"goalId"`
	Title    string    `json:"title"`
	OldValue float64   `json:"oldValue"`
	NewValue float64   `json:"newValue"`
	Unit     string    `json:"unit"`
	Achieved bool      `json:"achieved"`
}

type SyncResult struct {
	Updated int          `json:"updated"`
	Details []SyncedGoal `json:"details"`
}

// syncData lazily loads the workout data shared by all strategies of one sync run.
type syncData struct {
	userID   uuid.UUID
	reader   workoutsReader
	limit    int
	totals   *history.Totals
	workouts []history.Workout
	loaded   bool
}

func (d *syncData) getTotals(ctx context.Context) (*history.Totals, error) {
	if d.totals == nil {
		totals, err := d.reader.Totals(ctx, d.userID)
		if err != nil {
			return nil, fmt.Errorf("workout totals: %w", err)
		}
		d.totals = totals
	}
	return d.totals, nil
}

func (d *syncData) getWorkouts(ctx context.Context) ([]history.Workout, error) {
	if !d.loaded {
		workouts, err := d.reader.ListWorkouts(ctx, d.userID, d.limit)
		if err != nil {
			return nil, fmt.Errorf("list workouts: %w", err)
		}
		d.workouts = workouts
		d.loaded = true
	}
	return d.workouts, nil
}

// syncStrategy derives the current value of a goal from the workout log.
// ok is false when the goal cannot be derived.
type syncStrategy func(ctx context.Context, data *syncData, goal *Goal) (value float64, ok bool, err error)

var syncStrategies = map[string]syncStrategy{
	"workouts": func(ctx context.Context, data *syncData, _ *Goal) (float64, bool, error) {
		totals, err := data.getTotals(ctx)
		if err != nil {
			return 0, false, err
		}
		return float64(totals.Workouts), true, nil
	},
	"minutes": func(ctx context.Context, data *syncData, _ *Goal) (float64, bool, error) {
		totals, err := data.getTotals(ctx)
		if err != nil {
			return 0, false, err
		}
		return float64(totals.Minutes), true, nil
	},
	"days": func(ctx context.Context, data *syncData, _ *Goal) (float64, bool, error) {
		totals, err := data.getTotals(ctx)
		if err != nil {
			return 0, false, err
		}
		return float64(totals.UniqueDays), true, nil
	},
	"kg":   maxWeightStrategy,
	"lbs":  maxWeightStrategy,
	"reps": maxRepsStrategy,
}

// exerciseFromTitle strips numbers and unit words from a goal title,
// "Bench press 100 kg" gives "bench press".
func exerciseFromTitle(title string) string {
	cleaned := numbersRegex.ReplaceAllString(title, "")
	cleaned = unitWordsRegex.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(strings.ToLower(cleaned)), " ")
}

func maxWeightStrategy(ctx context.Context, data *syncData, goal *Goal) (float64, bool, error) {
	exercise := exerciseFromTitle(goal.Title)
	// body weight goals are tracked through measurements, not the workout log
	if exercise == "" || bodyGoalRegex.MatchString(goal.Title) {
		return 0, false, nil
	}

	workouts, err := data.getWorkouts(ctx)
	if err != nil {
		return 0, false, err
	}

	maxWeight := 0.0
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			if ex.Weight == nil || !strings.Contains(history.NormalizeName(ex.Name), exercise) {
				continue
			}
			weight, err := history.ConvertWeight(*ex.Weight, ex.WeightUnit, goal.Unit)
			if err != nil {
				log.Debugf("goal sync, skipping exercise weight: %s", err)
				continue
			}
			maxWeight = math.Max(maxWeight, weight)
		}
	}

	if maxWeight <= 0 {
		return 0, false, nil
	}
	return math.Round(maxWeight*10) / 10, true, nil
}

func maxRepsStrategy(ctx context.Context, data *syncData, goal *Goal) (float64, bool, error) {
	exercise := exerciseFromTitle(goal.Title)
	if exercise == "" {
		return 0, false, nil
	}

	workouts, err := data.getWorkouts(ctx)
	if err != nil {
		return 0, false, err
	}

	maxReps := 0
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			if ex.Reps == nil || !strings.Contains(history.NormalizeName(ex.Name), exercise) {
				continue
			}
			maxReps = max(maxReps, *ex.Reps)
		}
	}

	if maxReps <= 0 {
		return 0, false, nil
	}
	return float64(maxReps), true, nil
}

// SyncUserGoals re-derives the current value of every goal of the user whose
// unit has a sync strategy. Only goals whose value changed are written.
// A failing goal is logged and skipped.
func (s *Service) SyncUserGoals(ctx context.Context, userID uuid.UUID) (_ *SyncResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.goals.sync")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	goals, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	data := &syncData{
		userID: userID,
		reader: s.workouts,
		limit:  s.workoutsLimit,
	}

	result := &SyncResult{Details: []SyncedGoal{}}
	for _, goal := range goals {
		strategy, ok := syncStrategies[strings.ToLower(goal.Unit)]
		if !ok {
			continue
		}

		newValue, ok, err := strategy(ctx, data, goal)
		if err != nil {
			log.Errorf("goal sync, calculate goal %s: %s", goal.ID, err)
			continue
		}
		if !ok || newValue == goal.CurrentValue {
			continue
		}

		updated, err := s.store(ctx, goal, newValue)
		if err != nil {
			log.Errorf("goal sync, update goal %s: %s", goal.ID, err)
			continue
		}

		log.Debugf("synced goal [%s]: %v -> %v %s", goal.Title, goal.CurrentValue, newValue, goal.Unit)
		result.Updated++
		result.Details = append(result.Details, SyncedGoal{
			GoalID:   goal.ID,
			Title:    goal.Title,
			OldValue: goal.CurrentValue,
			NewValue: newValue,
			Unit:     goal.Unit,
			Achieved: updated.Achieved,
		})
	}

	if s.syncedCounter != nil {
		s.syncedCounter.Add(float64(result.Updated))
	}

	span.SetAttributes(attribute.Int("goals.updated", result.Updated))
	return result, nil
}
