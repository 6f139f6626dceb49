package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const DefaultWorkoutsLimit = 50

// Repo reads the user's workout log.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

// ListWorkouts returns the user's most recent workouts with their exercises, newest first.
func (r *Repo) ListWorkouts(ctx context.Context, userID uuid.UUID, limit int) (_ []Workout, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.listworkouts")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.id", userID.String()))

	if limit <= 0 {
		limit = DefaultWorkoutsLimit
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT id, user_id, name, date, duration_minutes
			FROM workout
			WHERE user_id = $1 AND deleted_at IS NULL
			ORDER BY date DESC, created_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query workouts: %w", err)
	}

	workouts, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Workout, error) {
		var w Workout
		err := row.Scan(&w.ID, &w.UserID, &w.Name, &w.Date, &w.DurationMinutes)
		return w, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan workouts: %w", err)
	}

	if len(workouts) == 0 {
		return workouts, nil
	}

	ids := make([]string, 0, len(workouts))
	byID := make(map[uuid.UUID]int, len(workouts))
	for i, w := range workouts {
		ids = append(ids, w.ID.String())
		byID[w.ID] = i
	}

	exRows, err := r.db.Query(
		ctx,
		`SELECT workout_id, name, sets, reps, weight, COALESCE(weight_unit, '')
			FROM workout_exercise
			WHERE workout_id = ANY($1::uuid[])
			ORDER BY workout_id, position;`,
		ids,
	)
	if err != nil {
		return nil, fmt.Errorf("query workout exercises: %w", err)
	}
	defer exRows.Close()

	for exRows.Next() {
		var workoutID uuid.UUID
		var ex Exercise
		if err := exRows.Scan(&workoutID, &ex.Name, &ex.Sets, &ex.Reps, &ex.Weight, &ex.WeightUnit); err != nil {
			return nil, fmt.Errorf("scan workout exercise: %w", err)
		}
		if i, ok := byID[workoutID]; ok {
			workouts[i].Exercises = append(workouts[i].Exercises, ex)
		}
	}
	if err := exRows.Err(); err != nil {
		return nil, fmt.Errorf("workout exercises rows: %w", err)
	}

	span.SetAttributes(attribute.Int("workouts.count", len(workouts)))
	return workouts, nil
}

// WorkoutExists reports whether workoutID is a non-deleted workout of the user.
func (r *Repo) WorkoutExists(ctx context.Context, userID, workoutID uuid.UUID) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.workoutexists")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var exists bool
	err = r.db.QueryRow(
		ctx,
		`SELECT EXISTS (SELECT 1 FROM workout WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL);`,
		workoutID, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check workout: %w", err)
	}
	return exists, nil
}

// Totals returns the aggregate workout counters of the user.
func (r *Repo) Totals(ctx context.Context, userID uuid.UUID) (_ *Totals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.history.totals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var totals Totals
	err = r.db.QueryRow(
		ctx,
		`SELECT COUNT(*), COUNT(DISTINCT date), COALESCE(SUM(duration_minutes), 0)
			FROM workout
			WHERE user_id = $1 AND deleted_at IS NULL;`,
		userID,
	).Scan(&totals.Workouts, &totals.UniqueDays, &totals.Minutes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, fmt.Errorf("workout totals: %w", err)
	}
	return &totals, nil
}
