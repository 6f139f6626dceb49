package goals

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const goalColumns = `id, user_id, title, COALESCE(description, ''), unit,
	initial_value, current_value, target_value, target_date,
	achieved, status, created_at, updated_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID, goalID uuid.UUID) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", goalID.String()))

	row := r.db.QueryRow(
		ctx,
		`SELECT `+goalColumns+`
			FROM goal
			WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`,
		goalID, userID,
	)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return goal, nil
}

func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) (_ []*Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+goalColumns+`
			FROM goal
			WHERE user_id = $1 AND deleted_at IS NULL
			ORDER BY created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []*Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("goals rows: %w", err)
	}

	span.SetAttributes(attribute.Int("goals.count", len(goals)))
	return goals, nil
}

func (r *Repo) UpdateProgress(
	ctx context.Context,
	userID, goalID uuid.UUID,
	currentValue float64,
	achieved bool,
	status Status,
) (_ *Goal, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.goals.updateprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("goal.id", goalID.String()))

	row := r.db.QueryRow(
		ctx,
		`UPDATE goal
			SET current_value = $1, achieved = $2, status = $3, updated_at = now()
			WHERE id = $4 AND user_id = $5 AND deleted_at IS NULL
			RETURNING `+goalColumns+`;`,
		currentValue, achieved, string(status), goalID, userID,
	)

	goal, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, fmt.Errorf("update goal progress: %w", err)
	}
	return goal, nil
}

func scanGoal(row pgx.Row) (*Goal, error) {
	var g Goal
	var status string
	var targetDate *time.Time
	if err := row.Scan(
		&g.ID, &g.UserID, &g.Title, &g.Description, &g.Unit,
		&g.InitialValue, &g.CurrentValue, &g.TargetValue, &targetDate,
		&g.Achieved, &status, &g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}

	g.Status = Status(status)
	if !g.Status.IsValid() {
		return nil, fmt.Errorf("unknown goal status: %q", status)
	}
	g.TargetDate = targetDate

	return &g, nil
}
