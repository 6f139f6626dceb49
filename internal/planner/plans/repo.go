package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const planColumns = `p.id, p.user_id, p.goal_id, p.name, COALESCE(p.description, ''),
	p.weeks_duration, p.workouts_per_week, p.avg_workout_duration, p.status,
	p.started_at, p.completed_at, COALESCE(p.rationale, ''), COALESCE(p.progression_strategy, ''),
	COALESCE(p.key_considerations, '{}'), p.created_at, p.updated_at`

const sessionColumns = `s.id, s.plan_id, s.week_number, s.day_of_week, s.day_name, s.session_order,
	s.workout_name, s.workout_type, s.exercises, s.estimated_duration, s.intensity, s.status,
	s.completed_at, s.completed_workout_id, COALESCE(s.notes, ''), s.created_at, s.updated_at`

// Repo persists plans and their sessions. Every query is scoped to the owning
// user and skips soft-deleted rows.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Get(ctx context.Context, userID, planID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID.String()))

	return r.getOne(ctx,
		`SELECT `+planColumns+` FROM workout_plan p
			WHERE p.id = $1 AND p.user_id = $2 AND p.deleted_at IS NULL;`,
		planID, userID,
	)
}

func (r *Repo) List(ctx context.Context, userID uuid.UUID) (_ []*Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+planColumns+` FROM workout_plan p
			WHERE p.user_id = $1 AND p.deleted_at IS NULL
			ORDER BY p.created_at DESC;`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	var plans []*Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("plans rows: %w", err)
	}

	return plans, nil
}

// FindOpenForGoal returns the user's draft or active plan for the goal.
func (r *Repo) FindOpenForGoal(ctx context.Context, userID, goalID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.findopenforgoal")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`SELECT `+planColumns+` FROM workout_plan p
			WHERE p.user_id = $1 AND p.goal_id = $2 AND p.deleted_at IS NULL
				AND p.status IN ('draft', 'active')
			ORDER BY p.created_at DESC
			LIMIT 1;`,
		userID, goalID,
	)
}

// FindCurrent returns the plan the user is following: the active one, else the newest draft.
func (r *Repo) FindCurrent(ctx context.Context, userID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.findcurrent")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`SELECT `+planColumns+` FROM workout_plan p
			WHERE p.user_id = $1 AND p.deleted_at IS NULL AND p.status IN ('draft', 'active')
			ORDER BY (p.status = 'active') DESC, p.created_at DESC
			LIMIT 1;`,
		userID,
	)
}

func (r *Repo) FindActive(ctx context.Context, userID uuid.UUID) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.findactive")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`SELECT `+planColumns+` FROM workout_plan p
			WHERE p.user_id = $1 AND p.deleted_at IS NULL AND p.status = 'active'
			LIMIT 1;`,
		userID,
	)
}

// TransitionStatus moves the plan from one status to another only if it is still in
// the expected status. ErrNotFound means no row matched. A unique violation (another
// active plan) comes back as perrors.ErrConflict.
func (r *Repo) TransitionStatus(ctx context.Context, userID, planID uuid.UUID, from, to PlanStatus, now time.Time) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.transition")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("plan.id", planID.String()),
		attribute.String("plan.from", string(from)),
		attribute.String("plan.to", string(to)),
	)

	plan, err := r.getOne(ctx,
		`UPDATE workout_plan p SET
				status = $1,
				started_at = CASE WHEN $1 = 'active' THEN COALESCE(p.started_at, $2) ELSE p.started_at END,
				completed_at = CASE WHEN $1 = 'completed' THEN $2 ELSE p.completed_at END,
				updated_at = $2
			WHERE p.id = $3 AND p.user_id = $4 AND p.status = $5 AND p.deleted_at IS NULL
			RETURNING `+planColumns+`;`,
		string(to), now, planID, userID, string(from),
	)
	if pkg.IsUniqueViolationError(err) {
		return nil, fmt.Errorf("transition plan, constraint %s: %w", pkg.ViolatedConstraint(err), perrors.ErrConflict)
	}
	return plan, err
}

func (r *Repo) UpdateDetails(ctx context.Context, userID, planID uuid.UUID, patch PlanPatch, now time.Time) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.updatedetails")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`UPDATE workout_plan p SET
				name = COALESCE($1, p.name),
				description = COALESCE($2, p.description),
				updated_at = $3
			WHERE p.id = $4 AND p.user_id = $5 AND p.deleted_at IS NULL
			RETURNING `+planColumns+`;`,
		patch.Name, patch.Description, now, planID, userID,
	)
}

// SoftDelete marks the plan deleted and archives it, which also frees the open plan slot of its goal.
func (r *Repo) SoftDelete(ctx context.Context, userID, planID uuid.UUID, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.softdelete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID.String()))

	tag, err := r.db.Exec(
		ctx,
		`UPDATE workout_plan SET deleted_at = $1, status = 'archived', updated_at = $1
			WHERE id = $2 AND user_id = $3 AND deleted_at IS NULL;`,
		now, planID, userID,
	)
	if err != nil {
		return fmt.Errorf("soft delete plan: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

// CreateWithSessions inserts a draft plan and all of its sessions in one transaction.
// If the goal already has an open plan, a *perrors.ConflictError naming it is returned.
func (r *Repo) CreateWithSessions(ctx context.Context, plan *Plan, sessions []Session) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.Int("sessions.count", len(sessions)))

	created, err := r.createWithSessions(ctx, plan, sessions)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, r.openPlanConflict(ctx, plan.UserID, plan.GoalID)
		}
		// the goal was removed after generation started
		if pkg.IsForeignKeyViolationError(err) {
			return nil, fmt.Errorf("goal %s: %w", plan.GoalID, perrors.ErrNotFound)
		}
		return nil, err
	}
	return created, nil
}

func (r *Repo) createWithSessions(ctx context.Context, plan *Plan, sessions []Session) (_ *Plan, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	created, err := scanPlan(tx.QueryRow(
		ctx,
		`INSERT INTO workout_plan AS p
				(id, user_id, goal_id, name, description, weeks_duration, workouts_per_week,
				 avg_workout_duration, status, rationale, progression_strategy, key_considerations)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'draft', $9, $10, $11)
			RETURNING `+planColumns+`;`,
		plan.ID, plan.UserID, plan.GoalID, plan.Name, plan.Description, plan.WeeksDuration, plan.WorkoutsPerWeek,
		plan.AvgWorkoutDuration, plan.Rationale, plan.ProgressionStrategy, plan.KeyConsiderations,
	))
	if err != nil {
		return nil, fmt.Errorf("insert plan: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range sessions {
		s := &sessions[i]
		exercisesJson, err := json.Marshal(s.Exercises)
		if err != nil {
			return nil, fmt.Errorf("marshal exercises: %w", err)
		}
		batch.Queue(
			`INSERT INTO workout_plan_session
					(id, plan_id, week_number, day_of_week, day_name, session_order, workout_name,
					 workout_type, exercises, estimated_duration, intensity, status, notes)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 'scheduled', $12);`,
			s.ID, created.ID, s.WeekNumber, s.DayOfWeek, s.DayName, s.SessionOrder, s.WorkoutName,
			s.WorkoutType, exercisesJson, s.EstimatedDuration, string(s.Intensity), s.Notes,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert sessions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return created, nil
}

func (r *Repo) openPlanConflict(ctx context.Context, userID, goalID uuid.UUID) error {
	existing, err := r.FindOpenForGoal(ctx, userID, goalID)
	if err != nil {
		return perrors.NewConflictError("goal already has an active or draft plan", "", "")
	}
	return perrors.NewConflictError("goal already has an active or draft plan", existing.ID.String(), existing.Name)
}

// ListSessions returns the plan's sessions ordered by week, day and order. week <= 0 returns all weeks.
func (r *Repo) ListSessions(ctx context.Context, planID uuid.UUID, week int) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.listsessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("plan.id", planID.String()), attribute.Int("week", week))

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+` FROM workout_plan_session s
			WHERE s.plan_id = $1 AND s.deleted_at IS NULL AND ($2 <= 0 OR s.week_number = $2)
			ORDER BY s.week_number, s.day_of_week, s.session_order;`,
		planID, week,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, *session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sessions rows: %w", err)
	}

	return sessions, nil
}

// GetSession returns a session whose parent plan belongs to the user, with the plan's duration.
func (r *Repo) GetSession(ctx context.Context, userID, sessionID uuid.UUID) (_ *Session, weeksDuration int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.getsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`SELECT `+sessionColumns+`, p.weeks_duration
			FROM workout_plan_session s
			JOIN workout_plan p ON p.id = s.plan_id
			WHERE s.id = $1 AND p.user_id = $2 AND s.deleted_at IS NULL AND p.deleted_at IS NULL;`,
		sessionID, userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("get session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, 0, fmt.Errorf("get session: %w", err)
		}
		return nil, 0, perrors.ErrNotFound
	}

	session, err := scanSession(rows, &weeksDuration)
	if err != nil {
		return nil, 0, fmt.Errorf("scan session: %w", err)
	}
	return session, weeksDuration, nil
}

// CompleteSession marks a scheduled session of the user's plan completed.
// ErrNotFound means no scheduled owned session matched.
func (r *Repo) CompleteSession(ctx context.Context, userID, sessionID, workoutID uuid.UUID, notes *string, now time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.completesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.updateScheduledSession(ctx,
		`UPDATE workout_plan_session s SET
				status = 'completed', completed_at = $1, completed_workout_id = $2,
				notes = COALESCE($3, s.notes), updated_at = $1
			FROM workout_plan p
			WHERE s.id = $4 AND s.plan_id = p.id AND p.user_id = $5
				AND s.status = 'scheduled' AND s.deleted_at IS NULL AND p.deleted_at IS NULL
			RETURNING `+sessionColumns+`;`,
		now, workoutID, notes, sessionID, userID,
	)
}

func (r *Repo) SkipSession(ctx context.Context, userID, sessionID uuid.UUID, reason *string, now time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.skipsession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.updateScheduledSession(ctx,
		`UPDATE workout_plan_session s SET
				status = 'skipped', notes = COALESCE($1, s.notes), updated_at = $2
			FROM workout_plan p
			WHERE s.id = $3 AND s.plan_id = p.id AND p.user_id = $4
				AND s.status = 'scheduled' AND s.deleted_at IS NULL AND p.deleted_at IS NULL
			RETURNING `+sessionColumns+`;`,
		reason, now, sessionID, userID,
	)
}

func (r *Repo) UpdateSession(ctx context.Context, userID, sessionID uuid.UUID, patch SessionPatch, now time.Time) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.updatesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var dayName *string
	if patch.DayOfWeek != nil {
		name := DayName(*patch.DayOfWeek)
		dayName = &name
	}

	return r.updateScheduledSession(ctx,
		`UPDATE workout_plan_session s SET
				week_number = COALESCE($1, s.week_number),
				day_of_week = COALESCE($2, s.day_of_week),
				day_name = COALESCE($3, s.day_name),
				workout_name = COALESCE($4, s.workout_name),
				notes = COALESCE($5, s.notes),
				updated_at = $6
			FROM workout_plan p
			WHERE s.id = $7 AND s.plan_id = p.id AND p.user_id = $8
				AND s.status = 'scheduled' AND s.deleted_at IS NULL AND p.deleted_at IS NULL
			RETURNING `+sessionColumns+`;`,
		patch.WeekNumber, patch.DayOfWeek, dayName, patch.WorkoutName, patch.Notes, now, sessionID, userID,
	)
}

func (r *Repo) DeleteSession(ctx context.Context, userID, sessionID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.plans.deletesession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM workout_plan_session s
			USING workout_plan p
			WHERE s.id = $1 AND s.plan_id = p.id AND p.user_id = $2 AND p.deleted_at IS NULL;`,
		sessionID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

func (r *Repo) updateScheduledSession(ctx context.Context, query string, args ...any) (*Session, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("update session: %w", err)
		}
		return nil, perrors.ErrNotFound
	}

	session, err := scanSession(rows)
	if err != nil {
		return nil, fmt.Errorf("scan session: %w", err)
	}
	return session, nil
}

func (r *Repo) getOne(ctx context.Context, query string, args ...any) (*Plan, error) {
	plan, err := scanPlan(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, err
	}
	return plan, nil
}

func scanPlan(row pgx.Row) (*Plan, error) {
	var p Plan
	var status string
	if err := row.Scan(
		&p.ID, &p.UserID, &p.GoalID, &p.Name, &p.Description,
		&p.WeeksDuration, &p.WorkoutsPerWeek, &p.AvgWorkoutDuration, &status,
		&p.StartedAt, &p.CompletedAt, &p.Rationale, &p.ProgressionStrategy,
		&p.KeyConsiderations, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.Status = PlanStatus(status)
	if !p.Status.IsValid() {
		return nil, fmt.Errorf("unknown plan status: %q", status)
	}
	return &p, nil
}

func scanSession(row pgx.Row, extra ...any) (*Session, error) {
	var s Session
	var status, intensity string
	dest := []any{
		&s.ID, &s.PlanID, &s.WeekNumber, &s.DayOfWeek, &s.DayName, &s.SessionOrder,
		&s.WorkoutName, &s.WorkoutType, &s.Exercises, &s.EstimatedDuration, &intensity, &status,
		&s.CompletedAt, &s.CompletedWorkoutID, &s.Notes, &s.CreatedAt, &s.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}

	s.Status = SessionStatus(status)
	if !s.Status.IsValid() {
		return nil, fmt.Errorf("unknown session status: %q", status)
	}
	s.Intensity = ParseIntensity(intensity)
	if s.Exercises == nil {
		s.Exercises = []Exercise{}
	}
	return &s, nil
}
