package generation

import (
	"context"
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

const DefaultJobsListLimit = 20

const generationInProgressReason = "goal already has a plan generation in progress"

const jobColumns = `id, user_id, goal_id, status, request, plan_id, error_message,
	attempts, created_at, updated_at, started_at, finished_at`

// JobRepo stores generation jobs. Status changes are guarded by the expected
// current status, so a job is processed at most once to completion. A goal
// has at most one pending or processing job.
type JobRepo struct {
	db *pgxpool.Pool
}

func NewJobRepo(db *pgxpool.Pool) *JobRepo {
	return &JobRepo{
		db: db,
	}
}

func (r *JobRepo) Create(ctx context.Context, job *Job) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("job.id", job.ID.String()))

	err = r.db.QueryRow(
		ctx,
		`INSERT INTO generation_job (id, user_id, goal_id, status, request)
			VALUES ($1, $2, $3, 'pending', $4)
			RETURNING status, attempts, created_at, updated_at;`,
		job.ID, job.UserID, job.GoalID, []byte(job.Request),
	).Scan(&job.Status, &job.Attempts, &job.CreatedAt, &job.UpdatedAt)
	if pkg.IsUniqueViolationError(err) {
		return perrors.NewConflictError(generationInProgressReason, "", "")
	}
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// Get returns the job only if it belongs to the user.
func (r *JobRepo) Get(ctx context.Context, userID, jobID uuid.UUID) (_ *Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`SELECT `+jobColumns+` FROM generation_job WHERE id = $1 AND user_id = $2;`,
		jobID, userID,
	)
}

func (r *JobRepo) GetByID(ctx context.Context, jobID uuid.UUID) (_ *Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.getbyid")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx, `SELECT `+jobColumns+` FROM generation_job WHERE id = $1;`, jobID)
}

func (r *JobRepo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) (_ []*Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.listbyuser")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if limit <= 0 {
		limit = DefaultJobsListLimit
	}

	rows, err := r.db.Query(
		ctx,
		`SELECT `+jobColumns+` FROM generation_job
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []*Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("jobs rows: %w", err)
	}

	return jobs, nil
}

// MarkProcessing claims a pending job. ErrNotFound means it is not pending (anymore).
func (r *JobRepo) MarkProcessing(ctx context.Context, jobID uuid.UUID, now time.Time) (_ *Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.markprocessing")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return r.getOne(ctx,
		`UPDATE generation_job
			SET status = 'processing', attempts = attempts + 1, started_at = $1, updated_at = $1
			WHERE id = $2 AND status = 'pending'
			RETURNING `+jobColumns+`;`,
		now, jobID,
	)
}

func (r *JobRepo) MarkCompleted(ctx context.Context, jobID, planID uuid.UUID, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.markcompleted")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE generation_job
			SET status = 'completed', plan_id = $1, error_message = NULL, finished_at = $2, updated_at = $2
			WHERE id = $3 AND status = 'processing';`,
		planID, now, jobID,
	)
	if err != nil {
		return fmt.Errorf("complete job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

// MarkFailed fails a job that is not terminal yet.
func (r *JobRepo) MarkFailed(ctx context.Context, jobID uuid.UUID, message string, now time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.markfailed")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tag, err := r.db.Exec(
		ctx,
		`UPDATE generation_job
			SET status = 'failed', error_message = $1, finished_at = $2, updated_at = $2
			WHERE id = $3 AND status IN ('pending', 'processing');`,
		TruncateErrorMessage(message), now, jobID,
	)
	if err != nil {
		return fmt.Errorf("fail job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

// FailStale fails every job stuck in processing since before startedBefore.
func (r *JobRepo) FailStale(ctx context.Context, startedBefore time.Time, message string, now time.Time) (_ []uuid.UUID, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.jobs.failstale")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(
		ctx,
		`UPDATE generation_job
			SET status = 'failed', error_message = $1, finished_at = $2, updated_at = $2
			WHERE status = 'processing' AND started_at < $3
			RETURNING id;`,
		TruncateErrorMessage(message), now, startedBefore,
	)
	if err != nil {
		return nil, fmt.Errorf("fail stale jobs: %w", err)
	}

	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("collect stale jobs: %w", err)
	}
	span.SetAttributes(attribute.Int("jobs.failed", len(ids)))
	return ids, nil
}

func (r *JobRepo) getOne(ctx context.Context, query string, args ...any) (*Job, error) {
	job, err := scanJob(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, perrors.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

func scanJob(row pgx.Row) (*Job, error) {
	var j Job
	var status string
	var request []byte
	if err := row.Scan(
		&j.ID, &j.UserID, &j.GoalID, &status, &request, &j.PlanID, &j.ErrorMessage,
		&j.Attempts, &j.CreatedAt, &j.UpdatedAt, &j.StartedAt, &j.FinishedAt,
	); err != nil {
		return nil, err
	}

	j.Status = JobStatus(status)
	if !j.Status.IsValid() {
		return nil, fmt.Errorf("unknown job status: %q", status)
	}
	j.Request = request
	return &j, nil
}
