package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/planner/plans"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis_rate/v9"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=manager_mocks_test.go -package=generation_test

const (
	DefaultGenerationTimeout = 2 * time.Minute
	DefaultReaperGrace       = time.Minute

	statusCacheSize     = 10 * 1024 * 1024
	statusCacheExpire   = 10 * 60 // seconds
	rateLimitKeyPrefix  = "fit-gen-rate||"
	timedOutMessage     = "generation timed out"
	failedMessagePrefix = "failed to generate workout plan: "
)

var ErrGenerationTimeout = errors.New(timedOutMessage)

type jobsRepo interface {
	Create(ctx context.Context, job *Job) error
	Get(ctx context.Context, userID, jobID uuid.UUID) (*Job, error)
	GetByID(ctx context.Context, jobID uuid.UUID) (*Job, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*Job, error)
	MarkProcessing(ctx context.Context, jobID uuid.UUID, now time.Time) (*Job, error)
	MarkCompleted(ctx context.Context, jobID, planID uuid.UUID, now time.Time) error
	MarkFailed(ctx context.Context, jobID uuid.UUID, message string, now time.Time) error
	FailStale(ctx context.Context, startedBefore time.Time, message string, now time.Time) ([]uuid.UUID, error)
}

type jobQueue interface {
	Enqueue(ctx context.Context, jobID uuid.UUID) error
	Ack(ctx context.Context, jobID uuid.UUID) error
	InFlight(ctx context.Context) ([]uuid.UUID, error)
	Requeue(ctx context.Context, jobID uuid.UUID) error
	Len(ctx context.Context) (int64, error)
}

type planGenerator interface {
	Precheck(ctx context.Context, userID, goalID uuid.UUID) (*goals.Goal, error)
	Generate(ctx context.Context, userID uuid.UUID, c Constraints) (*plans.Plan, error)
}

type RateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

type ManagerParams struct {
	Jobs      jobsRepo
	Queue     jobQueue
	Generator planGenerator
	// RateLimiter is optional; nil or RatePerHour <= 0 disables the limit.
	RateLimiter RateLimiter
	RatePerHour int
	Timeout     time.Duration
	ReaperGrace time.Duration
	Metrics     *metrics.Manager
}

// Manager runs plan generation as asynchronous jobs.
type Manager struct {
	jobs        jobsRepo
	queue       jobQueue
	generator   planGenerator
	rateLimiter RateLimiter
	ratePerHour int
	timeout     time.Duration
	reaperGrace time.Duration
	metrics     *metrics.Manager
	statusCache *freecache.Cache
	now         func() time.Time
}

func NewManager(params ManagerParams) *Manager {
	if params.Timeout <= 0 {
		params.Timeout = DefaultGenerationTimeout
	}
	if params.ReaperGrace <= 0 {
		params.ReaperGrace = DefaultReaperGrace
	}
	if params.Metrics == nil {
		params.Metrics = metrics.NewTestManager()
	}

	return &Manager{
		jobs:        params.Jobs,
		queue:       params.Queue,
		generator:   params.Generator,
		rateLimiter: params.RateLimiter,
		ratePerHour: params.RatePerHour,
		timeout:     params.Timeout,
		reaperGrace: params.ReaperGrace,
		metrics:     params.Metrics,
		statusCache: freecache.NewCache(statusCacheSize),
		now:         time.Now,
	}
}

// CreateJob validates the request, checks the goal and its open plans, then
// records a pending job and queues it. Nothing is stored when any check fails.
func (m *Manager) CreateJob(ctx context.Context, userID uuid.UUID, c Constraints) (_ *Job, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "manager.jobs.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := c.Validate(m.now()); err != nil {
		return nil, err
	}
	c.Normalize()

	if err := m.checkRateLimit(ctx, userID); err != nil {
		return nil, err
	}

	if _, err := m.generator.Precheck(ctx, userID, c.GoalID); err != nil {
		return nil, err
	}

	request, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	job := &Job{
		ID:      uuid.New(),
		UserID:  userID,
		GoalID:  c.GoalID,
		Request: request,
	}
	if err := m.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	span.SetAttributes(attribute.String("job.id", job.ID.String()))

	if err := m.queue.Enqueue(ctx, job.ID); err != nil {
		if failErr := m.jobs.MarkFailed(context.WithoutCancel(ctx), job.ID, "could not schedule generation", m.now()); failErr != nil {
			log.Errorf("jobs: fail unqueued job [%s]: %s", job.ID, failErr)
		}
		return nil, fmt.Errorf("enqueue job: %w", err)
	}

	m.metrics.CounterJobsCreated.Inc()
	log.WithFields(log.Fields{
		"job_id":  job.ID,
		"user_id": userID,
		"goal_id": c.GoalID,
	}).Info("generation job created")

	return job, nil
}

func (m *Manager) checkRateLimit(ctx context.Context, userID uuid.UUID) error {
	if m.rateLimiter == nil || m.ratePerHour <= 0 {
		return nil
	}

	res, err := m.rateLimiter.Allow(ctx, rateLimitKeyPrefix+userID.String(), redis_rate.PerHour(m.ratePerHour))
	if err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}
	if res.Allowed > 0 {
		return nil
	}

	m.metrics.CounterRateLimitedRequests.Inc()
	return fmt.Errorf("retry after %s: %w", res.RetryAfter.Round(time.Second), perrors.ErrRateLimited)
}

// GetJobStatus returns the job as seen by its owner. Terminal statuses never
// change, so they are served from memory once seen.
func (m *Manager) GetJobStatus(ctx context.Context, userID, jobID uuid.UUID) (_ *JobStatusView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "manager.jobs.status")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	cacheKey := []byte(fmt.Sprintf("job::%s::%s", userID, jobID))
	if cached, err := m.statusCache.Get(cacheKey); err == nil {
		view := &JobStatusView{}
		if err := json.Unmarshal(cached, view); err == nil {
			span.SetAttributes(attribute.Bool("cache.hit", true))
			return view, nil
		}
		log.Errorf("jobs: unmarshal cached status of job [%s]: %s", jobID, err)
	}

	job, err := m.jobs.Get(ctx, userID, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	view := job.StatusView()
	if job.Status.IsTerminal() {
		if viewBytes, err := json.Marshal(view); err == nil {
			if err := m.statusCache.Set(cacheKey, viewBytes, statusCacheExpire); err != nil {
				log.Errorf("jobs: cache status of job [%s]: %s", jobID, err)
			}
		}
	}

	return view, nil
}

func (m *Manager) ListJobs(ctx context.Context, userID uuid.UUID, limit int) (_ []*JobStatusView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "manager.jobs.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	jobs, err := m.jobs.ListByUser(ctx, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}

	views := make([]*JobStatusView, 0, len(jobs))
	for _, j := range jobs {
		views = append(views, j.StatusView())
	}
	return views, nil
}

// Process runs one delivery of a job. A job that is no longer pending was
// already handled by another delivery and is skipped. Generation errors,
// timeouts and panics end the job as failed and are not returned; an error is
// returned only when the job state itself could not be stored.
func (m *Manager) Process(ctx context.Context, jobID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalWorkerTracer.Start(ctx, "manager.jobs.process")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("job.id", jobID.String()))

	job, err := m.jobs.MarkProcessing(ctx, jobID, m.now())
	if errors.Is(err, perrors.ErrNotFound) {
		log.Debugf("jobs: job [%s] is not pending, skipping", jobID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("mark processing: %w", err)
	}

	logger := log.WithFields(log.Fields{
		"job_id":  job.ID,
		"user_id": job.UserID,
		"attempt": job.Attempts,
	})
	logger.Info("generation started")

	start := time.Now()
	planID, genErr := m.generate(ctx, job)
	m.metrics.HistogramGenerationDuration.Observe(time.Since(start).Seconds())

	// terminal writes must land even when the worker is shutting down
	storeCtx := context.WithoutCancel(ctx)
	if genErr != nil {
		logger.Errorf("generation failed: %s", genErr)
		if err := m.jobs.MarkFailed(storeCtx, job.ID, failureMessage(genErr), m.now()); err != nil {
			return fmt.Errorf("mark failed: %w", err)
		}
		m.metrics.CounterJobsFinished.WithLabelValues(string(JobStatusFailed)).Inc()
		return nil
	}

	if err := m.jobs.MarkCompleted(storeCtx, job.ID, planID, m.now()); err != nil {
		return fmt.Errorf("mark completed: %w", err)
	}
	m.metrics.CounterJobsFinished.WithLabelValues(string(JobStatusCompleted)).Inc()
	logger.WithField("plan_id", planID).Info("generation completed")

	return nil
}

func (m *Manager) generate(ctx context.Context, job *Job) (planID uuid.UUID, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("jobs: generation of job [%s] panicked: %v", job.ID, r)
			err = fmt.Errorf("unexpected error: %v", r)
		}
	}()

	var c Constraints
	if err := json.Unmarshal(job.Request, &c); err != nil {
		return uuid.Nil, fmt.Errorf("decode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	plan, err := m.generator.Generate(ctx, job.UserID, c)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return uuid.Nil, ErrGenerationTimeout
		}
		return uuid.Nil, err
	}
	return plan.ID, nil
}

// failureMessage is the text shown to the user for a failed job.
func failureMessage(err error) string {
	var conflict *perrors.ConflictError
	switch {
	case errors.Is(err, ErrGenerationTimeout):
		return timedOutMessage
	case errors.As(err, &conflict):
		return conflict.Error()
	case errors.Is(err, perrors.ErrNotFound):
		return "goal not found"
	default:
		return TruncateErrorMessage(failedMessagePrefix + err.Error())
	}
}

// Reap fails jobs stuck in processing past the generation timeout plus grace,
// and resolves ids left in the processing list by dead workers: pending jobs
// are requeued, finished or unknown ones dropped.
func (m *Manager) Reap(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalWorkerTracer.Start(ctx, "manager.jobs.reap")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	now := m.now()
	staleIDs, err := m.jobs.FailStale(ctx, now.Add(-(m.timeout + m.reaperGrace)), timedOutMessage, now)
	if err != nil {
		return fmt.Errorf("fail stale jobs: %w", err)
	}
	if len(staleIDs) > 0 {
		log.Warnf("reaper: failed %d stale job(s)", len(staleIDs))
		m.metrics.CounterJobsReaped.Add(float64(len(staleIDs)))
		m.metrics.CounterJobsFinished.WithLabelValues(string(JobStatusFailed)).Add(float64(len(staleIDs)))
	}

	inFlight, err := m.queue.InFlight(ctx)
	if err != nil {
		return fmt.Errorf("list in flight: %w", err)
	}

	requeued := 0
	for _, jobID := range inFlight {
		job, err := m.jobs.GetByID(ctx, jobID)
		switch {
		case errors.Is(err, perrors.ErrNotFound):
			err = m.queue.Ack(ctx, jobID)
		case err != nil:
			log.Errorf("reaper: get job [%s]: %s", jobID, err)
			continue
		case job.Status.IsTerminal():
			err = m.queue.Ack(ctx, jobID)
		case job.Status == JobStatusPending && now.Sub(job.UpdatedAt) > m.reaperGrace:
			err = m.queue.Requeue(ctx, jobID)
			requeued++
		default:
			continue
		}
		if err != nil {
			log.Errorf("reaper: resolve in flight job [%s]: %s", jobID, err)
		}
	}
	if requeued > 0 {
		log.Infof("reaper: requeued %d job(s)", requeued)
	}

	if depth, err := m.queue.Len(ctx); err == nil {
		m.metrics.GaugeQueueDepth.Set(float64(depth))
	}

	return nil
}
