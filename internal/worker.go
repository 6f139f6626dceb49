package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"github.com/2beens/fitplan/internal/config"
	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/planner/generation"
	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/planner/plans"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
)

type NewPlanWorkerParams struct {
	Config                  *config.Config
	RedisPassword           string
	PostgresPassword        string
	OpenAIAPIKey            string
	HoneycombTracingEnabled bool
}

// PlanWorker processes queued generation jobs and reaps stale ones.
type PlanWorker struct {
	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	worker *generation.Worker
	reaper *generation.Reaper

	metricsManager    *metrics.Manager
	promRegistry      *prometheus.Registry
	metricsHttpServer *http.Server
	otelShutdown      func()
}

func NewPlanWorker(ctx context.Context, params NewPlanWorkerParams) (*PlanWorker, error) {
	cfg := params.Config
	if params.OpenAIAPIKey == "" {
		return nil, errors.New("openai api key not set")
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       int32(cfg.WorkerConcurrency + 2),
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}
	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := metrics.SetupPrometheus(db.PoolStatsCollector(dbPool, cfg.PostgresDBName))
	metricsManager := metrics.NewManager("fitplan", "plan_worker", promRegistry)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	}

	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitplan-plan-worker", rdb)
	if err != nil {
		return nil, err
	}

	historyRepo := history.NewRepo(dbPool)
	goalsService := goals.NewService(
		goals.NewRepo(dbPool),
		historyRepo,
		cfg.WorkoutsHistoryLimit,
	).WithSyncedCounter(metricsManager.CounterGoalsSynced)

	queue := generation.NewQueue(rdb)
	manager := generation.NewManager(generation.ManagerParams{
		Jobs:        generation.NewJobRepo(dbPool),
		Queue:       queue,
		RateLimiter: redis_rate.NewLimiter(rdb),
		RatePerHour: cfg.GenerationRatePerHour,
		Timeout:     cfg.GenerationTimeout,
		ReaperGrace: cfg.ReaperGrace,
		Generator: generation.NewGenerator(
			goalsService,
			plans.NewRepo(dbPool),
			historyRepo,
			generation.NewOpenAIProposer(params.OpenAIAPIKey, cfg.OpenAIModel, cfg.GenerationTimeout),
			cfg.WorkoutsHistoryLimit,
		),
		Metrics: metricsManager,
	})

	reaper, err := generation.NewReaper(manager.Reap, cfg.ReaperSchedule, time.Minute)
	if err != nil {
		return nil, fmt.Errorf("new reaper: %w", err)
	}

	return &PlanWorker{
		config:         cfg,
		dbPool:         dbPool,
		redisClient:    rdb,
		worker:         generation.NewWorker(manager, queue, cfg.WorkerConcurrency),
		reaper:         reaper,
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

// Run blocks until ctx is done and the in progress jobs have finished.
func (pw *PlanWorker) Run(ctx context.Context) error {
	pw.metricsHttpServer = metrics.NewMetricsServer(pw.config.Host, pw.config.MetricsPort, pw.promRegistry)
	metrics.ListenAndServe(pw.metricsHttpServer, "plan worker")

	pw.reaper.Start()
	defer pw.reaper.Stop()

	pw.metricsManager.GaugeLifeSignal.Set(1)
	defer pw.metricsManager.GaugeLifeSignal.Set(0)

	return pw.worker.Run(ctx)
}

func (pw *PlanWorker) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var err error
	if pw.metricsHttpServer != nil {
		err = multierr.Append(err, pw.metricsHttpServer.Shutdown(ctx))
	}

	pw.otelShutdown()

	err = multierr.Append(err, pw.redisClient.Close())
	pw.dbPool.Close()

	return err
}
