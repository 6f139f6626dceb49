package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.uber.org/multierr"

	"github.com/2beens/fitplan/internal/auth"
	"github.com/2beens/fitplan/internal/config"
	"github.com/2beens/fitplan/internal/db"
	"github.com/2beens/fitplan/internal/middleware"
	"github.com/2beens/fitplan/internal/planner/generation"
	"github.com/2beens/fitplan/internal/planner/goals"
	"github.com/2beens/fitplan/internal/planner/history"
	"github.com/2beens/fitplan/internal/planner/perrors"
	"github.com/2beens/fitplan/internal/planner/plans"
	"github.com/2beens/fitplan/internal/telemetry/metrics"
	"github.com/2beens/fitplan/internal/telemetry/tracing"
	"github.com/2beens/fitplan/pkg"
)

const (
	sessionsCleanupInterval = 8 * time.Hour
	shutdownTimeout         = 15 * time.Second

	// plan patches and generation constraints are small
	maxRequestBodyBytes = 1 << 20
)

type pingFunc func(ctx context.Context) error

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config      *config.Config
	dbPool      *pgxpool.Pool
	redisClient *redis.Client

	authService    *auth.Service
	sessionChecker auth.Checker
	rateLimiter    middleware.RequestRateLimiter
	healthChecks   map[string]pingFunc

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	PostgresPassword        string
	HoneycombTracingEnabled bool
	EnsureSchema            bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	if params.EnsureSchema {
		if err := db.EnsureSchema(ctx, dbPool); err != nil {
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Debugln("db schema ensured")
	}

	promRegistry := metrics.SetupPrometheus(db.PoolStatsCollector(dbPool, cfg.PostgresDBName))
	metricsManager := metrics.NewManager("fitplan", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "fitplan-backend", rdb)
	if err != nil {
		return nil, err
	}

	authService := auth.NewService(cfg.SessionTTL, rdb)
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(ctx)
			}
		}
	}()

	return &Server{
		config:         cfg,
		versionInfo:    params.VersionInfo,
		dbPool:         dbPool,
		redisClient:    rdb,
		authService:    authService,
		sessionChecker: auth.NewSessionChecker(cfg.SessionTTL, rdb),
		rateLimiter:    redis_rate.NewLimiter(rdb),
		healthChecks: map[string]pingFunc{
			"postgres": dbPool.Ping,
			"redis": func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			},
		},
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("fitplan-router"))

	r.HandleFunc("/", s.handleRoot).Methods("GET").Name("root")
	r.HandleFunc("/health", s.handleHealth).Methods("GET").Name("health")
	r.HandleFunc("/version", s.handleVersion).Methods("GET").Name("version")
	r.HandleFunc("/auth/logout", s.handleLogout).Methods("POST", "OPTIONS").Name("logout")

	historyRepo := history.NewRepo(s.dbPool)
	goalsService := goals.NewService(
		goals.NewRepo(s.dbPool),
		historyRepo,
		s.config.WorkoutsHistoryLimit,
	).WithSyncedCounter(s.metricsManager.CounterGoalsSynced)
	goals.NewHandler(goalsService).SetupRoutes(r)

	plansRepo := plans.NewRepo(s.dbPool)
	plansService := plans.NewService(plansRepo, historyRepo, goalsService)

	// the api only prechecks and queues jobs; proposals are made in the plan worker
	jobsManager := generation.NewManager(generation.ManagerParams{
		Jobs:        generation.NewJobRepo(s.dbPool),
		Queue:       generation.NewQueue(s.redisClient),
		RateLimiter: s.rateLimiter,
		RatePerHour: s.config.GenerationRatePerHour,
		Timeout:     s.config.GenerationTimeout,
		ReaperGrace: s.config.ReaperGrace,
		Generator: generation.NewGenerator(
			goalsService,
			plansRepo,
			historyRepo,
			nil,
			s.config.WorkoutsHistoryLimit,
		),
		Metrics: s.metricsManager,
	})
	generation.NewHandler(jobsManager).SetupRoutes(r)
	plans.NewHandler(plansService).SetupRoutes(r)

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.sessionChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(s.config.AllowedOrigins))
	r.Use(middleware.RateLimit(s.rateLimiter, "fitplan-router", s.config.RequestsPerMinute, s.metricsManager))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest(maxRequestBodyBytes))

	return r
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteTextResponseOK(w, "fitplan")
}

func (s *Server) handleVersion(w http.ResponseWriter, _ *http.Request) {
	pkg.WriteJSON(w, http.StatusOK, map[string]string{"version": s.versionInfo})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	healthy := true
	status := make(map[string]string, len(s.healthChecks))
	for name, ping := range s.healthChecks {
		if err := ping(ctx); err != nil {
			log.Errorf("health check [%s]: %s", name, err)
			status[name] = "down"
			healthy = false
			continue
		}
		status[name] = "ok"
	}

	statusCode := http.StatusOK
	if !healthy {
		statusCode = http.StatusServiceUnavailable
	}
	pkg.WriteJSON(w, statusCode, status)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := middleware.RequestToken(r)
	if token == "" {
		perrors.WriteHTTPError(w, perrors.ErrUnauthenticated)
		return
	}

	removed, err := s.authService.Revoke(r.Context(), token)
	if err != nil {
		log.Errorf("logout: %s", err)
		perrors.WriteHTTPError(w, err)
		return
	}
	if !removed {
		perrors.WriteHTTPError(w, perrors.ErrUnauthenticated)
		return
	}

	pkg.WriteNoContent(w)
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	s.metricsHttpServer = metrics.NewMetricsServer(host, s.config.MetricsPort, s.promRegistry)

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	metrics.ListenAndServe(s.metricsHttpServer, "api")

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops both http servers and closes redis and the db pool.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")
	s.metricsManager.GaugeLifeSignal.Set(0)

	ctx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		} else {
			log.Warnln("server shut down")
		}
	}
	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics server: %w", shutdownErr))
		} else {
			log.Warnln("metrics server shut down")
		}
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
