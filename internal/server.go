package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/donRaoulo/bodyWare/internal/auth"
	authhandler "github.com/donRaoulo/bodyWare/internal/auth/handler"
	"github.com/donRaoulo/bodyWare/internal/config"
	"github.com/donRaoulo/bodyWare/internal/db"
	"github.com/donRaoulo/bodyWare/internal/fitness/exercises"
	"github.com/donRaoulo/bodyWare/internal/fitness/export"
	"github.com/donRaoulo/bodyWare/internal/fitness/measurements"
	"github.com/donRaoulo/bodyWare/internal/fitness/sessions"
	"github.com/donRaoulo/bodyWare/internal/fitness/settings"
	"github.com/donRaoulo/bodyWare/internal/fitness/stats"
	"github.com/donRaoulo/bodyWare/internal/fitness/templates"
	"github.com/donRaoulo/bodyWare/internal/middleware"
	"github.com/donRaoulo/bodyWare/internal/telemetry/metrics"
	"github.com/donRaoulo/bodyWare/internal/telemetry/tracing"
	"github.com/donRaoulo/bodyWare/pkg"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config
	dbPool *pgxpool.Pool

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// telemetry
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBUser:         params.Config.PostgresUser,
		DBPassword:     params.PostgresPassword,
		MaxConns:       params.Config.PostgresPoolMaxConns,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("bodyware", "backend", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewService(auth.NewUsersRepo(dbPool), auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "bodyware-backend")
	if err != nil {
		return nil, err
	}

	if err := exercises.NewRepo(dbPool).SeedDefaults(ctx); err != nil {
		return nil, fmt.Errorf("seed default exercises: %w", err)
	}

	return &Server{
		config:      params.Config,
		dbPool:      dbPool,
		versionInfo: params.VersionInfo,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("bodyware-router"))

	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, "bodyware backend")
	}).Methods("GET").Name("root")
	r.HandleFunc("/version", func(w http.ResponseWriter, _ *http.Request) {
		pkg.WriteTextResponseOK(w, s.versionInfo)
	}).Methods("GET").Name("version")

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	authHandler := authhandler.NewHandler(s.authService, s.metricsManager)
	authHandler.SetupRoutes(r, reqRateLimiter, s.config.AuthRateLimitAllowedPerMin)

	api := r.PathPrefix("/api").Subrouter()

	exercisesRepo := exercises.NewRepo(s.dbPool)
	exercisesHandler := exercises.NewHandler(exercisesRepo)
	api.HandleFunc("/exercises", exercisesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-exercises")
	api.HandleFunc("/exercises", exercisesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-exercise")
	api.HandleFunc("/exercises/{id}/goal", exercisesHandler.HandleUpdateGoal).Methods("PUT", "OPTIONS").Name("update-exercise-goal")

	templatesRepo := templates.NewRepo(s.dbPool)
	templatesHandler := templates.NewHandler(templatesRepo, exercisesRepo)
	api.HandleFunc("/templates", templatesHandler.HandleList).Methods("GET", "OPTIONS").Name("list-templates")
	api.HandleFunc("/templates", templatesHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-template")
	api.HandleFunc("/templates/{id}", templatesHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-template")
	api.HandleFunc("/templates/{id}", templatesHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-template")
	api.HandleFunc("/templates/{id}", templatesHandler.HandleArchive).Methods("DELETE", "OPTIONS").Name("archive-template")

	sessionsRepo := sessions.NewRepo(s.dbPool)
	sessionsService := sessions.NewService(sessionsRepo, exercisesRepo, templatesRepo)
	sessionsHandler := sessions.NewHandler(sessionsService, s.metricsManager)
	api.HandleFunc("/sessions", sessionsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sessions")
	api.HandleFunc("/sessions", sessionsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-session")
	api.HandleFunc("/sessions/{id}", sessionsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-session")
	api.HandleFunc("/sessions/{id}", sessionsHandler.HandleEdit).Methods("PUT", "OPTIONS").Name("edit-session")
	api.HandleFunc("/sessions/{id}", sessionsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-session")

	statsHandler := stats.NewHandler(stats.NewAnalyzer(sessionsRepo, exercisesRepo))
	api.HandleFunc("/stats", statsHandler.HandleOverview).Methods("GET", "OPTIONS").Name("stats-overview")
	api.HandleFunc("/stats/prs", statsHandler.HandlePersonalRecords).Methods("GET", "OPTIONS").Name("stats-prs")
	api.HandleFunc("/stats/counters", statsHandler.HandleCounterProgress).Methods("GET", "OPTIONS").Name("stats-counters")

	measurementsRepo := measurements.NewRepo(s.dbPool)
	measurementsHandler := measurements.NewHandler(measurementsRepo, s.metricsManager)
	api.HandleFunc("/measurements", measurementsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-measurements")
	api.HandleFunc("/measurements", measurementsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-measurement")
	api.HandleFunc("/measurements/{id}", measurementsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-measurement")

	exportHandler := export.NewHandler(measurementsRepo, sessionsRepo)
	api.HandleFunc("/export/measurements", exportHandler.HandleMeasurementsCSV).Methods("GET", "OPTIONS").Name("export-measurements")
	api.HandleFunc("/export/workouts", exportHandler.HandleWorkoutsCSV).Methods("GET", "OPTIONS").Name("export-workouts")

	settingsHandler := settings.NewHandler(settings.NewRepo(s.dbPool))
	api.HandleFunc("/settings", settingsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-settings")
	api.HandleFunc("/settings", settingsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-settings")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.loginChecker)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(_ context.Context, host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(
		s.promRegistry,
		promhttp.HandlerOpts{},
	))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
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

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
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
