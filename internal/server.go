package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/treinalab/treinalab/internal/auth"
	"github.com/treinalab/treinalab/internal/config"
	"github.com/treinalab/treinalab/internal/middleware"
	"github.com/treinalab/treinalab/internal/mockdb"
	"github.com/treinalab/treinalab/internal/session"
	"github.com/treinalab/treinalab/internal/storage"
	"github.com/treinalab/treinalab/internal/telemetry/metrics"
	"github.com/treinalab/treinalab/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config *config.Config

	kvStore      storage.KeyValue
	redisClient  *redis.Client
	sessionStore *session.Store
	mockStore    *mockdb.Store
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
}

type NewServerParams struct {
	Config        *config.Config
	RedisPassword string
	VersionInfo   string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	var rdb *redis.Client
	if cfg.RedisHost != "" {
		rdb = redis.NewClient(&redis.Options{
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
	}

	kvStore, err := newKeyValueStore(cfg, rdb)
	if err != nil {
		return nil, fmt.Errorf("new key value store [%s]: %w", cfg.Storage, err)
	}

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("treinalab", "main", promRegistry)

	sessionStore := session.NewStore(kvStore)
	mockStore := mockdb.NewStore(kvStore, sessionStore, mockdb.Options{
		Latency:                   time.Duration(cfg.MockLatencyMs) * time.Millisecond,
		EnforceWriteAuthorization: cfg.EnforceWriteAuthorization,
	})
	authService := auth.NewService(mockStore, sessionStore, auth.Options{})

	return &Server{
		config:       cfg,
		versionInfo:  params.VersionInfo,
		kvStore:      kvStore,
		redisClient:  rdb,
		sessionStore: sessionStore,
		mockStore:    mockStore,
		authService:  authService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
	}, nil
}

func newKeyValueStore(cfg *config.Config, rdb *redis.Client) (storage.KeyValue, error) {
	switch cfg.Storage {
	case "", "memory":
		return storage.NewMemoryStore(), nil
	case "file":
		return storage.NewFileStore(cfg.StorageDir)
	case "sqlite":
		return storage.NewSqliteStore(cfg.SqlitePath)
	case "redis":
		if rdb == nil {
			return nil, errors.New("redis storage selected but redis host not set")
		}
		return storage.NewRedisStore(rdb), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()

	dbHandler := mockdb.NewHandler(s.mockStore, s.metricsManager)
	r.HandleFunc("/db/{table}/query", dbHandler.HandleQuery).Methods("POST", "OPTIONS").Name("db-query")
	r.HandleFunc("/db/{table}/rows", dbHandler.HandleInsert).Methods("POST", "OPTIONS").Name("db-insert")
	r.HandleFunc("/db/{table}/rows", dbHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("db-update")
	r.HandleFunc("/db/{table}/rows", dbHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("db-delete")
	r.HandleFunc("/admin/reset", dbHandler.HandleReset).Methods("POST", "OPTIONS").Name("db-reset")

	authHandler := auth.NewHandler(s.authService, s.metricsManager)
	var signInHandler http.Handler = http.HandlerFunc(authHandler.HandleSignIn)
	if s.redisClient != nil && s.config.SignInRatePerMin > 0 {
		signInHandler = middleware.RateLimit(
			redis_rate.NewLimiter(s.redisClient),
			s.metricsManager,
			"signin",
			s.config.SignInRatePerMin,
		)(signInHandler)
	}
	r.Handle("/auth/signin", signInHandler).Methods("POST", "OPTIONS").Name("signin")
	r.HandleFunc("/auth/session", authHandler.HandleGetSession).Methods("GET", "OPTIONS").Name("get-session")
	r.HandleFunc("/auth/signout", authHandler.HandleSignOut).Methods("POST", "OPTIONS").Name("signout")

	r.HandleFunc("/version", func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteResponse(w, "text/plain", s.versionInfo)
	}).Methods("GET").Name("version")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "DELETE", "OPTIONS").Name("unknown")

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())

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
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.kvStore != nil {
		if err := s.kvStore.Close(); err != nil {
			log.Errorf("failed to close storage: %s", err)
		}
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
	}
	log.Warnln("server shut down")

	if s.metricsHttpServer != nil {
		if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed, http.StateHijacked:
		s.metricsManager.GaugeRequests.Add(-1)
	}
}
