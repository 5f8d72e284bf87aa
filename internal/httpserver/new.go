package httpserver

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"realtime-srv/config"
	"realtime-srv/internal/realtime"
	"realtime-srv/internal/realtime/delivery/redis"
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
	"realtime-srv/pkg/minio"
	pkgRedis "realtime-srv/pkg/redis"
	"realtime-srv/pkg/scope"
)

// HTTPServer represents the HTTP server with all dependencies.
// New() only wires dependencies and validates them.
// Run() (in httpserver.go) is responsible for starting background services and HTTP serving.
type HTTPServer struct {
	// Server configuration
	gin             *gin.Engine
	server          *http.Server
	l               log.Logger
	host            string
	port            int
	shutdownTimeout time.Duration
	allowedOrigins  []string
	startedAt       time.Time

	// Realtime core
	realtimeUC realtime.UseCase
	subscriber redis.Subscriber
	wsConfig   config.WebSocketConfig
	chatConfig config.ChatConfig
	metricsCfg config.MetricsConfig
	registry   *prometheus.Registry

	// Auth & security
	jwtManager      scope.Manager
	internalKeyHash string

	// External services
	redis         pkgRedis.IRedis
	postgresDB    *sql.DB
	minio         minio.MinIO
	archiveBucket string
	discord       discord.IDiscord
}

// Config is the constructor input for HTTPServer.
type Config struct {
	// Server configuration
	Host            string
	Port            int
	Mode            string
	ShutdownTimeout time.Duration
	AllowedOrigins  []string

	// Realtime configuration
	WebSocket config.WebSocketConfig
	Chat      config.ChatConfig
	Metrics   config.MetricsConfig

	// Auth & security
	JWTManager      scope.Manager
	InternalKeyHash string

	// Storage
	Redis      pkgRedis.IRedis
	PostgresDB *sql.DB
	// MinIO is optional. The chat archive is disabled without it.
	MinIO         minio.MinIO
	ArchiveBucket string

	// Discord is optional.
	Discord discord.IDiscord
}

// New creates a new HTTPServer instance with the provided configuration.
// Note: This does NOT start any goroutines. Use (*HTTPServer).Run() to start the service.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		gin:             gin.New(),
		l:               logger,
		host:            cfg.Host,
		port:            cfg.Port,
		shutdownTimeout: cfg.ShutdownTimeout,
		allowedOrigins:  cfg.AllowedOrigins,
		startedAt:       time.Now(),

		wsConfig:   cfg.WebSocket,
		chatConfig: cfg.Chat,
		metricsCfg: cfg.Metrics,
		registry:   prometheus.NewRegistry(),

		jwtManager:      cfg.JWTManager,
		internalKeyHash: cfg.InternalKeyHash,

		redis:         cfg.Redis,
		postgresDB:    cfg.PostgresDB,
		minio:         cfg.MinIO,
		archiveBucket: cfg.ArchiveBucket,
		discord:       cfg.Discord,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

// validate ensures all required dependencies are provided.
func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.jwtManager == nil {
		return errors.New("JWTManager is required")
	}
	if srv.redis == nil {
		return errors.New("Redis client is required")
	}
	if srv.postgresDB == nil {
		return errors.New("PostgresDB is required")
	}
	if srv.minio != nil && srv.archiveBucket == "" {
		return errors.New("archive bucket is required when MinIO is set")
	}
	if srv.shutdownTimeout <= 0 {
		srv.shutdownTimeout = 10 * time.Second
	}

	return nil
}
