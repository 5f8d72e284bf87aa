package main

import (
	"context"
	"fmt"

	_ "go.uber.org/automaxprocs"

	"realtime-srv/config"
	configMinio "realtime-srv/config/minio"
	configPostgre "realtime-srv/config/postgre"
	configRedis "realtime-srv/config/redis"
	"realtime-srv/internal/httpserver"
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
	"realtime-srv/pkg/minio"
	"realtime-srv/pkg/scope"
)

//go:generate swag init -g cmd/api/main.go -d ../../ -o ../../docs

// @title       Realtime Service
// @description Real-time connection registry, room broadcast and notification API
// @version     1.0
// @host        localhost:8080
// @schemes     ws http
// @BasePath    /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Bearer token authentication. Format: "Bearer {token}"
//
// @securityDefinitions.apikey InternalKey
// @in header
// @name X-Internal-Key
// @description Shared key for service-to-service calls
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config:", err)
		return
	}

	// Initialize logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
		File: log.FileConfig{
			Path:       cfg.Logger.FilePath,
			MaxSizeMB:  cfg.Logger.MaxSizeMB,
			MaxBackups: cfg.Logger.MaxBackups,
			MaxAgeDays: cfg.Logger.MaxAgeDays,
			Compress:   cfg.Logger.Compress,
		},
	})

	ctx := context.Background()
	logger.Infof(ctx, "Starting realtime service (%s)...", cfg.Environment.Name)

	// Redis - Pub/Sub fan-in from other platform services
	redisClient, err := configRedis.Connect(ctx, cfg.Redis)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to Redis: %v", err)
		return
	}
	defer configRedis.Disconnect()
	logger.Infof(ctx, "Redis connected to %s:%d", cfg.Redis.Host, cfg.Redis.Port)

	// PostgreSQL - notification store
	postgresDB, err := configPostgre.Connect(ctx, cfg.Postgres)
	if err != nil {
		logger.Errorf(ctx, "Failed to connect to PostgreSQL: %v", err)
		return
	}
	defer configPostgre.Disconnect(ctx)
	logger.Infof(ctx, "PostgreSQL connected to %s:%d/%s", cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.DBName)

	// MinIO - chat archive (optional)
	var minioClient minio.MinIO
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = configMinio.Connect(ctx, cfg.MinIO)
		if err != nil {
			logger.Errorf(ctx, "Failed to connect to MinIO: %v", err)
			return
		}
		defer configMinio.Disconnect()
		logger.Infof(ctx, "MinIO connected to %s, bucket %s", cfg.MinIO.Endpoint, cfg.MinIO.Bucket)
	} else {
		logger.Warn(ctx, "MinIO endpoint not configured, chat archive disabled")
	}

	// Discord webhook (optional)
	var discordClient discord.IDiscord
	if cfg.Discord.WebhookID != "" && cfg.Discord.WebhookToken != "" {
		discordClient, err = discord.New(logger, cfg.Discord.WebhookID, cfg.Discord.WebhookToken)
		if err != nil {
			logger.Warnf(ctx, "Failed to initialize Discord webhook: %v", err)
			discordClient = nil
		} else {
			defer discordClient.Close()
			logger.Info(ctx, "Discord webhook initialized")
		}
	}

	// JWT Manager (verify admin bearer tokens)
	jwtManager := scope.New(cfg.JWT.SecretKey)

	srv, err := httpserver.New(logger, httpserver.Config{
		Host:            cfg.Server.Host,
		Port:            cfg.Server.Port,
		Mode:            cfg.Server.Mode,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		AllowedOrigins:  cfg.Server.AllowedOrigins,

		WebSocket: cfg.WebSocket,
		Chat:      cfg.Chat,
		Metrics:   cfg.Metrics,

		JWTManager:      jwtManager,
		InternalKeyHash: cfg.Internal.KeyHash,

		Redis:         redisClient,
		PostgresDB:    postgresDB,
		MinIO:         minioClient,
		ArchiveBucket: cfg.MinIO.Bucket,

		Discord: discordClient,
	})
	if err != nil {
		logger.Errorf(ctx, "Failed to initialize HTTP server: %v", err)
		return
	}

	if err := srv.Run(); err != nil {
		logger.Errorf(ctx, "Server stopped with error: %v", err)
	}
}
