package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Registers the swagger document served under /swagger.
	_ "realtime-srv/docs"

	"realtime-srv/internal/alert"
	alertUsecase "realtime-srv/internal/alert/usecase"
	"realtime-srv/internal/chat"
	chatHTTP "realtime-srv/internal/chat/delivery/http"
	chatUsecase "realtime-srv/internal/chat/usecase"
	"realtime-srv/internal/middleware"
	notificationHTTP "realtime-srv/internal/notification/delivery/http"
	notificationRepo "realtime-srv/internal/notification/repository/postgre"
	notificationUsecase "realtime-srv/internal/notification/usecase"
	realtimeHTTP "realtime-srv/internal/realtime/delivery/http"
	realtimeRedis "realtime-srv/internal/realtime/delivery/redis"
	realtimeUsecase "realtime-srv/internal/realtime/usecase"
	"realtime-srv/pkg/encrypter"
)

const (
	Api = "/api/v1"
)

func (srv *HTTPServer) mapHandlers() error {
	srv.gin.Use(middleware.Recovery(srv.l, srv.discord))

	corsConfig := middleware.DefaultCORSConfig()
	if len(srv.allowedOrigins) > 0 {
		corsConfig.AllowedOrigins = srv.allowedOrigins
	}
	srv.gin.Use(middleware.CORS(corsConfig))

	// Notification store
	notifRepo := notificationRepo.New(srv.l, srv.postgresDB)
	notifUC := notificationUsecase.New(srv.l, notifRepo)

	// Chat archive
	var archiveUC chat.UseCase
	if srv.minio != nil {
		var enc encrypter.Encrypter
		if srv.chatConfig.ArchiveKey != "" {
			var err error
			if enc, err = encrypter.New(srv.chatConfig.ArchiveKey); err != nil {
				return err
			}
		}
		archiveUC = chatUsecase.New(srv.l, srv.minio, srv.archiveBucket, enc)
	}

	// Decision alerts
	var alertUC alert.UseCase
	if srv.discord != nil {
		alertUC = alertUsecase.New(srv.l, srv.discord)
	}

	// Realtime core
	srv.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	srv.realtimeUC = realtimeUsecase.New(srv.l, realtimeUsecase.Config{
		MaxConnections:   srv.wsConfig.MaxConnections,
		SendBufferSize:   srv.wsConfig.SendBufferSize,
		PingInterval:     srv.wsConfig.PingInterval,
		PongWait:         srv.wsConfig.PongWait,
		WriteWait:        srv.wsConfig.WriteWait,
		MaxMessageSize:   srv.wsConfig.MaxMessageSize,
		EventRate:        srv.wsConfig.EventRate,
		EventBurst:       srv.wsConfig.EventBurst,
		MaxMessageLength: srv.chatConfig.MaxMessageLength,
		ArchiveTimeout:   srv.chatConfig.ArchiveTimeout,
	}, realtimeUsecase.Deps{
		Notifications: notifUC,
		Archive:       archiveUC,
		Alert:         alertUC,
		Metrics:       realtimeUsecase.NewMetrics(srv.registry),
	})
	srv.subscriber = realtimeRedis.New(srv.redis, srv.realtimeUC, srv.l)

	// Health check endpoints (no auth required)
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	// Swagger UI
	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if srv.metricsCfg.Enabled {
		srv.gin.GET(srv.metricsCfg.Path, gin.WrapH(promhttp.HandlerFor(srv.registry, promhttp.HandlerOpts{})))
	}

	mw := middleware.New(srv.l, srv.jwtManager, srv.internalKeyHash)

	realtimeH := realtimeHTTP.New(srv.l, srv.realtimeUC, srv.discord, realtimeHTTP.WSConfig{
		ReadBufferSize:  srv.wsConfig.ReadBufferSize,
		WriteBufferSize: srv.wsConfig.WriteBufferSize,
		AllowedOrigins:  srv.allowedOrigins,
	})
	realtimeH.RegisterWebSocketRoute(srv.gin)

	api := srv.gin.Group(Api)
	realtimeH.RegisterRoutes(api, mw)
	notificationHTTP.New(srv.l, notifUC, srv.discord).RegisterRoutes(api, mw)
	if archiveUC != nil {
		chatHTTP.New(srv.l, archiveUC, srv.discord).RegisterRoutes(api, mw)
	}

	return nil
}
