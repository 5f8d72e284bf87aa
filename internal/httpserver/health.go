package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"realtime-srv/pkg/errors"
	"realtime-srv/pkg/response"
)

const (
	serviceName    = "realtime-srv"
	serviceVersion = "1.0.0"
	pingTimeout    = 2 * time.Second
)

// healthCheck handles health check requests
// @Summary Health Check
// @Description Check dependencies and report connection counts
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is healthy"
// @Failure 503 {object} map[string]interface{} "A dependency is down"
// @Router /health [get]
func (srv *HTTPServer) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := srv.pingDependencies(ctx); err != nil {
		srv.l.Warnf(ctx, "internal.httpserver.healthCheck: %v", err)
		response.HttpError(c, errors.NewUnavailableHTTPError(err.Error()))
		return
	}

	archive := "disabled"
	if srv.minio != nil {
		archive = "connected"
		if err := srv.minio.HealthCheck(ctx); err != nil {
			archive = "unavailable"
		}
	}

	p, err := srv.realtimeUC.GetPresence(ctx)
	if err != nil {
		response.HttpError(c, errors.NewUnavailableHTTPError("Realtime hub is not running"))
		return
	}

	response.OK(c, gin.H{
		"status":            "healthy",
		"version":           serviceVersion,
		"service":           serviceName,
		"uptime_seconds":    int64(time.Since(srv.startedAt).Seconds()),
		"total_connections": p.TotalConnections,
		"connected_users":   p.ConnectedCount,
		"active_rooms":      p.RoomCount,
		"redis":             "connected",
		"postgres":          "connected",
		"archive":           archive,
	})
}

// readyCheck handles readiness check requests
// @Summary Readiness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is ready"
// @Failure 503 {object} map[string]interface{} "Service is not ready"
// @Router /ready [get]
func (srv *HTTPServer) readyCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), pingTimeout)
	defer cancel()

	if err := srv.pingDependencies(ctx); err != nil {
		response.HttpError(c, errors.NewUnavailableHTTPError(err.Error()))
		return
	}

	response.OK(c, gin.H{
		"status":  "ready",
		"version": serviceVersion,
		"service": serviceName,
	})
}

// liveCheck handles liveness check requests
// @Summary Liveness Check
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{} "Service is alive"
// @Router /live [get]
func (srv *HTTPServer) liveCheck(c *gin.Context) {
	response.OK(c, gin.H{
		"status":  "alive",
		"version": serviceVersion,
		"service": serviceName,
	})
}

func (srv *HTTPServer) pingDependencies(ctx context.Context) error {
	if err := srv.redis.Ping(ctx); err != nil {
		return errRedisUnavailable
	}
	if err := srv.postgresDB.PingContext(ctx); err != nil {
		return errPostgresUnavailable
	}
	return nil
}
