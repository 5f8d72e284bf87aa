package http

import (
	"github.com/gin-gonic/gin"

	"realtime-srv/internal/middleware"
)

// RegisterWebSocketRoute registers the upgrade endpoint. Browsers cannot set
// headers on a websocket handshake, so it carries no auth middleware.
func (h Handler) RegisterWebSocketRoute(r gin.IRouter) {
	r.GET("/ws", h.HandleWebSocket)
}

// RegisterRoutes registers the administrative socket API.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	socket := r.Group("/socket")

	// Service-to-service
	socket.POST("/python-notification", mw.InternalKey(), h.Decision)

	admin := socket.Group("", mw.Auth(), mw.AdminOnly())
	{
		admin.POST("/notify-user", h.NotifyUser)
		admin.POST("/notify-citizen", h.NotifyCitizen)
		admin.POST("/broadcast", h.Broadcast)
		admin.POST("/loan-status", h.LoanStatus)
		admin.POST("/system-message", h.SystemMessage)
		admin.POST("/rooms/:roomId/events", h.RoomEvent)
		admin.GET("/stats", h.Stats)
		admin.GET("/connections/:socketId", h.Connection)
		admin.DELETE("/connections/:socketId", h.Disconnect)
	}
}
