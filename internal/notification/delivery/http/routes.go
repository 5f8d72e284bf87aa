package http

import (
	"realtime-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the notification routes.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	notifications := r.Group("/notifications", mw.Auth())
	{
		notifications.GET("", h.Get)
		notifications.POST("", mw.AdminOnly(), h.Create)
		notifications.POST("/read-all", h.MarkAllRead)
		notifications.GET("/:id", h.Detail)
		notifications.PATCH("/:id", mw.AdminOnly(), h.Update)
		notifications.PATCH("/:id/read", h.MarkRead)
		notifications.DELETE("/:id", h.Delete)
	}
}
