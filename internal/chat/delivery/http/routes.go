package http

import (
	"realtime-srv/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers the chat archive routes.
func (h Handler) RegisterRoutes(r *gin.RouterGroup, mw middleware.Middleware) {
	rooms := r.Group("/chat/rooms", mw.Auth())
	{
		rooms.GET("/:roomId/messages", h.ListMessages)
	}
}
