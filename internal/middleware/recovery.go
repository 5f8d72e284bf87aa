package middleware

import (
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
	"realtime-srv/pkg/response"
	"realtime-srv/pkg/scope"

	"github.com/gin-gonic/gin"
)

// Recovery answers a panicking handler with a 500 envelope. The Discord
// report only fires when d is configured.
func Recovery(l log.Logger, d discord.IDiscord) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}

			ctx := c.Request.Context()
			if sc, ok := scope.GetScopeFromContext(ctx); ok {
				ctx = log.WithFields(ctx, l, log.FieldUserID, sc.UserID)
			}
			l.Errorf(ctx, "internal.middleware.Recovery: %s %s: %v", c.Request.Method, c.FullPath(), rec)

			response.PanicError(c, rec, d)
			c.Abort()
		}()
		c.Next()
	}
}
