package http

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"realtime-srv/internal/middleware"
	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
)

// WSConfig configures the websocket upgrade.
type WSConfig struct {
	ReadBufferSize  int
	WriteBufferSize int
	// AllowedOrigins is matched against the Origin header of browser clients.
	// Empty allows every origin.
	AllowedOrigins []string
}

type Handler struct {
	l         log.Logger
	uc        realtime.UseCase
	discord   discord.IDiscord
	upgrader  *websocket.Upgrader
	startedAt time.Time
}

func New(l log.Logger, uc realtime.UseCase, d discord.IDiscord, wsCfg WSConfig) Handler {
	return Handler{
		l:       l,
		uc:      uc,
		discord: d,
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  wsCfg.ReadBufferSize,
			WriteBufferSize: wsCfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(wsCfg.AllowedOrigins),
		},
		startedAt: time.Now(),
	}
}

// checkOrigin admits non-browser clients, which send no Origin header.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" || len(allowed) == 0 {
			return true
		}
		return middleware.IsOriginAllowed(origin, allowed)
	}
}
