package http

import (
	"realtime-srv/internal/notification"
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
)

type Handler struct {
	l       log.Logger
	uc      notification.UseCase
	discord discord.IDiscord
}

func New(l log.Logger, uc notification.UseCase, d discord.IDiscord) Handler {
	return Handler{
		l:       l,
		uc:      uc,
		discord: d,
	}
}
