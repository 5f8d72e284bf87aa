package chat

import (
	"time"

	"realtime-srv/internal/model"
	"realtime-srv/pkg/paginator"
)

type ListInput struct {
	RoomID        string
	Date          time.Time
	PaginateQuery paginator.PaginateQuery
}

type ListOutput struct {
	Messages  []model.ChatMessage
	Paginator paginator.Paginator
}
