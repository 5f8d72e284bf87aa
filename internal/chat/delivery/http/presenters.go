package http

import (
	"time"

	"realtime-srv/internal/chat"
	"realtime-srv/internal/model"
	"realtime-srv/pkg/paginator"
)

const dateLayout = "2006-01-02"

type listReq struct {
	Date string `form:"date"`
	paginator.PaginateQuery
}

func (r listReq) toInput(roomID string) (chat.ListInput, error) {
	ip := chat.ListInput{
		RoomID:        roomID,
		PaginateQuery: r.PaginateQuery,
	}
	if r.Date != "" {
		d, err := time.ParseInLocation(dateLayout, r.Date, time.UTC)
		if err != nil {
			return chat.ListInput{}, chat.ErrInvalidDate
		}
		ip.Date = d
	}
	return ip, nil
}

type listResp struct {
	Messages  []model.ChatMessage         `json:"messages"`
	Paginator paginator.PaginatorResponse `json:"paginator"`
}

func (h Handler) newListResp(o chat.ListOutput) listResp {
	msgs := o.Messages
	if msgs == nil {
		msgs = []model.ChatMessage{}
	}
	return listResp{
		Messages:  msgs,
		Paginator: o.Paginator.ToResponse(),
	}
}
