package http

import (
	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/pkg/paginator"
	"realtime-srv/pkg/response"
)

type createReq struct {
	CitizenID string `json:"citizen_id"`
	IsGlobal  bool   `json:"is_global"`
	Header    string `json:"header" binding:"required"`
	Content   string `json:"content" binding:"required"`
	Type      string `json:"type" binding:"omitempty,oneof=success info warning error"`
	Icon      string `json:"icon"`
}

func (r createReq) validate() error {
	if !r.IsGlobal && r.CitizenID == "" {
		return notification.ErrFieldRequired
	}
	return nil
}

func (r createReq) toInput() notification.CreateInput {
	return notification.CreateInput{
		CitizenID: r.CitizenID,
		IsGlobal:  r.IsGlobal,
		Header:    r.Header,
		Content:   r.Content,
		Type:      r.Type,
		Icon:      r.Icon,
	}
}

type updateReq struct {
	Header   *string `json:"header"`
	Content  *string `json:"content"`
	Type     *string `json:"type" binding:"omitempty,oneof=success info warning error"`
	Icon     *string `json:"icon"`
	IsGlobal *bool   `json:"is_global"`
}

func (r updateReq) toInput() notification.UpdateInput {
	return notification.UpdateInput{
		Header:   r.Header,
		Content:  r.Content,
		Type:     r.Type,
		Icon:     r.Icon,
		IsGlobal: r.IsGlobal,
	}
}

type getReq struct {
	CitizenID string `form:"citizen_id"`
	IsGlobal  *bool  `form:"is_global"`
	Unread    bool   `form:"unread"`
	paginator.PaginateQuery
}

func (r getReq) toInput() notification.GetInput {
	return notification.GetInput{
		Filter: notification.Filter{
			CitizenID: r.CitizenID,
			IsGlobal:  r.IsGlobal,
			Unread:    r.Unread,
		},
		PaginateQuery: r.PaginateQuery,
	}
}

type notificationResp struct {
	ID        string            `json:"id"`
	CitizenID *string           `json:"citizen_id"`
	Header    string            `json:"header"`
	Content   string            `json:"content"`
	Type      string            `json:"type"`
	IsGlobal  bool              `json:"is_global"`
	IsRead    bool              `json:"is_read"`
	Icon      string            `json:"icon"`
	CreatedAt response.DateTime `json:"created_at"`
	UpdatedAt response.DateTime `json:"updated_at"`
}

func (h Handler) newNotificationResp(n model.Notification) notificationResp {
	return notificationResp{
		ID:        n.ID,
		CitizenID: n.CitizenID,
		Header:    n.Header,
		Content:   n.Content,
		Type:      n.Type,
		IsGlobal:  n.IsGlobal,
		IsRead:    n.IsRead,
		Icon:      n.Icon,
		CreatedAt: response.DateTime(n.CreatedAt),
		UpdatedAt: response.DateTime(n.UpdatedAt),
	}
}

type getResp struct {
	Notifications []notificationResp          `json:"notifications"`
	Paginator     paginator.PaginatorResponse `json:"paginator"`
}

func (h Handler) newGetResp(o notification.GetOutput) getResp {
	items := make([]notificationResp, len(o.Notifications))
	for i, n := range o.Notifications {
		items[i] = h.newNotificationResp(n)
	}
	return getResp{
		Notifications: items,
		Paginator:     o.Paginator.ToResponse(),
	}
}

type markAllReadResp struct {
	Updated int64 `json:"updated"`
}
