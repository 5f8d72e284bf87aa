package notification

import (
	"realtime-srv/internal/model"
	"realtime-srv/pkg/paginator"
)

// CreateInput describes a new notification. An empty CitizenID with IsGlobal
// set stores a notification visible to everyone.
type CreateInput struct {
	CitizenID string
	IsGlobal  bool
	Header    string
	Content   string
	Type      string
	Icon      string
}

// UpdateInput carries the fields an admin edits. Nil fields are left as they are.
type UpdateInput struct {
	Header   *string
	Content  *string
	Type     *string
	Icon     *string
	IsGlobal *bool
}

type Filter struct {
	CitizenID string
	IsGlobal  *bool
	Unread    bool
}

type GetInput struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

type GetOutput struct {
	Notifications []model.Notification
	Paginator     paginator.Paginator
}
