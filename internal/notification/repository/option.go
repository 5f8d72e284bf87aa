package repository

import (
	"realtime-srv/internal/model"
	"realtime-srv/pkg/paginator"
)

// Filter contains filtering options for notification queries.
type Filter struct {
	CitizenID string
	// IncludeGlobal also matches global notifications when CitizenID is set.
	IncludeGlobal bool
	IsGlobal      *bool
	Unread        bool
}

// CreateOptions contains options for creating a notification.
type CreateOptions struct {
	Notification model.Notification
}

// GetOptions contains options for paginated notification listing.
type GetOptions struct {
	Filter        Filter
	PaginateQuery paginator.PaginateQuery
}

// MarkReadOptions marks one notification when ID is set, otherwise every
// unread notification of CitizenID.
type MarkReadOptions struct {
	ID        string
	CitizenID string
}

// UpdateOptions rewrites the non-nil fields of notification ID.
type UpdateOptions struct {
	ID       string
	Header   *string
	Content  *string
	Type     *string
	Icon     *string
	IsGlobal *bool
}
