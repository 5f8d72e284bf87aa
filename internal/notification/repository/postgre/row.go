package postgres

import (
	"time"

	"github.com/aarondl/null/v8"

	"realtime-srv/internal/model"
)

const (
	tableNotifications = "notifications"

	columnID        = "id"
	columnCitizenID = "citizen_id"
	columnIsGlobal  = "is_global"
	columnIsRead    = "is_read"
	columnCreatedAt = "created_at"
)

// notificationRow maps a notifications row.
type notificationRow struct {
	ID        string      `boil:"id"`
	CitizenID null.String `boil:"citizen_id"`
	Header    string      `boil:"header"`
	Content   string      `boil:"content"`
	Type      string      `boil:"type"`
	IsGlobal  bool        `boil:"is_global"`
	IsRead    bool        `boil:"is_read"`
	Icon      string      `boil:"icon"`
	CreatedAt time.Time   `boil:"created_at"`
	UpdatedAt time.Time   `boil:"updated_at"`
}

func newRowFromModel(n model.Notification) notificationRow {
	row := notificationRow{
		ID:        n.ID,
		Header:    n.Header,
		Content:   n.Content,
		Type:      n.Type,
		IsGlobal:  n.IsGlobal,
		IsRead:    n.IsRead,
		Icon:      n.Icon,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
	if n.CitizenID != nil {
		row.CitizenID = null.StringFrom(*n.CitizenID)
	}
	return row
}

func (r notificationRow) toModel() model.Notification {
	n := model.Notification{
		ID:        r.ID,
		Header:    r.Header,
		Content:   r.Content,
		Type:      r.Type,
		IsGlobal:  r.IsGlobal,
		IsRead:    r.IsRead,
		Icon:      r.Icon,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.CitizenID.Valid {
		id := r.CitizenID.String
		n.CitizenID = &id
	}
	return n
}
