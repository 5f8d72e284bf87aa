package model

import "time"

const (
	NotificationTypeSuccess = "success"
	NotificationTypeInfo    = "info"
	NotificationTypeWarning = "warning"
	NotificationTypeError   = "error"
)

// Notification is a persisted notification record. CitizenID is nil for global notifications.
type Notification struct {
	ID        string    `json:"id"`
	CitizenID *string   `json:"citizen_id"`
	Header    string    `json:"header"`
	Content   string    `json:"content"`
	Type      string    `json:"type"`
	IsGlobal  bool      `json:"is_global"`
	IsRead    bool      `json:"is_read"`
	Icon      string    `json:"icon"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsValidNotificationType reports whether t is one of the known notification types.
func IsValidNotificationType(t string) bool {
	switch t {
	case NotificationTypeSuccess, NotificationTypeInfo, NotificationTypeWarning, NotificationTypeError:
		return true
	}
	return false
}
