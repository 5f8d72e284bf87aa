package model

import "time"

const (
	MessageTypeText   = "text"
	MessageTypeSystem = "system"

	SystemUserID   = "system"
	SystemUsername = "System"
)

// ChatMessage is a finalized room message as delivered to clients.
type ChatMessage struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Username    string    `json:"username"`
	Message     string    `json:"message"`
	MessageType string    `json:"messageType"`
	Timestamp   time.Time `json:"timestamp"`
	RoomID      string    `json:"roomId"`
}
