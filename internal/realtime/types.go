package realtime

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// --- Inbound events ---
const (
	EventUserJoin         = "user_join"
	EventJoinRoom         = "join_room"
	EventLeaveRoom        = "leave_room"
	EventSendMessage      = "send_message"
	EventTypingStart      = "typing_start"
	EventTypingStop       = "typing_stop"
	EventLoanStatusUpdate = "loan_status_update"
)

// --- Outbound events ---
const (
	EventUserJoined            = "user_joined"
	EventUserJoinError         = "user_join_error"
	EventRoomJoined            = "room_joined"
	EventRoomJoinError         = "room_join_error"
	EventRoomLeft              = "room_left"
	EventRoomLeaveError        = "room_leave_error"
	EventUserJoinedRoom        = "user_joined_room"
	EventUserLeftRoom          = "user_left_room"
	EventNewMessage            = "new_message"
	EventMessageError          = "message_error"
	EventUserTypingStart       = "user_typing_start"
	EventUserTypingStop        = "user_typing_stop"
	EventLoanNotification      = "loan_notification"
	EventLoanStatusError       = "loan_status_error"
	EventUserStatusUpdate      = "user_status_update"
	EventNotification          = "notification"
	EventBroadcastNotification = "broadcast_notification"
	EventError                 = "error"
)

const (
	StatusOnline  = "online"
	StatusOffline = "offline"

	NotificationTypeLoanStatus  = "loan_status_update"
	NotificationTypeMASDecision = "mas_decision"
	SourcePythonService         = "python_service"
)

// privateRoomPrefix names the per-user room every identified connection joins.
const privateRoomPrefix = "user_"

// PrivateRoom returns the per-user room of userID.
func PrivateRoom(userID string) string {
	return privateRoomPrefix + userID
}

// IsPrivateRoom reports whether room is reserved for a single user.
func IsPrivateRoom(room string) bool {
	return strings.HasPrefix(room, privateRoomPrefix)
}

// ConnState is the lifecycle state of a connection.
type ConnState int

const (
	StateHandshaken ConnState = iota
	StateIdentified
	StateDisconnected
)

func (s ConnState) String() string {
	switch s {
	case StateHandshaken:
		return "handshaken"
	case StateIdentified:
		return "identified"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

// Envelope is the frame format in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// --- Inbound payloads ---

// Identity is the user_join payload and the identity bound to a connection.
type Identity struct {
	UserID   string `json:"userId" validate:"required,max=128"`
	Username string `json:"username" validate:"required,max=128"`
	Role     string `json:"role" validate:"max=64"`
}

type SendMessagePayload struct {
	RoomID      string `json:"roomId" validate:"required,max=256"`
	Message     string `json:"message" validate:"required"`
	MessageType string `json:"messageType" validate:"max=32"`
}

type TypingPayload struct {
	RoomID string `json:"roomId" validate:"required,max=256"`
}

type LoanStatusPayload struct {
	TargetUserID string `json:"targetUserId" validate:"required"`
	LoanID       string `json:"loanId" validate:"required"`
	Status       string `json:"status" validate:"required"`
	Message      string `json:"message"`
}

// --- Outbound payloads ---

type UserJoinedAck struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	SocketID string `json:"socketId"`
}

type ErrorPayload struct {
	Error string `json:"error"`
}

type RoomAck struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type RoomMemberEvent struct {
	Username string `json:"username"`
	UserID   string `json:"userId"`
	RoomID   string `json:"roomId"`
}

type TypingEvent struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	RoomID   string `json:"roomId"`
}

type LoanNotification struct {
	LoanID    string    `json:"loanId"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// LoanStatusNotification is the notification payload of an administrative loan status update.
type LoanStatusNotification struct {
	Type      string    `json:"type"`
	LoanID    string    `json:"loanId"`
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// DecisionNotification is broadcast when the decision service reports a result.
type DecisionNotification struct {
	Type      string `json:"type"`
	RequestID string `json:"request_id"`
	Decision  string `json:"decision"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Source    string `json:"source"`
}

type UserStatus struct {
	UserID    string    `json:"userId"`
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// --- UseCase inputs ---

// RegisterInput is a freshly upgraded connection and its handshake token.
type RegisterInput struct {
	Conn  *websocket.Conn
	Token string
}

type NotifyUserInput struct {
	UserID       string
	Notification json.RawMessage
}

type NotifyTokenInput struct {
	Token        string
	Notification json.RawMessage
}

type BroadcastInput struct {
	Notification json.RawMessage
}

type LoanStatusInput struct {
	UserID  string
	LoanID  string
	Status  string
	Message string
}

type DecisionInput struct {
	RequestID string
	Decision  string
	Message   string
	Timestamp string
}

type SystemMessageInput struct {
	RoomID      string
	Message     string
	MessageType string
}

// RoomEventInput fans an arbitrary event out to a room.
type RoomEventInput struct {
	RoomID string
	Event  string
	Data   json.RawMessage
}

// EventInput fans an arbitrary event out to every connection.
type EventInput struct {
	Event string
	Data  json.RawMessage
}

// --- UseCase outputs ---

// DeliveryOutput reports how many connections a frame was queued to.
type DeliveryOutput struct {
	Recipients int `json:"recipients"`
}

type ConnectionInfo struct {
	SocketID  string    `json:"socketId"`
	UserID    string    `json:"userId"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	JoinedAt  time.Time `json:"joinedAt"`
	RoomCount int       `json:"roomsCount"`
}

// Presence is a consistent snapshot of the registry.
type Presence struct {
	ConnectedCount   int              `json:"connectedUsers"`
	TotalConnections int              `json:"totalConnections"`
	RoomCount        int              `json:"activeRooms"`
	Users            []ConnectionInfo `json:"users"`
}
