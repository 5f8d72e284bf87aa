package http

import (
	"encoding/json"
	"math"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"realtime-srv/internal/model"
	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/response"
)

// --- Request DTOs ---

type upgradeReq struct {
	CitizenID string `form:"citizen_id"`
}

func (r upgradeReq) toInput(conn *websocket.Conn) realtime.RegisterInput {
	return realtime.RegisterInput{
		Conn:  conn,
		Token: r.CitizenID,
	}
}

type notifyUserReq struct {
	UserID       string          `json:"userId" binding:"required"`
	Notification json.RawMessage `json:"notification" binding:"required"`
}

func (r notifyUserReq) toInput() realtime.NotifyUserInput {
	return realtime.NotifyUserInput{
		UserID:       r.UserID,
		Notification: r.Notification,
	}
}

type notifyCitizenReq struct {
	CitizenID    string          `json:"citizen_id" binding:"required"`
	Notification json.RawMessage `json:"notification" binding:"required"`
}

func (r notifyCitizenReq) toInput() realtime.NotifyTokenInput {
	return realtime.NotifyTokenInput{
		Token:        r.CitizenID,
		Notification: r.Notification,
	}
}

type broadcastReq struct {
	Notification json.RawMessage `json:"notification" binding:"required"`
}

func (r broadcastReq) toInput() realtime.BroadcastInput {
	return realtime.BroadcastInput{Notification: r.Notification}
}

type loanStatusReq struct {
	UserID  string `json:"userId" binding:"required"`
	LoanID  string `json:"loanId" binding:"required"`
	Status  string `json:"status" binding:"required"`
	Message string `json:"message"`
}

func (r loanStatusReq) toInput() realtime.LoanStatusInput {
	return realtime.LoanStatusInput{
		UserID:  r.UserID,
		LoanID:  r.LoanID,
		Status:  r.Status,
		Message: r.Message,
	}
}

type decisionReq struct {
	Message   string `json:"message"`
	RequestID string `json:"request_id" binding:"required"`
	Decision  string `json:"decision" binding:"required"`
	// Timestamp is unix seconds (fractional allowed) or a preformatted string.
	Timestamp json.RawMessage `json:"timestamp"`
}

func (r decisionReq) toInput() (realtime.DecisionInput, error) {
	ts, err := decisionTimestamp(r.Timestamp)
	if err != nil {
		return realtime.DecisionInput{}, err
	}
	return realtime.DecisionInput{
		RequestID: r.RequestID,
		Decision:  r.Decision,
		Message:   r.Message,
		Timestamp: ts,
	}, nil
}

// decisionTimestamp renders a numeric unix timestamp as RFC3339 in UTC.
// Strings are kept as sent. Absent or null yields "".
func decisionTimestamp(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if !gjson.ValidBytes(raw) {
		return "", errWrongBody
	}
	v := gjson.ParseBytes(raw)
	switch v.Type {
	case gjson.Null:
		return "", nil
	case gjson.String:
		return v.Str, nil
	case gjson.Number:
		micros := int64(math.Round(v.Float() * 1e6))
		return time.UnixMicro(micros).UTC().Format(time.RFC3339Nano), nil
	default:
		return "", errWrongBody
	}
}

type systemMessageReq struct {
	RoomID      string `json:"roomId" binding:"required"`
	Message     string `json:"message" binding:"required"`
	MessageType string `json:"messageType"`
}

func (r systemMessageReq) toInput() realtime.SystemMessageInput {
	return realtime.SystemMessageInput{
		RoomID:      r.RoomID,
		Message:     r.Message,
		MessageType: r.MessageType,
	}
}

type roomEventReq struct {
	Event string          `json:"event" binding:"required"`
	Data  json.RawMessage `json:"data"`
}

func (r roomEventReq) toInput(roomID string) realtime.RoomEventInput {
	return realtime.RoomEventInput{
		RoomID: roomID,
		Event:  r.Event,
		Data:   r.Data,
	}
}

// --- Response DTOs ---

type deliveryResp struct {
	Success    bool `json:"success"`
	Recipients int  `json:"recipients"`
}

func newDeliveryResp(o realtime.DeliveryOutput) deliveryResp {
	return deliveryResp{Success: true, Recipients: o.Recipients}
}

type chatMessageResp struct {
	ID          string            `json:"id"`
	UserID      string            `json:"userId"`
	Username    string            `json:"username"`
	Message     string            `json:"message"`
	MessageType string            `json:"messageType"`
	Timestamp   response.DateTime `json:"timestamp"`
	RoomID      string            `json:"roomId"`
}

type systemMessageResp struct {
	deliveryResp
	Message chatMessageResp `json:"message"`
}

func newSystemMessageResp(msg model.ChatMessage, o realtime.DeliveryOutput) systemMessageResp {
	return systemMessageResp{
		deliveryResp: newDeliveryResp(o),
		Message: chatMessageResp{
			ID:          msg.ID,
			UserID:      msg.UserID,
			Username:    msg.Username,
			Message:     msg.Message,
			MessageType: msg.MessageType,
			Timestamp:   response.DateTime(msg.Timestamp),
			RoomID:      msg.RoomID,
		},
	}
}

type connectionResp struct {
	SocketID  string            `json:"socketId"`
	UserID    string            `json:"userId"`
	Username  string            `json:"username"`
	Role      string            `json:"role"`
	JoinedAt  response.DateTime `json:"joinedAt"`
	RoomCount int               `json:"roomsCount"`
}

type statsResp struct {
	Success          bool             `json:"success"`
	ConnectedUsers   int              `json:"connectedUsers"`
	TotalConnections int              `json:"totalConnections"`
	ActiveRooms      int              `json:"activeRooms"`
	UptimeSeconds    int64            `json:"uptimeSeconds"`
	Users            []connectionResp `json:"users"`
}

func (h Handler) newStatsResp(p realtime.Presence, now time.Time) statsResp {
	users := make([]connectionResp, len(p.Users))
	for i, u := range p.Users {
		users[i] = connectionResp{
			SocketID:  u.SocketID,
			UserID:    u.UserID,
			Username:  u.Username,
			Role:      u.Role,
			JoinedAt:  response.DateTime(u.JoinedAt),
			RoomCount: u.RoomCount,
		}
	}
	return statsResp{
		Success:          true,
		ConnectedUsers:   p.ConnectedCount,
		TotalConnections: p.TotalConnections,
		ActiveRooms:      p.RoomCount,
		UptimeSeconds:    int64(math.Floor(now.Sub(h.startedAt).Seconds())),
		Users:            users,
	}
}

type identityResp struct {
	SocketID string `json:"socketId"`
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

func newIdentityResp(socketID string, id realtime.Identity) identityResp {
	return identityResp{
		SocketID: socketID,
		UserID:   id.UserID,
		Username: id.Username,
		Role:     id.Role,
	}
}
