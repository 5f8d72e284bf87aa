package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"unicode/utf8"

	"realtime-srv/internal/model"
	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
)

func (h *Hub) identify(s *session, data json.RawMessage) error {
	var id realtime.Identity
	if err := decode(data, &id); err != nil {
		return err
	}

	now := h.now()
	prev := h.reg.bind(s, id, now)

	ctx := log.WithFields(context.Background(), h.l, log.FieldSocketID, s.peer.ID(), log.FieldUserID, id.UserID)
	h.l.Infof(ctx, "User joined: %s", id.Username)
	h.emit(s, realtime.EventUserJoined, realtime.UserJoinedAck{
		Success:  true,
		Message:  "Connected successfully",
		SocketID: s.peer.ID(),
	})

	if prev == id.UserID {
		return nil
	}
	if prev != "" && !h.reg.online(prev) {
		h.broadcastAll(realtime.EventUserStatusUpdate, realtime.UserStatus{
			UserID: prev, Status: realtime.StatusOffline, Timestamp: now,
		})
	}
	h.broadcastAll(realtime.EventUserStatusUpdate, realtime.UserStatus{
		UserID: id.UserID, Status: realtime.StatusOnline, Timestamp: now,
	})
	return nil
}

func (h *Hub) joinRoom(s *session, data json.RawMessage) error {
	room, err := decodeRoom(data)
	if err != nil {
		return err
	}
	if realtime.IsPrivateRoom(room) {
		return fmt.Errorf("%w: %s", realtime.ErrReservedRoom, room)
	}

	id := s.binding.identity
	if h.reg.join(s, room) {
		h.fanout(h.reg.members(room, s), realtime.EventUserJoinedRoom, realtime.RoomMemberEvent{
			Username: id.Username,
			UserID:   id.UserID,
			RoomID:   room,
		})
		h.l.Debugf(context.Background(), "User %s joined room %s", id.UserID, room)
	}

	h.emit(s, realtime.EventRoomJoined, realtime.RoomAck{
		RoomID:  room,
		Message: fmt.Sprintf("Joined room %s successfully", room),
	})
	return nil
}

func (h *Hub) leaveRoom(s *session, data json.RawMessage) error {
	room, err := decodeRoom(data)
	if err != nil {
		return err
	}
	if realtime.IsPrivateRoom(room) {
		return fmt.Errorf("%w: %s", realtime.ErrReservedRoom, room)
	}

	id := s.binding.identity
	if h.reg.leave(s, room) {
		h.sendToRoom(room, realtime.EventUserLeftRoom, realtime.RoomMemberEvent{
			Username: id.Username,
			UserID:   id.UserID,
			RoomID:   room,
		})
		h.l.Debugf(context.Background(), "User %s left room %s", id.UserID, room)
	}

	h.emit(s, realtime.EventRoomLeft, realtime.RoomAck{
		RoomID:  room,
		Message: fmt.Sprintf("Left room %s successfully", room),
	})
	return nil
}

func (h *Hub) sendMessage(s *session, data json.RawMessage) error {
	var p realtime.SendMessagePayload
	if err := decode(data, &p); err != nil {
		return err
	}
	room, err := normalizeRoom(p.RoomID)
	if err != nil {
		return err
	}
	if h.maxMessageLen > 0 && utf8.RuneCountInString(p.Message) > h.maxMessageLen {
		return fmt.Errorf("%w: limit is %d characters", realtime.ErrMessageTooLong, h.maxMessageLen)
	}
	if _, ok := s.rooms[room]; !ok {
		return fmt.Errorf("%w: %s", realtime.ErrNotInRoom, room)
	}

	msgType := p.MessageType
	if msgType == "" {
		msgType = model.MessageTypeText
	}

	id := s.binding.identity
	h.publish(model.ChatMessage{
		ID:          h.newID(),
		UserID:      id.UserID,
		Username:    id.Username,
		Message:     p.Message,
		MessageType: msgType,
		Timestamp:   h.now(),
		RoomID:      room,
	})
	return nil
}

// publish delivers msg to every member of its room, sender included, and
// hands it to onMessage off the loop.
func (h *Hub) publish(msg model.ChatMessage) int {
	n := h.sendToRoom(msg.RoomID, realtime.EventNewMessage, msg)
	if h.onMessage != nil {
		go h.onMessage(msg)
	}
	return n
}

func (h *Hub) typingStart(s *session, data json.RawMessage) error {
	return h.typing(s, data, realtime.EventUserTypingStart)
}

func (h *Hub) typingStop(s *session, data json.RawMessage) error {
	return h.typing(s, data, realtime.EventUserTypingStop)
}

func (h *Hub) typing(s *session, data json.RawMessage, event string) error {
	var p realtime.TypingPayload
	if err := decode(data, &p); err != nil {
		return err
	}
	room, err := normalizeRoom(p.RoomID)
	if err != nil {
		return err
	}
	if _, ok := s.rooms[room]; !ok {
		return fmt.Errorf("%w: %s", realtime.ErrNotInRoom, room)
	}

	id := s.binding.identity
	h.fanout(h.reg.members(room, s), event, realtime.TypingEvent{
		UserID:   id.UserID,
		Username: id.Username,
		RoomID:   room,
	})
	return nil
}

func (h *Hub) loanStatusUpdate(s *session, data json.RawMessage) error {
	var p realtime.LoanStatusPayload
	if err := decode(data, &p); err != nil {
		return err
	}

	n := h.sendToUser(p.TargetUserID, realtime.EventLoanNotification, realtime.LoanNotification{
		LoanID:    p.LoanID,
		Status:    p.Status,
		Message:   loanMessage(p.Status, p.Message),
		Timestamp: h.now(),
	})
	h.l.Debugf(context.Background(), "Loan status %s for loan %s sent to user %s (%d connections)",
		p.Status, p.LoanID, p.TargetUserID, n)
	return nil
}

func loanMessage(status, message string) string {
	if message != "" {
		return message
	}
	return "Loan application " + status
}
