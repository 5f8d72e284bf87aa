package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"realtime-srv/internal/realtime"
	pkgErrors "realtime-srv/pkg/errors"
)

const maxRoomIDLength = 256

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type eventHandler struct {
	// errorEvent scopes rejections of this event.
	errorEvent string
	// identified events are rejected until user_join succeeded.
	identified bool
	handle     func(h *Hub, s *session, data json.RawMessage) error
}

var handlers = map[string]eventHandler{
	realtime.EventUserJoin:         {errorEvent: realtime.EventUserJoinError, handle: (*Hub).identify},
	realtime.EventJoinRoom:         {errorEvent: realtime.EventRoomJoinError, identified: true, handle: (*Hub).joinRoom},
	realtime.EventLeaveRoom:        {errorEvent: realtime.EventRoomLeaveError, identified: true, handle: (*Hub).leaveRoom},
	realtime.EventSendMessage:      {errorEvent: realtime.EventMessageError, identified: true, handle: (*Hub).sendMessage},
	realtime.EventTypingStart:      {errorEvent: realtime.EventError, identified: true, handle: (*Hub).typingStart},
	realtime.EventTypingStop:       {errorEvent: realtime.EventError, identified: true, handle: (*Hub).typingStop},
	realtime.EventLoanStatusUpdate: {errorEvent: realtime.EventLoanStatusError, identified: true, handle: (*Hub).loanStatusUpdate},
}

// route runs on the loop. Events of a connection that is already gone are dropped.
func (h *Hub) route(id string, env realtime.Envelope) {
	s, ok := h.reg.get(id)
	if !ok {
		return
	}

	eh, ok := handlers[env.Event]
	if !ok {
		h.metrics.eventsReceived.WithLabelValues("unknown").Inc()
		h.reject(s, realtime.EventError, fmt.Errorf("%w: %s", realtime.ErrUnknownEvent, env.Event))
		return
	}
	h.metrics.eventsReceived.WithLabelValues(env.Event).Inc()

	if eh.identified && s.binding == nil {
		h.reject(s, eh.errorEvent, realtime.ErrNotIdentified)
		return
	}

	if err := eh.handle(h, s, env.Data); err != nil {
		h.reject(s, eh.errorEvent, err)
	}
}

func (h *Hub) reject(s *session, event string, err error) {
	h.metrics.eventsRejected.WithLabelValues(rejectReason(err)).Inc()
	h.l.Debugf(context.Background(), "Rejected event from %s: %s: %v", s.peer.ID(), event, err)
	h.emit(s, event, realtime.ErrorPayload{Error: err.Error()})
}

// rejectReason maps an error to a bounded metric label.
func rejectReason(err error) string {
	switch {
	case errors.Is(err, realtime.ErrNotIdentified):
		return "not_identified"
	case errors.Is(err, realtime.ErrInvalidPayload):
		return "invalid_payload"
	case errors.Is(err, realtime.ErrUnknownEvent):
		return "unknown_event"
	case errors.Is(err, realtime.ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, realtime.ErrReservedRoom):
		return "reserved_room"
	case errors.Is(err, realtime.ErrNotInRoom):
		return "not_in_room"
	case errors.Is(err, realtime.ErrMessageTooLong):
		return "message_too_long"
	default:
		return "other"
	}
}

// decode unmarshals data into v and validates it. Failures wrap ErrInvalidPayload.
func decode(data json.RawMessage, v any) error {
	if len(data) == 0 {
		return fmt.Errorf("%w: missing data", realtime.ErrInvalidPayload)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s", realtime.ErrInvalidPayload, err.Error())
	}
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %s", realtime.ErrInvalidPayload, describe(err))
	}
	return nil
}

func describe(err error) string {
	if c, ok := pkgErrors.FromValidator(0, err); ok {
		return c.Error()
	}
	return err.Error()
}

type roomPayload struct {
	RoomID string `json:"roomId"`
}

// decodeRoom accepts a bare JSON string or {"roomId": "..."}.
func decodeRoom(data json.RawMessage) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: roomId is required", realtime.ErrInvalidPayload)
	}

	var room string
	if data[0] == '"' {
		if err := json.Unmarshal(data, &room); err != nil {
			return "", fmt.Errorf("%w: %s", realtime.ErrInvalidPayload, err.Error())
		}
	} else {
		var p roomPayload
		if err := json.Unmarshal(data, &p); err != nil {
			return "", fmt.Errorf("%w: %s", realtime.ErrInvalidPayload, err.Error())
		}
		room = p.RoomID
	}

	return normalizeRoom(room)
}

// normalizeRoom trims a room id. Every event that names a room goes
// through it, so membership is keyed on the same string.
func normalizeRoom(room string) (string, error) {
	room = strings.TrimSpace(room)
	if room == "" {
		return "", fmt.Errorf("%w: roomId is required", realtime.ErrInvalidPayload)
	}
	if len(room) > maxRoomIDLength {
		return "", fmt.Errorf("%w: roomId is too long", realtime.ErrInvalidPayload)
	}
	return room, nil
}
