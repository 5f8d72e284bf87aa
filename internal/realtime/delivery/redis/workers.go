package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"realtime-srv/internal/realtime"
	"realtime-srv/pkg/log"
)

const handleTimeout = 5 * time.Second

var (
	errUnknownChannel = errors.New("unknown channel")
	errInvalidPayload = errors.New("invalid payload")
)

type target struct {
	kind string // user, citizen, room or broadcast
	id   string
}

func parseChannel(channel string) (target, error) {
	if channel == broadcastChannel {
		return target{kind: "broadcast"}, nil
	}
	for kind, prefix := range map[string]string{"user": userChannel, "citizen": citizenChannel, "room": roomChannel} {
		if id, ok := strings.CutPrefix(channel, prefix); ok {
			if id == "" {
				return target{}, fmt.Errorf("%w: %s", errUnknownChannel, channel)
			}
			return target{kind: kind, id: id}, nil
		}
	}
	return target{}, fmt.Errorf("%w: %s", errUnknownChannel, channel)
}

// envelope extracts event and data. A payload without "event" or "data"
// keys is taken as the data itself.
func envelope(payload string) (string, json.RawMessage, error) {
	if !gjson.Valid(payload) {
		return "", nil, errInvalidPayload
	}
	doc := gjson.Parse(payload)
	if !doc.IsObject() {
		return "", nil, errInvalidPayload
	}

	event := doc.Get("event")
	data := doc.Get("data")
	if !event.Exists() && !data.Exists() {
		return "", json.RawMessage(payload), nil
	}
	if !data.Exists() {
		return event.String(), nil, nil
	}
	return event.String(), json.RawMessage(data.Raw), nil
}

func (s *subscriber) handleMessage(ctx context.Context, channel, payload string) {
	ctx, cancel := context.WithTimeout(ctx, handleTimeout)
	defer cancel()
	ctx = log.WithFields(ctx, s.logger, log.FieldChannel, channel)

	o, err := s.dispatch(ctx, channel, payload)
	if err != nil {
		s.logger.Warnf(ctx, "internal.realtime.delivery.redis.handleMessage: %v", err)
		return
	}
	s.logger.Debugf(ctx, "Relayed message to %d connections", o.Recipients)
}

func (s *subscriber) dispatch(ctx context.Context, channel, payload string) (realtime.DeliveryOutput, error) {
	t, err := parseChannel(channel)
	if err != nil {
		return realtime.DeliveryOutput{}, err
	}
	event, data, err := envelope(payload)
	if err != nil {
		return realtime.DeliveryOutput{}, err
	}

	switch t.kind {
	case "user":
		return s.uc.NotifyUser(ctx, realtime.NotifyUserInput{UserID: t.id, Notification: data})
	case "citizen":
		return s.uc.NotifyToken(ctx, realtime.NotifyTokenInput{Token: t.id, Notification: data})
	case "room":
		if event == "" {
			event = realtime.EventNewMessage
		}
		return s.uc.SendToRoom(ctx, realtime.RoomEventInput{RoomID: t.id, Event: event, Data: data})
	default:
		if event == "" || event == realtime.EventBroadcastNotification {
			return s.uc.Broadcast(ctx, realtime.BroadcastInput{Notification: data})
		}
		return s.uc.BroadcastEvent(ctx, realtime.EventInput{Event: event, Data: data})
	}
}
