package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/realtime"
)

const defaultNotificationHeader = "Notification"

// systemScope is the caller identity for records the service stores itself.
var systemScope = model.Scope{UserID: model.SystemUserID, Username: model.SystemUsername, Role: model.RoleAdmin}

// stampNotification checks raw is a JSON object and sets its timestamp.
func stampNotification(raw json.RawMessage, now time.Time) (json.RawMessage, error) {
	if len(raw) == 0 || !gjson.ValidBytes(raw) || !gjson.ParseBytes(raw).IsObject() {
		return nil, realtime.ErrNotificationRequired
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, realtime.ErrNotificationRequired
	}
	ts, err := json.Marshal(now)
	if err != nil {
		return nil, err
	}
	fields["timestamp"] = ts
	return json.Marshal(fields)
}

// notificationRecord extracts what the notification store keeps from a free-form payload.
func notificationRecord(raw json.RawMessage) (notification.CreateInput, bool) {
	doc := gjson.ParseBytes(raw)

	in := notification.CreateInput{
		Header:  firstString(doc, "header", "title"),
		Content: firstString(doc, "content", "message", "body"),
		Type:    doc.Get("type").String(),
		Icon:    doc.Get("icon").String(),
	}
	if in.Content == "" {
		return notification.CreateInput{}, false
	}
	if in.Header == "" {
		in.Header = defaultNotificationHeader
	}
	if !model.IsValidNotificationType(in.Type) {
		in.Type = model.NotificationTypeInfo
	}
	return in, true
}

func firstString(doc gjson.Result, paths ...string) string {
	for _, p := range paths {
		if v := strings.TrimSpace(doc.Get(p).String()); v != "" {
			return v
		}
	}
	return ""
}

// loanStatusType maps a loan status to a notification type.
func loanStatusType(status string) string {
	switch strings.ToLower(status) {
	case "approved", "disbursed", "completed":
		return model.NotificationTypeSuccess
	case "rejected", "cancelled", "failed":
		return model.NotificationTypeError
	case "pending", "under_review", "need_more_info":
		return model.NotificationTypeWarning
	default:
		return model.NotificationTypeInfo
	}
}

// persist stores a notification for offline delivery. Failures are logged only.
func (uc *implUseCase) persist(ctx context.Context, in notification.CreateInput) {
	if uc.notifUC == nil {
		return
	}
	if _, err := uc.notifUC.Create(ctx, systemScope, in); err != nil {
		uc.l.Warnf(ctx, "internal.realtime.usecase.persist: %v", err)
	}
}

// alert runs fn off the caller's goroutine with its own deadline.
func (uc *implUseCase) alert(fn func(ctx context.Context) error) {
	if uc.alertUC == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			uc.l.Warnf(ctx, "internal.realtime.usecase.alert: %v", err)
		}
	}()
}
