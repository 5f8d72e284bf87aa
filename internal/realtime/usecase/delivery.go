package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"realtime-srv/internal/alert"
	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/realtime"
)

func (uc *implUseCase) NotifyUser(ctx context.Context, input realtime.NotifyUserInput) (realtime.DeliveryOutput, error) {
	if input.UserID == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: userId", realtime.ErrMissingField)
	}
	payload, err := stampNotification(input.Notification, uc.now())
	if err != nil {
		return realtime.DeliveryOutput{}, err
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.sendToUser(input.UserID, realtime.EventNotification, payload)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}

	if rec, ok := notificationRecord(input.Notification); ok {
		rec.CitizenID = input.UserID
		uc.persist(ctx, rec)
	}

	uc.l.Debugf(ctx, "Notification sent to user %s (%d connections)", input.UserID, n)
	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) NotifyToken(ctx context.Context, input realtime.NotifyTokenInput) (realtime.DeliveryOutput, error) {
	if input.Token == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: citizen_id", realtime.ErrMissingField)
	}
	payload, err := stampNotification(input.Notification, uc.now())
	if err != nil {
		return realtime.DeliveryOutput{}, err
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.sendToToken(input.Token, realtime.EventNotification, payload)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}

	if rec, ok := notificationRecord(input.Notification); ok {
		rec.CitizenID = input.Token
		uc.persist(ctx, rec)
	}
	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) SendLoanStatus(ctx context.Context, input realtime.LoanStatusInput) (realtime.DeliveryOutput, error) {
	if input.UserID == "" || input.LoanID == "" || input.Status == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: userId, loanId and status", realtime.ErrMissingField)
	}

	now := uc.now()
	notif := realtime.LoanStatusNotification{
		Type:      realtime.NotificationTypeLoanStatus,
		LoanID:    input.LoanID,
		Status:    input.Status,
		Message:   loanMessage(input.Status, input.Message),
		Timestamp: now,
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.sendToUser(input.UserID, realtime.EventNotification, notif)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}

	uc.persist(ctx, notification.CreateInput{
		CitizenID: input.UserID,
		Header:    fmt.Sprintf("Loan %s: %s", input.LoanID, input.Status),
		Content:   notif.Message,
		Type:      loanStatusType(input.Status),
	})
	uc.alert(func(ctx context.Context) error {
		return uc.alertUC.DispatchLoanStatus(ctx, alert.LoanStatusAlertInput{
			UserID:     input.UserID,
			LoanID:     input.LoanID,
			Status:     input.Status,
			Message:    notif.Message,
			Delivered:  n > 0,
			OccurredAt: now,
		})
	})

	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) SendToRoom(ctx context.Context, input realtime.RoomEventInput) (realtime.DeliveryOutput, error) {
	input.RoomID = strings.TrimSpace(input.RoomID)
	if input.RoomID == "" || input.Event == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: roomId and event", realtime.ErrMissingField)
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.sendToRoom(input.RoomID, input.Event, input.Data)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}
	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) SendSystemMessage(ctx context.Context, input realtime.SystemMessageInput) (model.ChatMessage, realtime.DeliveryOutput, error) {
	input.RoomID = strings.TrimSpace(input.RoomID)
	if input.RoomID == "" || input.Message == "" {
		return model.ChatMessage{}, realtime.DeliveryOutput{}, fmt.Errorf("%w: roomId and message", realtime.ErrMissingField)
	}
	if uc.cfg.MaxMessageLength > 0 && utf8.RuneCountInString(input.Message) > uc.cfg.MaxMessageLength {
		return model.ChatMessage{}, realtime.DeliveryOutput{}, realtime.ErrMessageTooLong
	}

	msgType := input.MessageType
	if msgType == "" {
		msgType = model.MessageTypeSystem
	}

	var (
		msg model.ChatMessage
		n   int
	)
	if err := uc.hub.call(ctx, func() {
		msg = model.ChatMessage{
			ID:          uc.hub.newID(),
			UserID:      model.SystemUserID,
			Username:    model.SystemUsername,
			Message:     input.Message,
			MessageType: msgType,
			Timestamp:   uc.hub.now(),
			RoomID:      input.RoomID,
		}
		n = uc.hub.publish(msg)
	}); err != nil {
		return model.ChatMessage{}, realtime.DeliveryOutput{}, err
	}
	return msg, realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) Broadcast(ctx context.Context, input realtime.BroadcastInput) (realtime.DeliveryOutput, error) {
	payload, err := stampNotification(input.Notification, uc.now())
	if err != nil {
		return realtime.DeliveryOutput{}, err
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.broadcastAll(realtime.EventBroadcastNotification, payload)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}

	if rec, ok := notificationRecord(input.Notification); ok {
		rec.IsGlobal = true
		uc.persist(ctx, rec)
	}
	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) BroadcastEvent(ctx context.Context, input realtime.EventInput) (realtime.DeliveryOutput, error) {
	if input.Event == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: event", realtime.ErrMissingField)
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.broadcastAll(input.Event, input.Data)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}
	return realtime.DeliveryOutput{Recipients: n}, nil
}

func (uc *implUseCase) PublishDecision(ctx context.Context, input realtime.DecisionInput) (realtime.DeliveryOutput, error) {
	if input.RequestID == "" || input.Decision == "" {
		return realtime.DeliveryOutput{}, fmt.Errorf("%w: request_id and decision", realtime.ErrMissingField)
	}

	now := uc.now()
	ts := input.Timestamp
	if ts == "" {
		ts = now.UTC().Format(time.RFC3339Nano)
	}
	notif := realtime.DecisionNotification{
		Type:      realtime.NotificationTypeMASDecision,
		RequestID: input.RequestID,
		Decision:  input.Decision,
		Message:   input.Message,
		Timestamp: ts,
		Source:    realtime.SourcePythonService,
	}

	var n int
	if err := uc.hub.call(ctx, func() {
		n = uc.hub.broadcastAll(realtime.EventBroadcastNotification, notif)
	}); err != nil {
		return realtime.DeliveryOutput{}, err
	}

	uc.l.Infof(ctx, "Decision %s for request %s broadcast to %d connections", input.Decision, input.RequestID, n)
	uc.alert(func(ctx context.Context) error {
		return uc.alertUC.DispatchDecision(ctx, alert.DecisionAlertInput{
			RequestID:  input.RequestID,
			Decision:   input.Decision,
			Message:    input.Message,
			Source:     realtime.SourcePythonService,
			Recipients: n,
			DecidedAt:  now,
		})
	})

	return realtime.DeliveryOutput{Recipients: n}, nil
}
