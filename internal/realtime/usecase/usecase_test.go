package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/alert"
	"realtime-srv/internal/chat"
	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/realtime"
)

type fakeNotifications struct {
	mu      sync.Mutex
	created []notification.CreateInput
	scopes  []model.Scope
	err     error
}

func (f *fakeNotifications) Create(ctx context.Context, sc model.Scope, ip notification.CreateInput) (model.Notification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, ip)
	f.scopes = append(f.scopes, sc)
	return model.Notification{ID: "n-1"}, f.err
}

func (f *fakeNotifications) Get(ctx context.Context, sc model.Scope, ip notification.GetInput) (notification.GetOutput, error) {
	return notification.GetOutput{}, nil
}

func (f *fakeNotifications) Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error) {
	return model.Notification{}, nil
}

func (f *fakeNotifications) Update(ctx context.Context, sc model.Scope, id string, ip notification.UpdateInput) (model.Notification, error) {
	return model.Notification{}, nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	return nil
}

func (f *fakeNotifications) MarkAllRead(ctx context.Context, sc model.Scope) (int64, error) {
	return 0, nil
}

func (f *fakeNotifications) Delete(ctx context.Context, sc model.Scope, id string) error {
	return nil
}

type fakeArchive struct {
	saved chan model.ChatMessage
	err   error
}

func (f *fakeArchive) Save(ctx context.Context, msg model.ChatMessage) error {
	f.saved <- msg
	return f.err
}

func (f *fakeArchive) List(ctx context.Context, sc model.Scope, ip chat.ListInput) (chat.ListOutput, error) {
	return chat.ListOutput{}, nil
}

type fakeAlert struct {
	decisions chan alert.DecisionAlertInput
	loans     chan alert.LoanStatusAlertInput
}

func newFakeAlert() *fakeAlert {
	return &fakeAlert{
		decisions: make(chan alert.DecisionAlertInput, 1),
		loans:     make(chan alert.LoanStatusAlertInput, 1),
	}
}

func (f *fakeAlert) DispatchDecision(ctx context.Context, input alert.DecisionAlertInput) error {
	f.decisions <- input
	return nil
}

func (f *fakeAlert) DispatchLoanStatus(ctx context.Context, input alert.LoanStatusAlertInput) error {
	f.loans <- input
	return nil
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for collaborator")
	}
	var zero T
	return zero
}

func newTestUseCase(t *testing.T, cfg Config, deps Deps) *implUseCase {
	t.Helper()
	uc := newUseCase(&testLogger{}, cfg, deps, func() time.Time { return testNow })
	go uc.Run()
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = uc.Shutdown(ctx)
	})
	return uc
}

// attach registers a fake connection and, when userID is set, identifies it.
func attach(t *testing.T, uc *implUseCase, id, token, userID string) *fakePeer {
	t.Helper()
	p := newFakePeer(id)
	var regErr error
	require.NoError(t, uc.hub.call(context.Background(), func() { regErr = uc.hub.register(p, token) }))
	require.NoError(t, regErr)

	if userID != "" {
		data, err := json.Marshal(realtime.Identity{UserID: userID, Username: "name-" + userID})
		require.NoError(t, err)
		require.NoError(t, uc.hub.call(context.Background(), func() {
			uc.hub.route(id, realtime.Envelope{Event: realtime.EventUserJoin, Data: data})
		}))
	}
	p.reset()
	return p
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{PongWait: 10 * time.Second, PingInterval: 30 * time.Second}
	cfg.applyDefaults()

	assert.Equal(t, 9*time.Second, cfg.PingInterval)
	assert.Equal(t, defaultSendBuffer, cfg.SendBufferSize)
	assert.Equal(t, defaultWriteWait, cfg.WriteWait)
	assert.Equal(t, int64(defaultMaxMessageSize), cfg.MaxMessageSize)

	cfg = Config{}
	cfg.applyDefaults()
	assert.Equal(t, defaultPingInterval, cfg.PingInterval)
	assert.Equal(t, defaultPongWait, cfg.PongWait)
}

func TestRegisterRequiresConnection(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	err := uc.Register(context.Background(), realtime.RegisterInput{})
	assert.ErrorIs(t, err, realtime.ErrInvalidPayload)
}

func TestDisconnect(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	p := attach(t, uc, "a", "", "u1")

	require.NoError(t, uc.Disconnect(context.Background(), "a"))
	assert.True(t, p.isClosed())
	assert.ErrorIs(t, uc.Disconnect(context.Background(), "a"), realtime.ErrConnectionNotFound)
}

func TestGetUserBySocketID(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	attach(t, uc, "a", "", "u1")
	attach(t, uc, "b", "", "")

	id, err := uc.GetUserBySocketID(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "name-u1", id.Username)

	_, err = uc.GetUserBySocketID(context.Background(), "b")
	assert.ErrorIs(t, err, realtime.ErrUserNotFound)

	_, err = uc.GetUserBySocketID(context.Background(), "missing")
	assert.ErrorIs(t, err, realtime.ErrConnectionNotFound)
}

func TestGetPresence(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	attach(t, uc, "b", "", "u2")
	attach(t, uc, "a", "", "u1")
	attach(t, uc, "c", "", "")

	p, err := uc.GetPresence(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, p.ConnectedCount)
	assert.Equal(t, 3, p.TotalConnections)
	require.Len(t, p.Users, 2)
	// Same join time, ordered by socket id.
	assert.Equal(t, "a", p.Users[0].SocketID)
	assert.Equal(t, "b", p.Users[1].SocketID)
}

func TestNotifyUser(t *testing.T) {
	notifs := &fakeNotifications{}
	uc := newTestUseCase(t, Config{}, Deps{Notifications: notifs})
	a1 := attach(t, uc, "a1", "", "alice")
	a2 := attach(t, uc, "a2", "", "alice")
	b := attach(t, uc, "b", "", "bob")

	out, err := uc.NotifyUser(context.Background(), realtime.NotifyUserInput{
		UserID:       "alice",
		Notification: json.RawMessage(`{"title":"Disbursed","message":"Your loan was disbursed","type":"success"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Recipients)

	for _, p := range []*fakePeer{a1, a2} {
		frames := p.received(realtime.EventNotification)
		require.Len(t, frames, 1)
		body := decodeData[map[string]any](t, frames[0])
		assert.Equal(t, "Disbursed", body["title"])
		assert.Equal(t, testNow.Format(time.RFC3339), body["timestamp"])
	}
	assert.Empty(t, b.received(realtime.EventNotification))

	require.Len(t, notifs.created, 1)
	assert.Equal(t, notification.CreateInput{
		CitizenID: "alice",
		Header:    "Disbursed",
		Content:   "Your loan was disbursed",
		Type:      model.NotificationTypeSuccess,
	}, notifs.created[0])
	assert.Equal(t, model.SystemUserID, notifs.scopes[0].UserID)
	assert.True(t, notifs.scopes[0].IsAdmin())
}

func TestNotifyUserValidation(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})

	_, err := uc.NotifyUser(context.Background(), realtime.NotifyUserInput{Notification: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, realtime.ErrMissingField)

	_, err = uc.NotifyUser(context.Background(), realtime.NotifyUserInput{UserID: "u", Notification: json.RawMessage(`[1]`)})
	assert.ErrorIs(t, err, realtime.ErrNotificationRequired)

	out, err := uc.NotifyUser(context.Background(), realtime.NotifyUserInput{UserID: "offline", Notification: json.RawMessage(`{}`)})
	require.NoError(t, err)
	assert.Equal(t, 0, out.Recipients)
}

func TestNotifyUserPersistFailureIsNotReturned(t *testing.T) {
	notifs := &fakeNotifications{err: errors.New("db down")}
	uc := newTestUseCase(t, Config{}, Deps{Notifications: notifs})
	attach(t, uc, "a", "", "alice")

	out, err := uc.NotifyUser(context.Background(), realtime.NotifyUserInput{
		UserID:       "alice",
		Notification: json.RawMessage(`{"content":"hi"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)
}

func TestNotifyToken(t *testing.T) {
	notifs := &fakeNotifications{}
	uc := newTestUseCase(t, Config{}, Deps{Notifications: notifs})
	p := attach(t, uc, "a", "079123456789", "")

	out, err := uc.NotifyToken(context.Background(), realtime.NotifyTokenInput{
		Token:        "079123456789",
		Notification: json.RawMessage(`{"header":"KYC","content":"Verified"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)
	assert.Len(t, p.received(realtime.EventNotification), 1)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, "079123456789", notifs.created[0].CitizenID)
	assert.Equal(t, model.NotificationTypeInfo, notifs.created[0].Type)

	_, err = uc.NotifyToken(context.Background(), realtime.NotifyTokenInput{Notification: json.RawMessage(`{}`)})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestSendLoanStatus(t *testing.T) {
	notifs := &fakeNotifications{}
	alerts := newFakeAlert()
	uc := newTestUseCase(t, Config{}, Deps{Notifications: notifs, Alert: alerts})
	p := attach(t, uc, "a", "", "student-1")

	out, err := uc.SendLoanStatus(context.Background(), realtime.LoanStatusInput{
		UserID: "student-1",
		LoanID: "loan-7",
		Status: "approved",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)

	frames := p.received(realtime.EventNotification)
	require.Len(t, frames, 1)
	n := decodeData[realtime.LoanStatusNotification](t, frames[0])
	assert.Equal(t, realtime.NotificationTypeLoanStatus, n.Type)
	assert.Equal(t, "loan-7", n.LoanID)
	assert.Equal(t, "Loan application approved", n.Message)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, model.NotificationTypeSuccess, notifs.created[0].Type)
	assert.Equal(t, "student-1", notifs.created[0].CitizenID)

	a := receive(t, alerts.loans)
	assert.Equal(t, "loan-7", a.LoanID)
	assert.True(t, a.Delivered)

	_, err = uc.SendLoanStatus(context.Background(), realtime.LoanStatusInput{UserID: "student-1", LoanID: "loan-7"})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestSendToRoom(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	a := attach(t, uc, "a", "", "u1")
	b := attach(t, uc, "b", "", "u2")
	require.NoError(t, uc.hub.call(context.Background(), func() { uc.hub.route("a", realtime.Envelope{Event: realtime.EventJoinRoom, Data: json.RawMessage(`"loan-1"`)}) }))

	out, err := uc.SendToRoom(context.Background(), realtime.RoomEventInput{
		RoomID: "loan-1",
		Event:  "document_uploaded",
		Data:   json.RawMessage(`{"name":"contract.pdf"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)
	assert.Len(t, a.received("document_uploaded"), 1)
	assert.Empty(t, b.received("document_uploaded"))

	_, err = uc.SendToRoom(context.Background(), realtime.RoomEventInput{RoomID: "loan-1"})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestSendSystemMessage(t *testing.T) {
	archive := &fakeArchive{saved: make(chan model.ChatMessage, 1)}
	uc := newTestUseCase(t, Config{}, Deps{Archive: archive})
	a := attach(t, uc, "a", "", "u1")
	require.NoError(t, uc.hub.call(context.Background(), func() { uc.hub.route("a", realtime.Envelope{Event: realtime.EventJoinRoom, Data: json.RawMessage(`"lobby"`)}) }))

	msg, out, err := uc.SendSystemMessage(context.Background(), realtime.SystemMessageInput{RoomID: "lobby", Message: "Maintenance at 22:00"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)
	assert.Equal(t, model.SystemUserID, msg.UserID)
	assert.Equal(t, model.MessageTypeSystem, msg.MessageType)
	assert.NotEmpty(t, msg.ID)

	frames := a.received(realtime.EventNewMessage)
	require.Len(t, frames, 1)
	assert.Equal(t, msg.ID, decodeData[model.ChatMessage](t, frames[0]).ID)

	saved := receive(t, archive.saved)
	assert.Equal(t, msg.ID, saved.ID)

	_, _, err = uc.SendSystemMessage(context.Background(), realtime.SystemMessageInput{RoomID: "lobby"})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestBroadcast(t *testing.T) {
	notifs := &fakeNotifications{}
	uc := newTestUseCase(t, Config{}, Deps{Notifications: notifs})
	a := attach(t, uc, "a", "", "u1")
	b := attach(t, uc, "b", "", "")

	out, err := uc.Broadcast(context.Background(), realtime.BroadcastInput{
		Notification: json.RawMessage(`{"title":"Scheduled maintenance","body":"Tonight","type":"warning","icon":"wrench"}`),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Recipients)
	assert.Len(t, a.received(realtime.EventBroadcastNotification), 1)
	assert.Len(t, b.received(realtime.EventBroadcastNotification), 1)

	require.Len(t, notifs.created, 1)
	assert.Equal(t, notification.CreateInput{
		IsGlobal: true,
		Header:   "Scheduled maintenance",
		Content:  "Tonight",
		Type:     model.NotificationTypeWarning,
		Icon:     "wrench",
	}, notifs.created[0])

	// Nothing to store without content.
	_, err = uc.Broadcast(context.Background(), realtime.BroadcastInput{Notification: json.RawMessage(`{"title":"ping"}`)})
	require.NoError(t, err)
	assert.Len(t, notifs.created, 1)
}

func TestBroadcastEvent(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	a := attach(t, uc, "a", "", "")

	out, err := uc.BroadcastEvent(context.Background(), realtime.EventInput{Event: "rates_changed", Data: json.RawMessage(`{"rate":4.5}`)})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)
	assert.Len(t, a.received("rates_changed"), 1)

	_, err = uc.BroadcastEvent(context.Background(), realtime.EventInput{})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestPublishDecision(t *testing.T) {
	alerts := newFakeAlert()
	uc := newTestUseCase(t, Config{}, Deps{Alert: alerts})
	a := attach(t, uc, "a", "", "officer")

	out, err := uc.PublishDecision(context.Background(), realtime.DecisionInput{
		RequestID: "req-1",
		Decision:  "approve",
		Message:   "score 780",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Recipients)

	frames := a.received(realtime.EventBroadcastNotification)
	require.Len(t, frames, 1)
	n := decodeData[realtime.DecisionNotification](t, frames[0])
	assert.Equal(t, realtime.NotificationTypeMASDecision, n.Type)
	assert.Equal(t, realtime.SourcePythonService, n.Source)
	assert.Equal(t, "req-1", n.RequestID)
	assert.Equal(t, testNow.Format(time.RFC3339Nano), n.Timestamp)

	d := receive(t, alerts.decisions)
	assert.Equal(t, "approve", d.Decision)
	assert.Equal(t, 1, d.Recipients)

	_, err = uc.PublishDecision(context.Background(), realtime.DecisionInput{RequestID: "req-2"})
	assert.ErrorIs(t, err, realtime.ErrMissingField)
}

func TestCallsAfterShutdown(t *testing.T) {
	uc := newTestUseCase(t, Config{}, Deps{})
	require.NoError(t, uc.Shutdown(context.Background()))

	_, err := uc.GetPresence(context.Background())
	assert.ErrorIs(t, err, realtime.ErrHubClosed)

	_, err = uc.BroadcastEvent(context.Background(), realtime.EventInput{Event: "x"})
	assert.ErrorIs(t, err, realtime.ErrHubClosed)
}

func TestStampNotification(t *testing.T) {
	out, err := stampNotification(json.RawMessage(`{"title":"t","timestamp":"old"}`), testNow)
	require.NoError(t, err)

	var body map[string]string
	require.NoError(t, json.Unmarshal(out, &body))
	assert.Equal(t, "t", body["title"])
	assert.Equal(t, testNow.Format(time.RFC3339), body["timestamp"])

	for _, raw := range []string{``, `null`, `"x"`, `[1,2]`, `{broken`} {
		_, err := stampNotification(json.RawMessage(raw), testNow)
		assert.ErrorIs(t, err, realtime.ErrNotificationRequired, raw)
	}
}

func TestLoanStatusType(t *testing.T) {
	assert.Equal(t, model.NotificationTypeSuccess, loanStatusType("Approved"))
	assert.Equal(t, model.NotificationTypeError, loanStatusType("rejected"))
	assert.Equal(t, model.NotificationTypeWarning, loanStatusType("under_review"))
	assert.Equal(t, model.NotificationTypeInfo, loanStatusType("submitted"))
}
