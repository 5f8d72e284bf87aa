package usecase

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/model"
	"realtime-srv/internal/realtime"
)

func lastError(t *testing.T, p *fakePeer, event string) string {
	t.Helper()
	frames := p.received(event)
	require.NotEmpty(t, frames, "no %s frame", event)
	return decodeData[realtime.ErrorPayload](t, frames[len(frames)-1]).Error
}

func TestRouteUnknownEvent(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	b := connect(t, h, "b", "")

	dispatch(t, h, a, "launch_rockets", map[string]string{})

	assert.Equal(t, "unknown event: launch_rockets", lastError(t, a, realtime.EventError))
	assert.Equal(t, 0, b.total())
}

func TestRouteRequiresIdentity(t *testing.T) {
	tests := map[string]struct {
		event      string
		data       any
		errorEvent string
	}{
		"join_room":          {realtime.EventJoinRoom, "lobby", realtime.EventRoomJoinError},
		"leave_room":         {realtime.EventLeaveRoom, "lobby", realtime.EventRoomLeaveError},
		"send_message":       {realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby", Message: "hi"}, realtime.EventMessageError},
		"typing_start":       {realtime.EventTypingStart, realtime.TypingPayload{RoomID: "lobby"}, realtime.EventError},
		"loan_status_update": {realtime.EventLoanStatusUpdate, realtime.LoanStatusPayload{TargetUserID: "u", LoanID: "l", Status: "approved"}, realtime.EventLoanStatusError},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHub()
			a := connect(t, h, "a", "")

			dispatch(t, h, a, tc.event, tc.data)

			assert.Equal(t, realtime.ErrNotIdentified.Error(), lastError(t, a, tc.errorEvent))
			assert.Equal(t, 0, h.reg.roomCount())
		})
	}
}

func TestRouteUserJoin(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	b := connect(t, h, "b", "")

	dispatch(t, h, a, realtime.EventUserJoin, realtime.Identity{UserID: "u1", Username: "one", Role: "User"})

	acks := a.received(realtime.EventUserJoined)
	require.Len(t, acks, 1)
	ack := decodeData[realtime.UserJoinedAck](t, acks[0])
	assert.True(t, ack.Success)
	assert.Equal(t, "a", ack.SocketID)

	// The online status reaches every connection, identified or not.
	for _, p := range []*fakePeer{a, b} {
		statuses := p.received(realtime.EventUserStatusUpdate)
		require.Len(t, statuses, 1)
		st := decodeData[realtime.UserStatus](t, statuses[0])
		assert.Equal(t, "u1", st.UserID)
		assert.Equal(t, realtime.StatusOnline, st.Status)
		assert.True(t, st.Timestamp.Equal(testNow))
	}

	id, err := h.identityOf("a")
	require.NoError(t, err)
	assert.Equal(t, realtime.Identity{UserID: "u1", Username: "one", Role: "User"}, id)

	_, err = h.identityOf("b")
	assert.ErrorIs(t, err, realtime.ErrUserNotFound)
}

func TestRouteUserJoinInvalidPayload(t *testing.T) {
	tests := map[string]json.RawMessage{
		"missing data":     nil,
		"not an object":    json.RawMessage(`"u1"`),
		"missing username": json.RawMessage(`{"userId":"u1"}`),
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			h := newTestHub()
			a := connect(t, h, "a", "")
			b := connect(t, h, "b", "")

			h.route("a", realtime.Envelope{Event: realtime.EventUserJoin, Data: data})

			assert.Contains(t, lastError(t, a, realtime.EventUserJoinError), realtime.ErrInvalidPayload.Error())
			assert.Equal(t, 0, b.total())
			assert.Equal(t, 0, h.reg.identifiedCount())
		})
	}
}

func TestRouteReidentify(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	b := connect(t, h, "b", "")
	join(t, h, a, "u1", b)

	dispatch(t, h, a, realtime.EventUserJoin, realtime.Identity{UserID: "u1", Username: "renamed"})
	assert.Empty(t, b.received(realtime.EventUserStatusUpdate))

	dispatch(t, h, a, realtime.EventUserJoin, realtime.Identity{UserID: "u2", Username: "two"})
	statuses := b.received(realtime.EventUserStatusUpdate)
	require.Len(t, statuses, 2)
	first := decodeData[realtime.UserStatus](t, statuses[0])
	second := decodeData[realtime.UserStatus](t, statuses[1])
	assert.Equal(t, realtime.UserStatus{UserID: "u1", Status: realtime.StatusOffline, Timestamp: first.Timestamp}, first)
	assert.Equal(t, "u2", second.UserID)
	assert.Equal(t, realtime.StatusOnline, second.Status)

	assert.Equal(t, 0, h.sendToUser("u1", realtime.EventNotification, map[string]string{}))
	assert.Equal(t, 1, h.sendToUser("u2", realtime.EventNotification, map[string]string{}))
	assert.Equal(t, 1, h.reg.identifiedCount())
}

func TestRouteRoomErrors(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	join(t, h, a, "u1")

	dispatch(t, h, a, realtime.EventJoinRoom, realtime.PrivateRoom("u2"))
	assert.Contains(t, lastError(t, a, realtime.EventRoomJoinError), realtime.ErrReservedRoom.Error())

	dispatch(t, h, a, realtime.EventLeaveRoom, realtime.PrivateRoom("u1"))
	assert.Contains(t, lastError(t, a, realtime.EventRoomLeaveError), realtime.ErrReservedRoom.Error())

	dispatch(t, h, a, realtime.EventJoinRoom, map[string]string{"roomId": "  "})
	assert.Contains(t, lastError(t, a, realtime.EventRoomJoinError), "roomId is required")

	dispatch(t, h, a, realtime.EventJoinRoom, strings.Repeat("r", maxRoomIDLength+1))
	assert.Contains(t, lastError(t, a, realtime.EventRoomJoinError), "roomId is too long")

	assert.Equal(t, 0, h.reg.roomCount())
	assert.Len(t, h.reg.sessions["a"].rooms, 1)
}

func TestRouteLeaveRoomNotJoinedIsAcked(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	join(t, h, a, "u1")

	dispatch(t, h, a, realtime.EventLeaveRoom, "lobby")

	acks := a.received(realtime.EventRoomLeft)
	require.Len(t, acks, 1)
	assert.Equal(t, "lobby", decodeData[realtime.RoomAck](t, acks[0]).RoomID)
	assert.Empty(t, a.received(realtime.EventRoomLeaveError))
}

func TestRouteSendMessageErrors(t *testing.T) {
	h := newTestHub()
	h.maxMessageLen = 5
	a := connect(t, h, "a", "")
	join(t, h, a, "u1")

	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby", Message: "hi"})
	assert.Contains(t, lastError(t, a, realtime.EventMessageError), realtime.ErrNotInRoom.Error())

	dispatch(t, h, a, realtime.EventJoinRoom, "lobby")
	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby", Message: "hello!"})
	assert.Contains(t, lastError(t, a, realtime.EventMessageError), realtime.ErrMessageTooLong.Error())

	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby"})
	assert.Contains(t, lastError(t, a, realtime.EventMessageError), "message is required")

	// Length counts characters, not bytes.
	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby", Message: "đừng"})
	require.Len(t, a.received(realtime.EventNewMessage), 1)
}

func TestRouteSendMessageCustomType(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	join(t, h, a, "u1")
	dispatch(t, h, a, realtime.EventJoinRoom, "lobby")

	var archived []string
	done := make(chan struct{}, 1)
	h.onMessage = func(msg model.ChatMessage) {
		archived = append(archived, msg.MessageType)
		done <- struct{}{}
	}

	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "lobby", Message: "file.pdf", MessageType: "file"})
	<-done

	msgs := a.received(realtime.EventNewMessage)
	require.Len(t, msgs, 1)
	assert.Equal(t, "file", decodeData[map[string]any](t, msgs[0])["messageType"])
	assert.Equal(t, []string{"file"}, archived)
}

func TestRouteTypingRequiresMembership(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	join(t, h, a, "u1")

	dispatch(t, h, a, realtime.EventTypingStart, realtime.TypingPayload{RoomID: "lobby"})

	assert.Contains(t, lastError(t, a, realtime.EventError), realtime.ErrNotInRoom.Error())
}

func TestRoutePaddedRoomIDIsTrimmedEverywhere(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	b := connect(t, h, "b", "")
	join(t, h, a, "u1", b)
	join(t, h, b, "u2", a)

	dispatch(t, h, a, realtime.EventJoinRoom, " lobby ")
	dispatch(t, h, b, realtime.EventJoinRoom, map[string]string{"roomId": "lobby"})
	require.Len(t, a.received(realtime.EventRoomJoined), 1)
	require.Len(t, b.received(realtime.EventRoomJoined), 1)
	a.reset()
	b.reset()

	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: " lobby ", Message: "hi"})
	dispatch(t, h, a, realtime.EventTypingStart, realtime.TypingPayload{RoomID: " lobby "})

	assert.Empty(t, a.received(realtime.EventMessageError))
	assert.Empty(t, a.received(realtime.EventError))
	for _, p := range []*fakePeer{a, b} {
		frames := p.received(realtime.EventNewMessage)
		require.Len(t, frames, 1)
		assert.Equal(t, "lobby", decodeData[model.ChatMessage](t, frames[0]).RoomID)
	}
	typing := b.received(realtime.EventUserTypingStart)
	require.Len(t, typing, 1)
	assert.Equal(t, "lobby", decodeData[realtime.TypingEvent](t, typing[0]).RoomID)

	dispatch(t, h, a, realtime.EventSendMessage, realtime.SendMessagePayload{RoomID: "   ", Message: "hi"})
	assert.Contains(t, lastError(t, a, realtime.EventMessageError), "roomId is required")
}

func TestRouteLoanStatusUpdate(t *testing.T) {
	h := newTestHub()
	officer := connect(t, h, "officer", "")
	student := connect(t, h, "student", "")
	other := connect(t, h, "other", "")
	join(t, h, officer, "officer-1")
	join(t, h, student, "student-1", officer)
	join(t, h, other, "student-2", officer, student)

	dispatch(t, h, officer, realtime.EventLoanStatusUpdate, realtime.LoanStatusPayload{
		TargetUserID: "student-1",
		LoanID:       "loan-9",
		Status:       "approved",
	})

	frames := student.received(realtime.EventLoanNotification)
	require.Len(t, frames, 1)
	n := decodeData[realtime.LoanNotification](t, frames[0])
	assert.Equal(t, "loan-9", n.LoanID)
	assert.Equal(t, "approved", n.Status)
	assert.Equal(t, "Loan application approved", n.Message)

	assert.Empty(t, officer.received(realtime.EventLoanNotification))
	assert.Empty(t, other.received(realtime.EventLoanNotification))
}

func TestRouteDropsEventsOfRemovedConnection(t *testing.T) {
	h := newTestHub()
	a := connect(t, h, "a", "")
	h.disconnect("a")

	assert.NotPanics(t, func() {
		dispatch(t, h, a, realtime.EventUserJoin, realtime.Identity{UserID: "u1", Username: "one"})
	})
	assert.Equal(t, 0, h.reg.identifiedCount())
}

func TestDecodeRoom(t *testing.T) {
	tests := map[string]struct {
		data    string
		want    string
		wantErr bool
	}{
		"bare string":  {data: `"lobby"`, want: "lobby"},
		"object":       {data: `{"roomId":"loan-42"}`, want: "loan-42"},
		"trimmed":      {data: `" lobby "`, want: "lobby"},
		"empty":        {data: ``, wantErr: true},
		"empty object": {data: `{}`, wantErr: true},
		"wrong type":   {data: `42`, wantErr: true},
		"invalid json": {data: `{"roomId":`, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := decodeRoom(json.RawMessage(tc.data))
			if tc.wantErr {
				assert.ErrorIs(t, err, realtime.ErrInvalidPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
