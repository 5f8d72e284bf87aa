package realtime

import "errors"

var (
	// ErrHubClosed is returned when the event loop has stopped
	ErrHubClosed = errors.New("hub is closed")

	// ErrConnectionNotFound is returned when a connection id is not registered
	ErrConnectionNotFound = errors.New("connection not found")

	// ErrUserNotFound is returned when no identity is bound to a connection
	ErrUserNotFound = errors.New("user not found")

	// ErrNotIdentified is returned for events that require user_join first
	ErrNotIdentified = errors.New("user_join required before this event")

	// ErrInvalidPayload is returned when an event payload cannot be decoded
	ErrInvalidPayload = errors.New("invalid payload")

	// ErrUnknownEvent is returned for unsupported event names
	ErrUnknownEvent = errors.New("unknown event")

	// ErrRateLimited is returned when a connection sends events too fast
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrMaxConnectionsReached is returned when max connections limit is reached
	ErrMaxConnectionsReached = errors.New("maximum connections reached")

	// ErrReservedRoom is returned when a client joins or leaves a private user room
	ErrReservedRoom = errors.New("room is reserved")

	// ErrNotInRoom is returned when a client sends to a room it has not joined
	ErrNotInRoom = errors.New("not a member of room")

	// ErrMessageTooLong is returned when a chat message exceeds the configured length
	ErrMessageTooLong = errors.New("message too long")

	// ErrMissingField is returned when a required input field is empty
	ErrMissingField = errors.New("missing required field")

	// ErrNotificationRequired is returned when an admin call carries no notification object
	ErrNotificationRequired = errors.New("notification must be a JSON object")
)
