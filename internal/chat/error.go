package chat

import "errors"

var (
	ErrInvalidMessage = errors.New("invalid chat message")
	ErrInvalidRoom    = errors.New("invalid room id")
	ErrInvalidDate    = errors.New("invalid date")
)
