package notification

import "errors"

var (
	ErrNotificationNotFound = errors.New("notification not found")
	ErrFieldRequired        = errors.New("field required")
	ErrInvalidType          = errors.New("invalid notification type")
	ErrInvalidID            = errors.New("invalid notification id")
	ErrForbidden            = errors.New("forbidden")
)
