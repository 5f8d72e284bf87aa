package postgres

import "errors"

// ErrInvalidUUID is wrapped by IsUUID with the reason the id was rejected.
var ErrInvalidUUID = errors.New("invalid UUID")
