package redis

import "errors"

// Config errors returned by New before any network call.
var (
	ErrHostRequired = errors.New("redis: host is required")
	ErrInvalidPort  = errors.New("redis: invalid port")
	ErrInvalidDB    = errors.New("redis: db must be between 0 and 15")
)
