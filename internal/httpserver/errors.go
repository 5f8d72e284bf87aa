package httpserver

import "errors"

var (
	errRedisUnavailable    = errors.New("Redis connection not available")
	errPostgresUnavailable = errors.New("PostgreSQL connection not available")
)
