package middleware

import (
	"realtime-srv/pkg/log"
	"realtime-srv/pkg/scope"
)

type Middleware struct {
	l               log.Logger
	jwtManager      scope.Manager
	internalKeyHash string
}

// New creates the middleware set. internalKeyHash is the bcrypt hash of the
// shared key other platform services send in X-Internal-Key.
func New(l log.Logger, jwtManager scope.Manager, internalKeyHash string) Middleware {
	return Middleware{
		l:               l,
		jwtManager:      jwtManager,
		internalKeyHash: internalKeyHash,
	}
}
