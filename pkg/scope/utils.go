package scope

import (
	"context"

	"realtime-srv/internal/model"
)

type ctxKey int

const (
	payloadKey ctxKey = iota
	scopeKey
)

// SetPayloadToContext stores the verified payload and the scope derived from it.
func SetPayloadToContext(ctx context.Context, payload Payload) context.Context {
	ctx = context.WithValue(ctx, payloadKey, payload)
	return context.WithValue(ctx, scopeKey, NewScope(payload))
}

func GetPayloadFromContext(ctx context.Context) (Payload, bool) {
	payload, ok := ctx.Value(payloadKey).(Payload)
	return payload, ok
}

// GetScopeFromContext reports false on routes that did not run Auth.
func GetScopeFromContext(ctx context.Context) (model.Scope, bool) {
	sc, ok := ctx.Value(scopeKey).(model.Scope)
	return sc, ok
}
