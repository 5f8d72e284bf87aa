package chat

import (
	"context"

	"realtime-srv/internal/model"
)

// UseCase archives finalized room messages and reads them back.
//
//go:generate mockery --name UseCase
type UseCase interface {
	Save(ctx context.Context, msg model.ChatMessage) error
	List(ctx context.Context, sc model.Scope, ip ListInput) (ListOutput, error)
}
