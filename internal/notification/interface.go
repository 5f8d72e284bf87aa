package notification

import (
	"context"

	"realtime-srv/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	Create(ctx context.Context, sc model.Scope, ip CreateInput) (model.Notification, error)
	Get(ctx context.Context, sc model.Scope, ip GetInput) (GetOutput, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error)
	Update(ctx context.Context, sc model.Scope, id string, ip UpdateInput) (model.Notification, error)
	MarkRead(ctx context.Context, sc model.Scope, id string) error
	MarkAllRead(ctx context.Context, sc model.Scope) (int64, error)
	Delete(ctx context.Context, sc model.Scope, id string) error
}
