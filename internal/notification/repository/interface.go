package repository

import (
	"context"

	"realtime-srv/internal/model"
	"realtime-srv/pkg/paginator"
)

//go:generate mockery --name Repository
type Repository interface {
	Create(ctx context.Context, sc model.Scope, opts CreateOptions) (model.Notification, error)
	Get(ctx context.Context, sc model.Scope, opts GetOptions) ([]model.Notification, paginator.Paginator, error)
	Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error)
	Update(ctx context.Context, sc model.Scope, opts UpdateOptions) (model.Notification, error)
	MarkRead(ctx context.Context, sc model.Scope, opts MarkReadOptions) (int64, error)
	Delete(ctx context.Context, sc model.Scope, id string) error
}
