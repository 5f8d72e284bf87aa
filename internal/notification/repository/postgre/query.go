package postgres

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/drivers"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"realtime-srv/internal/notification/repository"
	"realtime-srv/pkg/paginator"
	postgresPkg "realtime-srv/pkg/postgre"
)

var dialect = drivers.Dialect{
	LQ:                   '"',
	RQ:                   '"',
	UseIndexPlaceholders: true,
	UseDefaultKeyword:    true,
}

func newQuery(mods ...qm.QueryMod) *queries.Query {
	q := &queries.Query{}
	queries.SetDialect(q, &dialect)
	qm.Apply(q, mods...)
	return q
}

func (r *implRepository) buildFilterMods(f repository.Filter) []qm.QueryMod {
	mods := []qm.QueryMod{
		qm.From(tableNotifications),
	}

	if f.CitizenID != "" {
		if f.IncludeGlobal {
			mods = append(mods, qm.Expr(
				qm.Where(columnCitizenID+" = ?", f.CitizenID),
				qm.Or(columnIsGlobal+" = ?", true),
			))
		} else {
			mods = append(mods, qm.Where(columnCitizenID+" = ?", f.CitizenID))
		}
	}
	if f.IsGlobal != nil {
		mods = append(mods, qm.Where(columnIsGlobal+" = ?", *f.IsGlobal))
	}
	if f.Unread {
		mods = append(mods, qm.Where(columnIsRead+" = ?", false))
	}

	return mods
}

func (r *implRepository) buildGetQuery(opts repository.GetOptions, pq paginator.PaginateQuery) []qm.QueryMod {
	mods := r.buildFilterMods(opts.Filter)

	pq.Adjust()
	mods = append(mods,
		qm.Limit(int(pq.Limit)),
		qm.Offset(int(pq.Offset())),
		qm.OrderBy(columnCreatedAt+" DESC"),
	)
	return mods
}

func (r *implRepository) buildDetailQuery(ctx context.Context, id string) ([]qm.QueryMod, error) {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.buildDetailQuery.IsUUID: %v", err)
		return nil, err
	}

	return []qm.QueryMod{
		qm.From(tableNotifications),
		qm.Where(columnID+" = ?", id),
	}, nil
}

// updateArgs orders the arguments of updateNotification. Nil fields bind as
// NULL so COALESCE keeps the stored value.
func updateArgs(opts repository.UpdateOptions, now time.Time) []any {
	return []any{
		null.StringFromPtr(opts.Header),
		null.StringFromPtr(opts.Content),
		null.StringFromPtr(opts.Type),
		null.StringFromPtr(opts.Icon),
		null.BoolFromPtr(opts.IsGlobal),
		now,
		opts.ID,
	}
}
