package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/aarondl/sqlboiler/v4/queries"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification/repository"
	"realtime-srv/pkg/paginator"
	postgresPkg "realtime-srv/pkg/postgre"
)

const (
	insertNotification = `INSERT INTO notifications
	(id, citizen_id, header, content, type, is_global, is_read, icon, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	RETURNING id, citizen_id, header, content, type, is_global, is_read, icon, created_at, updated_at`

	markOneRead = `UPDATE notifications SET is_read = TRUE, updated_at = $1
	WHERE id = $2 AND is_read = FALSE`

	markOneReadOwned = `UPDATE notifications SET is_read = TRUE, updated_at = $1
	WHERE id = $2 AND citizen_id = $3 AND is_read = FALSE`

	markAllRead = `UPDATE notifications SET is_read = TRUE, updated_at = $1
	WHERE citizen_id = $2 AND is_read = FALSE`

	updateNotification = `UPDATE notifications SET
	header = COALESCE($1, header),
	content = COALESCE($2, content),
	type = COALESCE($3, type),
	icon = COALESCE($4, icon),
	is_global = COALESCE($5, is_global),
	updated_at = $6
	WHERE id = $7
	RETURNING id, citizen_id, header, content, type, is_global, is_read, icon, created_at, updated_at`

	deleteNotification = `DELETE FROM notifications WHERE id = $1`
)

func (r *implRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Notification, error) {
	n := opts.Notification
	if n.ID == "" {
		n.ID = postgresPkg.NewUUID()
	} else if err := postgresPkg.IsUUID(n.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.IsUUID: %v", err)
		return model.Notification{}, err
	}

	now := r.clock()
	n.CreatedAt, n.UpdatedAt = now, now
	in := newRowFromModel(n)

	var out notificationRow
	err := queries.Raw(insertNotification,
		in.ID, in.CitizenID, in.Header, in.Content, in.Type,
		in.IsGlobal, in.IsRead, in.Icon, in.CreatedAt, in.UpdatedAt,
	).Bind(ctx, r.db, &out)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Create.Bind: %v", err)
		return model.Notification{}, err
	}

	return out.toModel(), nil
}

func (r *implRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	cntQuery := newQuery(r.buildFilterMods(opts.Filter)...)
	queries.SetCount(cntQuery)

	var total int64
	if err := cntQuery.QueryRowContext(ctx, r.db).Scan(&total); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Get.Count: %v", err)
		return nil, paginator.Paginator{}, err
	}

	var rows []notificationRow
	if err := newQuery(r.buildGetQuery(opts, opts.PaginateQuery)...).Bind(ctx, r.db, &rows); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Get.Bind: %v", err)
		return nil, paginator.Paginator{}, err
	}

	res := make([]model.Notification, len(rows))
	for i, row := range rows {
		res[i] = row.toModel()
	}

	opts.PaginateQuery.Adjust()
	pag := paginator.Paginator{
		Total:       total,
		Count:       int64(len(res)),
		PerPage:     opts.PaginateQuery.Limit,
		CurrentPage: opts.PaginateQuery.Page,
	}

	return res, pag, nil
}

func (r *implRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error) {
	mods, err := r.buildDetailQuery(ctx, id)
	if err != nil {
		return model.Notification{}, err
	}

	var row notificationRow
	if err := newQuery(mods...).Bind(ctx, r.db, &row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Detail.Bind: %v", err)
		return model.Notification{}, err
	}

	return row.toModel(), nil
}

func (r *implRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.Notification, error) {
	if err := postgresPkg.IsUUID(opts.ID); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Update.IsUUID: %v", err)
		return model.Notification{}, err
	}

	var out notificationRow
	err := queries.Raw(updateNotification, updateArgs(opts, r.clock())...).Bind(ctx, r.db, &out)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Notification{}, repository.ErrNotFound
		}
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Update.Bind: %v", err)
		return model.Notification{}, err
	}

	return out.toModel(), nil
}

func (r *implRepository) MarkRead(ctx context.Context, sc model.Scope, opts repository.MarkReadOptions) (int64, error) {
	if opts.ID != "" {
		if err := postgresPkg.IsUUID(opts.ID); err != nil {
			r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.IsUUID: %v", err)
			return 0, err
		}
	}

	var q *queries.Query
	switch {
	case opts.ID != "" && opts.CitizenID != "":
		q = queries.Raw(markOneReadOwned, r.clock(), opts.ID, opts.CitizenID)
	case opts.ID != "":
		q = queries.Raw(markOneRead, r.clock(), opts.ID)
	case opts.CitizenID != "":
		q = queries.Raw(markAllRead, r.clock(), opts.CitizenID)
	default:
		return 0, nil
	}

	res, err := q.ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.Exec: %v", err)
		return 0, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.MarkRead.RowsAffected: %v", err)
		return 0, err
	}
	return rows, nil
}

func (r *implRepository) Delete(ctx context.Context, sc model.Scope, id string) error {
	if err := postgresPkg.IsUUID(id); err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Delete.IsUUID: %v", err)
		return err
	}

	res, err := queries.Raw(deleteNotification, id).ExecContext(ctx, r.db)
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Delete.Exec: %v", err)
		return err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		r.l.Errorf(ctx, "internal.notification.repository.postgres.Delete.RowsAffected: %v", err)
		return err
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}
