package usecase

import (
	"context"
	"errors"
	"strings"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/notification/repository"
	postgresPkg "realtime-srv/pkg/postgre"
)

func (uc *usecase) Create(ctx context.Context, sc model.Scope, ip notification.CreateInput) (model.Notification, error) {
	if !sc.IsAdmin() {
		return model.Notification{}, notification.ErrForbidden
	}

	ip.Header = strings.TrimSpace(ip.Header)
	ip.Content = strings.TrimSpace(ip.Content)
	if ip.Header == "" || ip.Content == "" {
		return model.Notification{}, notification.ErrFieldRequired
	}
	if !ip.IsGlobal && ip.CitizenID == "" {
		return model.Notification{}, notification.ErrFieldRequired
	}
	if ip.Type == "" {
		ip.Type = model.NotificationTypeInfo
	}
	if !model.IsValidNotificationType(ip.Type) {
		return model.Notification{}, notification.ErrInvalidType
	}

	n := model.Notification{
		Header:   ip.Header,
		Content:  ip.Content,
		Type:     ip.Type,
		IsGlobal: ip.IsGlobal,
		Icon:     ip.Icon,
	}
	if !ip.IsGlobal {
		citizen := ip.CitizenID
		n.CitizenID = &citizen
	}

	created, err := uc.repo.Create(ctx, sc, repository.CreateOptions{Notification: n})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Create.repo.Create: %v", err)
		return model.Notification{}, err
	}
	return created, nil
}

// Get lists notifications newest first. Non-admin callers only see their own
// notifications and global ones.
func (uc *usecase) Get(ctx context.Context, sc model.Scope, ip notification.GetInput) (notification.GetOutput, error) {
	filter := repository.Filter{
		CitizenID: ip.Filter.CitizenID,
		IsGlobal:  ip.Filter.IsGlobal,
		Unread:    ip.Filter.Unread,
	}
	if !sc.IsAdmin() {
		filter.CitizenID = sc.UserID
		filter.IncludeGlobal = ip.Filter.IsGlobal == nil
	}

	ns, pag, err := uc.repo.Get(ctx, sc, repository.GetOptions{
		Filter:        filter,
		PaginateQuery: ip.PaginateQuery,
	})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.Get.repo.Get: %v", err)
		return notification.GetOutput{}, err
	}

	return notification.GetOutput{
		Notifications: ns,
		Paginator:     pag,
	}, nil
}

func (uc *usecase) Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error) {
	if !postgresPkg.IsValidUUID(id) {
		return model.Notification{}, notification.ErrInvalidID
	}

	n, err := uc.repo.Detail(ctx, sc, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Notification{}, notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.Detail.repo.Detail: %v", err)
		return model.Notification{}, err
	}

	if !canRead(sc, n) {
		return model.Notification{}, notification.ErrNotificationNotFound
	}
	return n, nil
}

// Update edits an existing notification. Admin only. A notification can only
// stop being global when it already targets a citizen.
func (uc *usecase) Update(ctx context.Context, sc model.Scope, id string, ip notification.UpdateInput) (model.Notification, error) {
	if !sc.IsAdmin() {
		return model.Notification{}, notification.ErrForbidden
	}
	if ip.Header == nil && ip.Content == nil && ip.Type == nil && ip.Icon == nil && ip.IsGlobal == nil {
		return model.Notification{}, notification.ErrFieldRequired
	}

	opts := repository.UpdateOptions{ID: id, Icon: ip.Icon, IsGlobal: ip.IsGlobal}
	for _, f := range []struct {
		in  *string
		out **string
	}{{ip.Header, &opts.Header}, {ip.Content, &opts.Content}} {
		if f.in == nil {
			continue
		}
		v := strings.TrimSpace(*f.in)
		if v == "" {
			return model.Notification{}, notification.ErrFieldRequired
		}
		*f.out = &v
	}
	if ip.Type != nil && !model.IsValidNotificationType(*ip.Type) {
		return model.Notification{}, notification.ErrInvalidType
	}
	opts.Type = ip.Type

	current, err := uc.Detail(ctx, sc, id)
	if err != nil {
		return model.Notification{}, err
	}
	if ip.IsGlobal != nil && !*ip.IsGlobal && current.CitizenID == nil {
		return model.Notification{}, notification.ErrFieldRequired
	}

	updated, err := uc.repo.Update(ctx, sc, opts)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.Notification{}, notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.Update.repo.Update: %v", err)
		return model.Notification{}, err
	}
	return updated, nil
}

func (uc *usecase) MarkRead(ctx context.Context, sc model.Scope, id string) error {
	if !postgresPkg.IsValidUUID(id) {
		return notification.ErrInvalidID
	}

	opts := repository.MarkReadOptions{ID: id}
	if !sc.IsAdmin() {
		opts.CitizenID = sc.UserID
	}

	rows, err := uc.repo.MarkRead(ctx, sc, opts)
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkRead.repo.MarkRead: %v", err)
		return err
	}
	if rows > 0 {
		return nil
	}

	// Nothing changed: either already read or not visible to the caller.
	if _, err := uc.Detail(ctx, sc, id); err != nil {
		return err
	}
	return nil
}

func (uc *usecase) MarkAllRead(ctx context.Context, sc model.Scope) (int64, error) {
	if sc.UserID == "" {
		return 0, notification.ErrFieldRequired
	}

	rows, err := uc.repo.MarkRead(ctx, sc, repository.MarkReadOptions{CitizenID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "internal.notification.usecase.MarkAllRead.repo.MarkRead: %v", err)
		return 0, err
	}
	return rows, nil
}

func (uc *usecase) Delete(ctx context.Context, sc model.Scope, id string) error {
	n, err := uc.Detail(ctx, sc, id)
	if err != nil {
		return err
	}
	if !sc.IsAdmin() && !sc.Owns(n.CitizenID) {
		return notification.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, sc, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notification.ErrNotificationNotFound
		}
		uc.l.Errorf(ctx, "internal.notification.usecase.Delete.repo.Delete: %v", err)
		return err
	}
	return nil
}

func canRead(sc model.Scope, n model.Notification) bool {
	if sc.IsAdmin() || n.IsGlobal {
		return true
	}
	return sc.Owns(n.CitizenID)
}
