package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/internal/notification/repository"
	"realtime-srv/pkg/paginator"
)

const testID = "3f2a3c6e-4a55-4b53-9a43-6f3d3f1c2b11"

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) Create(ctx context.Context, sc model.Scope, opts repository.CreateOptions) (model.Notification, error) {
	args := m.Called(ctx, sc, opts)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *mockRepository) Get(ctx context.Context, sc model.Scope, opts repository.GetOptions) ([]model.Notification, paginator.Paginator, error) {
	args := m.Called(ctx, sc, opts)
	return args.Get(0).([]model.Notification), args.Get(1).(paginator.Paginator), args.Error(2)
}

func (m *mockRepository) Detail(ctx context.Context, sc model.Scope, id string) (model.Notification, error) {
	args := m.Called(ctx, sc, id)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *mockRepository) Update(ctx context.Context, sc model.Scope, opts repository.UpdateOptions) (model.Notification, error) {
	args := m.Called(ctx, sc, opts)
	return args.Get(0).(model.Notification), args.Error(1)
}

func (m *mockRepository) MarkRead(ctx context.Context, sc model.Scope, opts repository.MarkReadOptions) (int64, error) {
	args := m.Called(ctx, sc, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) Delete(ctx context.Context, sc model.Scope, id string) error {
	return m.Called(ctx, sc, id).Error(0)
}

type nopLogger struct{}

func (nopLogger) Debug(ctx context.Context, arg ...any)                    {}
func (nopLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Info(ctx context.Context, arg ...any)                     {}
func (nopLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Warn(ctx context.Context, arg ...any)                     {}
func (nopLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (nopLogger) Error(ctx context.Context, arg ...any)                    {}
func (nopLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (nopLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (nopLogger) Panic(ctx context.Context, arg ...any)                    {}
func (nopLogger) Panicf(ctx context.Context, template string, arg ...any)  {}
func (nopLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (nopLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}

var (
	adminScope = model.Scope{UserID: "admin-1", Role: model.RoleAdmin}
	userScope  = model.Scope{UserID: "0123456789", Role: model.RoleUser}
)

func strPtr(s string) *string { return &s }

func TestCreate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		sc      model.Scope
		input   notification.CreateInput
		wantErr error
	}{
		{"non admin", userScope, notification.CreateInput{CitizenID: "1", Header: "h", Content: "c"}, notification.ErrForbidden},
		{"missing header", adminScope, notification.CreateInput{CitizenID: "1", Content: "c"}, notification.ErrFieldRequired},
		{"missing target", adminScope, notification.CreateInput{Header: "h", Content: "c"}, notification.ErrFieldRequired},
		{"bad type", adminScope, notification.CreateInput{CitizenID: "1", Header: "h", Content: "c", Type: "loud"}, notification.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{}
			uc := New(nopLogger{}, repo)

			_, err := uc.Create(ctx, tt.sc, tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("targeted defaults to info", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)

		repo.On("Create", ctx, adminScope, mock.MatchedBy(func(opts repository.CreateOptions) bool {
			n := opts.Notification
			return n.Type == model.NotificationTypeInfo && n.CitizenID != nil && *n.CitizenID == "0123456789" && !n.IsGlobal
		})).Return(model.Notification{ID: testID}, nil)

		got, err := uc.Create(ctx, adminScope, notification.CreateInput{CitizenID: "0123456789", Header: " Hi ", Content: "there"})
		require.NoError(t, err)
		assert.Equal(t, testID, got.ID)
		repo.AssertExpectations(t)
	})

	t.Run("global drops citizen", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)

		repo.On("Create", ctx, adminScope, mock.MatchedBy(func(opts repository.CreateOptions) bool {
			return opts.Notification.IsGlobal && opts.Notification.CitizenID == nil
		})).Return(model.Notification{ID: testID, IsGlobal: true}, nil)

		_, err := uc.Create(ctx, adminScope, notification.CreateInput{CitizenID: "ignored", IsGlobal: true, Header: "h", Content: "c"})
		require.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestGet_UserScopeForcesOwnFilter(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	uc := New(nopLogger{}, repo)

	repo.On("Get", ctx, userScope, repository.GetOptions{
		Filter:        repository.Filter{CitizenID: userScope.UserID, IncludeGlobal: true, Unread: true},
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: 5},
	}).Return([]model.Notification{{ID: testID}}, paginator.Paginator{Total: 1, Count: 1}, nil)

	out, err := uc.Get(ctx, userScope, notification.GetInput{
		Filter:        notification.Filter{CitizenID: "someone-else", Unread: true},
		PaginateQuery: paginator.PaginateQuery{Page: 1, Limit: 5},
	})
	require.NoError(t, err)
	assert.Len(t, out.Notifications, 1)
	assert.Equal(t, int64(1), out.Paginator.Total)
	repo.AssertExpectations(t)
}

func TestDetail_HidesOtherCitizens(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	uc := New(nopLogger{}, repo)

	repo.On("Detail", ctx, userScope, testID).Return(model.Notification{ID: testID, CitizenID: strPtr("other")}, nil)

	_, err := uc.Detail(ctx, userScope, testID)
	assert.ErrorIs(t, err, notification.ErrNotificationNotFound)

	_, err = uc.Detail(ctx, userScope, "bad-id")
	assert.ErrorIs(t, err, notification.ErrInvalidID)
}

func boolPtr(b bool) *bool { return &b }

func TestUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			sc      model.Scope
			input   notification.UpdateInput
			wantErr error
		}{
			{"non admin", userScope, notification.UpdateInput{Header: strPtr("h")}, notification.ErrForbidden},
			{"no fields", adminScope, notification.UpdateInput{}, notification.ErrFieldRequired},
			{"blank content", adminScope, notification.UpdateInput{Content: strPtr("  ")}, notification.ErrFieldRequired},
			{"bad type", adminScope, notification.UpdateInput{Type: strPtr("loud")}, notification.ErrInvalidType},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				repo := &mockRepository{}
				uc := New(nopLogger{}, repo)

				_, err := uc.Update(ctx, tt.sc, testID, tt.input)
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("trims and updates", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		want := model.Notification{ID: testID, CitizenID: strPtr("0123456789"), Header: "Loan approved", Type: model.NotificationTypeSuccess}
		repo.On("Detail", ctx, adminScope, testID).Return(model.Notification{ID: testID, CitizenID: strPtr("0123456789")}, nil)
		repo.On("Update", ctx, adminScope, repository.UpdateOptions{
			ID:       testID,
			Header:   strPtr("Loan approved"),
			Type:     strPtr(model.NotificationTypeSuccess),
			IsGlobal: boolPtr(false),
		}).Return(want, nil)

		got, err := uc.Update(ctx, adminScope, testID, notification.UpdateInput{
			Header:   strPtr("  Loan approved "),
			Type:     strPtr(model.NotificationTypeSuccess),
			IsGlobal: boolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, want, got)
		repo.AssertExpectations(t)
	})

	t.Run("global without citizen cannot become private", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("Detail", ctx, adminScope, testID).Return(model.Notification{ID: testID, IsGlobal: true}, nil)

		_, err := uc.Update(ctx, adminScope, testID, notification.UpdateInput{IsGlobal: boolPtr(false)})
		assert.ErrorIs(t, err, notification.ErrFieldRequired)
		repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("Detail", ctx, adminScope, testID).Return(model.Notification{}, repository.ErrNotFound)

		_, err := uc.Update(ctx, adminScope, testID, notification.UpdateInput{Icon: strPtr("bell")})
		assert.ErrorIs(t, err, notification.ErrNotificationNotFound)
	})
}

func TestMarkRead(t *testing.T) {
	ctx := context.Background()

	t.Run("owned", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("MarkRead", ctx, userScope, repository.MarkReadOptions{ID: testID, CitizenID: userScope.UserID}).Return(int64(1), nil)

		require.NoError(t, uc.MarkRead(ctx, userScope, testID))
		repo.AssertExpectations(t)
	})

	t.Run("nothing updated and missing", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("MarkRead", ctx, userScope, mock.Anything).Return(int64(0), nil)
		repo.On("Detail", ctx, userScope, testID).Return(model.Notification{}, repository.ErrNotFound)

		assert.ErrorIs(t, uc.MarkRead(ctx, userScope, testID), notification.ErrNotificationNotFound)
	})

	t.Run("already read", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("MarkRead", ctx, userScope, mock.Anything).Return(int64(0), nil)
		repo.On("Detail", ctx, userScope, testID).Return(model.Notification{ID: testID, CitizenID: strPtr(userScope.UserID), IsRead: true}, nil)

		assert.NoError(t, uc.MarkRead(ctx, userScope, testID))
	})
}

func TestMarkAllRead(t *testing.T) {
	ctx := context.Background()
	repo := &mockRepository{}
	uc := New(nopLogger{}, repo)
	repo.On("MarkRead", ctx, userScope, repository.MarkReadOptions{CitizenID: userScope.UserID}).Return(int64(4), nil)

	n, err := uc.MarkAllRead(ctx, userScope)
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
}

func TestDelete(t *testing.T) {
	ctx := context.Background()

	t.Run("user cannot delete global", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("Detail", ctx, userScope, testID).Return(model.Notification{ID: testID, IsGlobal: true}, nil)

		assert.ErrorIs(t, uc.Delete(ctx, userScope, testID), notification.ErrForbidden)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("admin deletes", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		repo.On("Detail", ctx, adminScope, testID).Return(model.Notification{ID: testID, IsGlobal: true}, nil)
		repo.On("Delete", ctx, adminScope, testID).Return(nil)

		assert.NoError(t, uc.Delete(ctx, adminScope, testID))
		repo.AssertExpectations(t)
	})

	t.Run("repo error", func(t *testing.T) {
		repo := &mockRepository{}
		uc := New(nopLogger{}, repo)
		boom := errors.New("db down")
		repo.On("Detail", ctx, adminScope, testID).Return(model.Notification{}, boom)

		assert.ErrorIs(t, uc.Delete(ctx, adminScope, testID), boom)
	})
}
