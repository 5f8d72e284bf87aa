package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification/repository"
	"realtime-srv/pkg/paginator"
)

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

func TestBuildGetQuery_CitizenWithGlobal(t *testing.T) {
	r := New(nopLogger{}, nil)

	q := newQuery(r.buildGetQuery(repository.GetOptions{
		Filter: repository.Filter{CitizenID: "0123456789", IncludeGlobal: true, Unread: true},
	}, paginator.PaginateQuery{Page: 2, Limit: 10})...)

	sql, args := queries.BuildQuery(q)
	assert.Contains(t, sql, `FROM "notifications"`)
	assert.Contains(t, sql, `citizen_id = $1`)
	assert.Contains(t, sql, " OR ")
	assert.Contains(t, sql, `is_global = $2`)
	assert.Contains(t, sql, `is_read = $3`)
	assert.Contains(t, sql, `ORDER BY created_at DESC`)
	assert.Contains(t, sql, `LIMIT 10`)
	assert.Contains(t, sql, `OFFSET 10`)
	assert.Equal(t, []any{"0123456789", true, false}, args)
}

func TestBuildFilterMods_Count(t *testing.T) {
	r := New(nopLogger{}, nil)
	global := true

	q := newQuery(r.buildFilterMods(repository.Filter{IsGlobal: &global})...)
	queries.SetCount(q)

	sql, args := queries.BuildQuery(q)
	assert.Contains(t, sql, `COUNT(*)`)
	assert.Contains(t, sql, `is_global = $1`)
	assert.NotContains(t, sql, "LIMIT")
	assert.Equal(t, []any{true}, args)
}

func TestBuildDetailQuery_InvalidID(t *testing.T) {
	r := New(nopLogger{}, nil)

	_, err := r.buildDetailQuery(context.Background(), "not-a-uuid")
	assert.Error(t, err)
}

func TestRowRoundTrip(t *testing.T) {
	citizen := "0123456789"
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	n := model.Notification{
		ID: "3f2a3c6e-4a55-4b53-9a43-6f3d3f1c2b11", CitizenID: &citizen,
		Header: "Loan approved", Content: "Your loan L1 was approved", Type: model.NotificationTypeSuccess,
		CreatedAt: now, UpdatedAt: now,
	}

	row := newRowFromModel(n)
	assert.Equal(t, null.StringFrom(citizen), row.CitizenID)
	assert.Equal(t, n, row.toModel())

	global := newRowFromModel(model.Notification{IsGlobal: true})
	assert.False(t, global.CitizenID.Valid)
	require.Nil(t, global.toModel().CitizenID)
}

func TestUpdateArgs(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	header := "Loan disbursed"
	global := true

	args := updateArgs(repository.UpdateOptions{
		ID:       "3f2a3c6e-4a55-4b53-9a43-6f3d3f1c2b11",
		Header:   &header,
		IsGlobal: &global,
	}, now)

	require.Len(t, args, 7)
	assert.Equal(t, null.StringFrom(header), args[0])
	assert.False(t, args[1].(null.String).Valid)
	assert.False(t, args[2].(null.String).Valid)
	assert.False(t, args[3].(null.String).Valid)
	assert.Equal(t, null.BoolFrom(true), args[4])
	assert.Equal(t, now, args[5])
	assert.Equal(t, "3f2a3c6e-4a55-4b53-9a43-6f3d3f1c2b11", args[6])
}

func TestUpdateRejectsInvalidID(t *testing.T) {
	r := New(nopLogger{}, nil)

	_, err := r.Update(context.Background(), model.Scope{}, repository.UpdateOptions{ID: "nope"})
	assert.Error(t, err)
}
