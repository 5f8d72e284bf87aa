package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/model"
	"realtime-srv/internal/notification"
	"realtime-srv/pkg/log"
	"realtime-srv/pkg/scope"
)

// updateUseCase only implements Update; any other call panics.
type updateUseCase struct {
	notification.UseCase
	id    string
	input notification.UpdateInput
	err   error
}

func (u *updateUseCase) Update(ctx context.Context, sc model.Scope, id string, ip notification.UpdateInput) (model.Notification, error) {
	u.id, u.input = id, ip
	if u.err != nil {
		return model.Notification{}, u.err
	}
	header := ""
	if ip.Header != nil {
		header = *ip.Header
	}
	return model.Notification{ID: id, Header: header, IsGlobal: true}, nil
}

func newUpdateRouter(uc notification.UseCase) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(log.Nop(), uc, nil)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := scope.SetPayloadToContext(c.Request.Context(), scope.Payload{UserID: "admin-1", Role: model.RoleAdmin})
		c.Request = c.Request.WithContext(ctx)
	})
	r.PATCH("/notifications/:id", h.Update)
	return r
}

func patch(t *testing.T, r *gin.Engine, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec.Code, out
}

func TestUpdate(t *testing.T) {
	const id = "3f2a3c6e-4a55-4b53-9a43-6f3d3f1c2b11"

	t.Run("partial body", func(t *testing.T) {
		uc := &updateUseCase{}
		code, out := patch(t, newUpdateRouter(uc), "/notifications/"+id, `{"header":"Loan disbursed","is_global":true}`)

		require.Equal(t, http.StatusOK, code)
		assert.Equal(t, id, uc.id)
		require.NotNil(t, uc.input.Header)
		assert.Equal(t, "Loan disbursed", *uc.input.Header)
		require.NotNil(t, uc.input.IsGlobal)
		assert.True(t, *uc.input.IsGlobal)
		assert.Nil(t, uc.input.Content)
		assert.Nil(t, uc.input.Type)

		data := out["data"].(map[string]any)
		assert.Equal(t, "Loan disbursed", data["header"])
	})

	t.Run("unknown type", func(t *testing.T) {
		code, out := patch(t, newUpdateRouter(&updateUseCase{}), "/notifications/"+id, `{"type":"loud"}`)

		assert.Equal(t, http.StatusBadRequest, code)
		assert.EqualValues(t, 20001, out["error_code"])
	})

	t.Run("not found", func(t *testing.T) {
		uc := &updateUseCase{err: notification.ErrNotificationNotFound}
		code, out := patch(t, newUpdateRouter(uc), "/notifications/"+id, `{"icon":"bell"}`)

		assert.Equal(t, http.StatusNotFound, code)
		assert.EqualValues(t, 20003, out["error_code"])
	})
}
