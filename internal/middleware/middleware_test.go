package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realtime-srv/internal/model"
	"realtime-srv/pkg/encrypter"
	"realtime-srv/pkg/scope"
)

const testSecret = "0123456789abcdef0123456789abcdef"

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

func newTestRouter(t *testing.T, keyHash string) (*gin.Engine, scope.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mgr := scope.New(testSecret)
	mw := New(nopLogger{}, mgr, keyHash)

	r := gin.New()
	r.Use(Recovery(nopLogger{}, nil))
	r.GET("/me", mw.Auth(), func(c *gin.Context) {
		sc, _ := scope.GetScopeFromContext(c.Request.Context())
		c.String(http.StatusOK, sc.UserID)
	})
	r.GET("/admin", mw.Auth(), mw.AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/internal", mw.InternalKey(), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })
	return r, mgr
}

func do(r http.Handler, method, path string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth(t *testing.T) {
	r, mgr := newTestRouter(t, "")

	token, err := mgr.CreateToken(scope.Payload{UserID: "0123456789", Role: model.RoleUser})
	require.NoError(t, err)

	w := do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer " + token})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0123456789", w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": token}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodGet, "/me", map[string]string{"Authorization": "Bearer nope"}).Code)
}

func TestAdminOnly(t *testing.T) {
	r, mgr := newTestRouter(t, "")

	user, err := mgr.CreateToken(scope.Payload{UserID: "u1", Role: model.RoleUser})
	require.NoError(t, err)
	admin, err := mgr.CreateToken(scope.Payload{UserID: "a1", Role: model.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, do(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + user}).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/admin", map[string]string{"Authorization": "Bearer " + admin}).Code)
}

func TestInternalKey(t *testing.T) {
	hash, err := encrypter.HashSecret("service-key")
	require.NoError(t, err)
	r, _ := newTestRouter(t, hash)

	assert.Equal(t, http.StatusOK, do(r, http.MethodPost, "/internal", map[string]string{InternalKeyHeader: "service-key"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/internal", map[string]string{InternalKeyHeader: "wrong"}).Code)
	assert.Equal(t, http.StatusUnauthorized, do(r, http.MethodPost, "/internal", nil).Code)
}

func TestRecovery(t *testing.T) {
	r, _ := newTestRouter(t, "")
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/panic", nil).Code)
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(CORSConfig{AllowedOrigins: []string{"*.example.com"}, AllowedMethods: []string{"GET"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/x", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = do(r, http.MethodGet, "/x", map[string]string{"Origin": "https://evil.test"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
