package discord

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func testClient(url string) *discordImpl {
	cfg := DefaultConfig()
	cfg.RetryCount = 2
	cfg.RetryDelay = time.Millisecond
	return newClient(nil, url, cfg)
}

func TestNewRequiresWebhook(t *testing.T) {
	_, err := New(nil, "", "token")
	assert.ErrorIs(t, err, errWebhookRequired)

	d, err := New(nil, "123", "abc")
	require.NoError(t, err)
	assert.Equal(t, defaultBaseURL+"/123/abc", d.(*discordImpl).url)
}

func TestSendEmbedPayload(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	d := testClient(srv.URL)
	err := d.SendEmbed(context.Background(), MessageOptions{
		Type:      MessageTypeWarning,
		Title:     "Khoản vay cần xem xét",
		Footer:    &EmbedFooter{Text: "Realtime Service • Loan Tracker"},
		Timestamp: time.Date(2026, 3, 1, 9, 0, 0, 0, time.FixedZone("ICT", 7*3600)),
	})
	require.NoError(t, err)

	assert.Equal(t, DefaultUsername, gjson.Get(body, "username").String())
	assert.Equal(t, "Khoản vay cần xem xét", gjson.Get(body, "embeds.0.title").String())
	assert.EqualValues(t, ColorWarning, gjson.Get(body, "embeds.0.color").Int())
	assert.Equal(t, "2026-03-01T02:00:00Z", gjson.Get(body, "embeds.0.timestamp").String())
}

func TestRetryOnRateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"message":"You are being rate limited.","retry_after":0.01}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, testClient(srv.URL).ReportBug(context.Background(), "panic: boom"))
	assert.EqualValues(t, 2, calls.Load())
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"message":"Unknown Webhook"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendError(context.Background(), "t", "d", errors.New("x"))
	var se *statusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.code)
	assert.EqualValues(t, 1, calls.Load())
}

func TestGivesUpOnServerError(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := testClient(srv.URL).SendEmbed(context.Background(), MessageOptions{Title: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gave up after 3 attempts")
	assert.EqualValues(t, 3, calls.Load())
}

func TestTruncateCountsCharacters(t *testing.T) {
	s := strings.Repeat("ố", 10)
	assert.Equal(t, s, truncate(s, 10))

	got := truncate(s, 5)
	assert.Equal(t, "ốố...", got)
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestSendEmbedRejectsOversized(t *testing.T) {
	d := testClient("http://127.0.0.1:0")
	fields := make([]EmbedField, 8)
	for i := range fields {
		fields[i] = EmbedField{Name: "f", Value: strings.Repeat("a", MaxFieldValueLen)}
	}
	err := d.SendEmbed(context.Background(), MessageOptions{Title: "x", Fields: fields})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "embed too long")
}
