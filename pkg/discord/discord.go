package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/tidwall/gjson"
)

// statusError is a non-2xx webhook reply.
type statusError struct {
	code       int
	body       string
	retryAfter time.Duration
}

func (e *statusError) Error() string {
	return fmt.Sprintf("discord webhook returned status %d: %s", e.code, e.body)
}

func (e *statusError) retryable() bool {
	return e.code == http.StatusTooManyRequests || e.code >= http.StatusInternalServerError
}

func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

func (d *discordImpl) warnf(ctx context.Context, format string, args ...any) {
	if d.l != nil {
		d.l.Warnf(ctx, format, args...)
	}
}

func (d *discordImpl) post(ctx context.Context, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("discord: marshal payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		lastErr = d.do(ctx, body)
		if lastErr == nil {
			return nil
		}
		var se *statusError
		if errors.As(lastErr, &se) && !se.retryable() {
			return lastErr
		}
		if attempt == d.config.RetryCount {
			break
		}

		wait := d.config.RetryDelay
		if se != nil && se.retryAfter > 0 {
			wait = min(se.retryAfter, maxRetryAfter)
		}
		d.warnf(ctx, "pkg.discord.post: attempt %d failed, retrying in %s: %v", attempt+1, wait, lastErr)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
	return fmt.Errorf("discord: gave up after %d attempts: %w", d.config.RetryCount+1, lastErr)
}

func (d *discordImpl) do(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("discord: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", UserAgent)

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("discord: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	se := &statusError{code: resp.StatusCode, body: string(raw)}
	if resp.StatusCode == http.StatusTooManyRequests {
		// retry_after is in seconds and may be fractional.
		if secs := gjson.GetBytes(raw, "retry_after").Float(); secs > 0 {
			se.retryAfter = time.Duration(secs * float64(time.Second))
		}
	}
	return se
}

func colorFor(t MessageType) int {
	switch t {
	case MessageTypeSuccess:
		return ColorSuccess
	case MessageTypeWarning:
		return ColorWarning
	case MessageTypeError:
		return ColorError
	default:
		return ColorInfo
	}
}

// truncate shortens s to at most n characters, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func embedLength(e Embed) int {
	n := utf8.RuneCountInString(e.Title) + utf8.RuneCountInString(e.Description)
	for _, f := range e.Fields {
		n += utf8.RuneCountInString(f.Name) + utf8.RuneCountInString(f.Value)
	}
	if e.Footer != nil {
		n += utf8.RuneCountInString(e.Footer.Text)
	}
	return n
}

func (d *discordImpl) SendEmbed(ctx context.Context, opts MessageOptions) error {
	embed := Embed{
		Title:       truncate(opts.Title, MaxTitleLen),
		Description: truncate(opts.Description, MaxDescriptionLen),
		Color:       opts.Color,
		Fields:      opts.Fields,
		Footer:      opts.Footer,
	}
	if embed.Color == 0 {
		embed.Color = colorFor(opts.Type)
	}
	if !opts.Timestamp.IsZero() {
		embed.Timestamp = opts.Timestamp.UTC().Format(time.RFC3339)
	}
	if n := embedLength(embed); n > MaxEmbedLength {
		return fmt.Errorf("discord: embed too long: %d characters (max %d)", n, MaxEmbedLength)
	}

	username := opts.Username
	if username == "" {
		username = d.config.DefaultUsername
	}
	return d.post(ctx, WebhookPayload{Username: username, Embeds: []Embed{embed}})
}

func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	var fields []EmbedField
	if err != nil {
		fields = append(fields, EmbedField{Name: "Error", Value: truncate(err.Error(), MaxFieldValueLen)})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       title,
		Description: description,
		Fields:      fields,
		Timestamp:   time.Now(),
	})
}

// ReportBug posts message as a code block.
func (d *discordImpl) ReportBug(ctx context.Context, message string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       ReportBugTitle,
		Description: "```" + truncate(message, MaxDescriptionLen-6) + "```",
		Timestamp:   time.Now(),
	})
}
