package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"realtime-srv/pkg/log"
)

var errWebhookRequired = errors.New("discord: webhook id and token are required")

// IDiscord posts operator messages to one Discord webhook.
type IDiscord interface {
	SendEmbed(ctx context.Context, options MessageOptions) error
	SendError(ctx context.Context, title, description string, err error) error
	ReportBug(ctx context.Context, message string) error
	Close() error
}

// New creates a webhook client. l may be nil.
func New(l log.Logger, id, token string) (IDiscord, error) {
	if id == "" || token == "" {
		return nil, errWebhookRequired
	}
	return newClient(l, fmt.Sprintf("%s/%s/%s", defaultBaseURL, id, token), DefaultConfig()), nil
}

func newClient(l log.Logger, url string, cfg Config) *discordImpl {
	return &discordImpl{
		l:      l,
		url:    url,
		config: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     30 * time.Second,
			},
		},
	}
}

func DefaultConfig() Config {
	return Config{
		Timeout:         DefaultTimeout,
		RetryCount:      DefaultRetryCount,
		RetryDelay:      DefaultRetryDelay,
		DefaultUsername: DefaultUsername,
	}
}
