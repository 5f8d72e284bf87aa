package usecase

import (
	"context"
	"fmt"
	"time"

	"realtime-srv/internal/alert"
	"realtime-srv/pkg/discord"
	"realtime-srv/pkg/log"
)

const footerPrefix = "Realtime Service"

type implUseCase struct {
	l       log.Logger
	discord discord.IDiscord
	now     func() time.Time
}

// New returns an alert.UseCase that posts embeds to the configured webhook.
func New(l log.Logger, d discord.IDiscord) alert.UseCase {
	return &implUseCase{
		l:       l,
		discord: d,
		now:     time.Now,
	}
}

// stamp falls back to the current time for alerts the caller left undated.
func (uc *implUseCase) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return uc.now().UTC()
	}
	return t
}

func (uc *implUseCase) send(ctx context.Context, op, source string, opts discord.MessageOptions) error {
	opts.Footer = &discord.EmbedFooter{Text: footerPrefix + " • " + source}
	if err := uc.discord.SendEmbed(ctx, opts); err != nil {
		uc.l.Warnf(ctx, "internal.alert.usecase.%s.SendEmbed: %v", op, err)
		return fmt.Errorf("%w: %v", alert.ErrDispatchFailed, err)
	}
	return nil
}
