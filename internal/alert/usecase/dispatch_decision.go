package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"realtime-srv/internal/alert"
	"realtime-srv/pkg/discord"
)

func (uc *implUseCase) DispatchDecision(ctx context.Context, input alert.DecisionAlertInput) error {
	switch {
	case input.RequestID == "":
		return alert.ErrMissingRequestID
	case input.Decision == "":
		return alert.ErrMissingDecision
	}

	fields := []discord.EmbedField{
		buildField("Request", input.RequestID, true),
		buildField("Decision", strings.ToUpper(input.Decision), true),
		buildField("Source", input.Source, true),
		buildField("Recipients", strconv.Itoa(input.Recipients), true),
	}
	if input.Message != "" {
		fields = append(fields, buildField("Message", input.Message, false))
	}

	return uc.send(ctx, "DispatchDecision", "Decision Engine", discord.MessageOptions{
		Type:        mapDecisionToType(input.Decision),
		Title:       fmt.Sprintf("Credit Decision: %s", input.RequestID),
		Description: fmt.Sprintf("Automated decision **%s** broadcast to connected clients.", input.Decision),
		Fields:      fields,
		Timestamp:   uc.stamp(input.DecidedAt),
	})
}
