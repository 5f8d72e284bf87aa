package usecase

import (
	"context"
	"fmt"
	"strings"

	"realtime-srv/internal/alert"
	"realtime-srv/pkg/discord"
)

func (uc *implUseCase) DispatchLoanStatus(ctx context.Context, input alert.LoanStatusAlertInput) error {
	switch {
	case input.LoanID == "":
		return alert.ErrMissingLoanID
	case input.Status == "":
		return alert.ErrMissingStatus
	}

	delivery := "offline, stored for later"
	if input.Delivered {
		delivery = "delivered live"
	}

	fields := []discord.EmbedField{
		buildField("Loan", input.LoanID, true),
		buildField("Status", strings.ToUpper(input.Status), true),
		buildField("Borrower", input.UserID, true),
		buildField("Delivery", delivery, true),
	}
	if input.Message != "" {
		fields = append(fields, buildField("Message", input.Message, false))
	}

	return uc.send(ctx, "DispatchLoanStatus", "Loan Tracker", discord.MessageOptions{
		Type:        discord.MessageTypeInfo,
		Color:       mapStatusToColor(input.Status),
		Title:       fmt.Sprintf("Loan Status: %s", input.LoanID),
		Description: fmt.Sprintf("Loan **%s** moved to **%s**.", input.LoanID, input.Status),
		Fields:      fields,
		Timestamp:   uc.stamp(input.OccurredAt),
	})
}
