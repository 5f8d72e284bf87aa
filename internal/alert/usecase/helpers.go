package usecase

import (
	"strings"

	"realtime-srv/pkg/discord"
)

// mapDecisionToType maps a credit decision to a Discord message type.
func mapDecisionToType(decision string) discord.MessageType {
	switch strings.ToLower(decision) {
	case "approve", "approved", "accept", "accepted":
		return discord.MessageTypeSuccess
	case "reject", "rejected", "deny", "denied":
		return discord.MessageTypeError
	case "review", "manual_review", "pending":
		return discord.MessageTypeWarning
	default:
		return discord.MessageTypeInfo
	}
}

// mapStatusToColor maps a loan status to a Discord embed color.
func mapStatusToColor(status string) int {
	switch strings.ToLower(status) {
	case "approved", "disbursed", "completed":
		return 0x2ECC71 // Green
	case "rejected", "cancelled", "failed":
		return 0xE74C3C // Red
	case "pending", "under_review":
		return 0xFFA500 // Orange
	default:
		return 0x3498DB // Blue
	}
}

func buildField(name string, value string, inline bool) discord.EmbedField {
	if value == "" {
		value = "N/A"
	}
	if len(value) > discord.MaxFieldValueLen {
		value = truncateText(value, discord.MaxFieldValueLen)
	}
	return discord.EmbedField{
		Name:   name,
		Value:  value,
		Inline: inline,
	}
}

func truncateText(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max < 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
