package discord

import "time"

const defaultBaseURL = "https://discord.com/api/webhooks"

// Embed colours by message type.
const (
	ColorInfo    = 0x3498DB
	ColorSuccess = 0x2ECC71
	ColorWarning = 0xF1C40F
	ColorError   = 0xE74C3C
)

// Discord rejects embeds past these sizes. Lengths count characters.
const (
	MaxEmbedLength    = 6000
	MaxTitleLen       = 256
	MaxDescriptionLen = 4096
	MaxFieldValueLen  = 1024
)

const (
	DefaultTimeout    = 10 * time.Second
	DefaultRetryCount = 3
	DefaultRetryDelay = time.Second
	// maxRetryAfter caps the wait a 429 can ask for.
	maxRetryAfter = 10 * time.Second
)

const (
	DefaultUsername = "Realtime Bot"
	UserAgent       = "realtime-srv/1.0"
	ReportBugTitle  = "Realtime Service Error Report"
)
