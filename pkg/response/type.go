package response

import (
	"encoding/json"
	"time"

	"realtime-srv/pkg/errors"
)

// Resp is the envelope every HTTP endpoint answers with.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping translates domain errors into client-facing ones.
type ErrorMapping map[error]*errors.HTTPError

// DateTime renders in UTC with DateTimeFormat, matching the timestamps
// carried in socket events. The zero time renders as null.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	t := time.Time(d)
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.UTC().Format(DateTimeFormat))
}
