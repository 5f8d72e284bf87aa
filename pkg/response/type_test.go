package response

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateTimeMarshal(t *testing.T) {
	ict := time.FixedZone("ICT", 7*3600)
	v := struct {
		JoinedAt  DateTime `json:"joinedAt"`
		UpdatedAt DateTime `json:"updatedAt"`
	}{
		JoinedAt: DateTime(time.Date(2024, 5, 17, 16, 30, 0, 250_000_000, ict)),
	}

	out, err := json.Marshal(v)
	require.NoError(t, err)
	assert.JSONEq(t, `{"joinedAt":"2024-05-17T09:30:00.250Z","updatedAt":null}`, string(out))
}
