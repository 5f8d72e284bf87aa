package http

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecisionTimestamp(t *testing.T) {
	tcs := map[string]struct {
		raw     string
		want    string
		wantErr bool
	}{
		"absent":        {raw: "", want: ""},
		"null":          {raw: "null", want: ""},
		"fractional":    {raw: "1691234567.89", want: "2023-08-05T11:22:47.89Z"},
		"whole seconds": {raw: "1691234567", want: "2023-08-05T11:22:47Z"},
		"string":        {raw: `"2023-08-05T11:22:47Z"`, want: "2023-08-05T11:22:47Z"},
		"object":        {raw: `{"at":1}`, wantErr: true},
		"bool":          {raw: "true", wantErr: true},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			got, err := decisionTimestamp(json.RawMessage(tc.raw))
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
