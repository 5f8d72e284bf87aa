package docs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"github.com/tidwall/gjson"
)

func TestSwaggerDocRegistered(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)
	require.True(t, gjson.Valid(doc))

	assert.Equal(t, "Realtime Service", gjson.Get(doc, "info.title").String())
	assert.Equal(t, []any{"ws", "http"}, gjson.Get(doc, "schemes").Value())

	paths := gjson.Get(doc, "paths")
	for _, tt := range []struct{ path, method string }{
		{"/ws", "get"},
		{"/api/v1/socket/notify-user", "post"},
		{"/api/v1/socket/python-notification", "post"},
		{"/api/v1/socket/connections/{socketId}", "delete"},
		{"/api/v1/notifications/{id}", "patch"},
		{"/api/v1/chat/rooms/{roomId}/messages", "get"},
	} {
		assert.True(t, paths.Get(gjson.Escape(tt.path)).Get(tt.method).Exists(), tt.method+" "+tt.path)
	}
}

func TestSwaggerRefsResolve(t *testing.T) {
	doc, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	defs := gjson.Get(doc, "definitions")
	var refs []string
	var walk func(v gjson.Result)
	walk = func(v gjson.Result) {
		v.ForEach(func(k, val gjson.Result) bool {
			if k.String() == "$ref" {
				refs = append(refs, val.String())
			}
			if val.IsObject() || val.IsArray() {
				walk(val)
			}
			return true
		})
	}
	walk(gjson.Parse(doc))

	require.NotEmpty(t, refs)
	for _, ref := range refs {
		name := ref[len("#/definitions/"):]
		assert.True(t, defs.Get(gjson.Escape(name)).Exists(), ref)
	}
}
