package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPError(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, NewHTTPError(10001, "Wrong body", 0).StatusCode)

	forbidden := NewForbiddenHTTPError()
	assert.Equal(t, 403, forbidden.Code)
	assert.Equal(t, "Forbidden", forbidden.Error())

	wrapped := fmt.Errorf("delete: %w", forbidden)
	assert.True(t, stderrors.Is(wrapped, NewForbiddenHTTPError()))
	assert.False(t, stderrors.Is(wrapped, NewUnauthorizedHTTPError()))

	down := NewUnavailableHTTPError("redis: connection refused")
	assert.Equal(t, http.StatusServiceUnavailable, down.StatusCode)
	assert.Equal(t, "redis: connection refused", down.Message)
}

func TestFromValidator(t *testing.T) {
	type payload struct {
		RoomID  string `validate:"required"`
		Message string `validate:"max=3"`
		Type    string `validate:"oneof=text system"`
	}

	err := validator.New().Struct(payload{Message: "hello", Type: "emoji"})
	c, ok := FromValidator(400, err)
	require.True(t, ok)
	require.True(t, c.HasError())
	require.Len(t, c.Errors(), 3)
	assert.Equal(t, 400, c.Errors()[0].Code)
	assert.Equal(t, "RoomID is required, Message is too long, Type is not an allowed value", c.Error())

	_, ok = FromValidator(400, stderrors.New("boom"))
	assert.False(t, ok)
}
