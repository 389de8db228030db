package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphError(t *testing.T) {
	t.Parallel()

	err := NewGraphError("messages", 400, 100, "OAuthException", "Invalid parameter")

	assert.Equal(t, "graph api error (endpoint=messages, status=400, code=100): Invalid parameter", err.Error())
	assert.True(t, errors.Is(err, ErrGraphAPI))
	assert.True(t, IsGraphError(fmt.Errorf("send: %w", err)))

	noCode := NewGraphError("profile", 502, 0, "", "bad gateway")
	assert.Equal(t, "graph api error (endpoint=profile, status=502): bad gateway", noCode.Error())
}

func TestAsGraphError(t *testing.T) {
	t.Parallel()

	wrapped := Op("graph", "send_message").FailFor("42", NewGraphError("messages", 403, 10, "", "denied"))

	ge, ok := AsGraphError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 403, ge.StatusCode)

	_, ok = AsGraphError(errors.New("plain"))
	assert.False(t, ok)
	assert.False(t, IsGraphError(errors.New("plain")))
}

func TestValidationError(t *testing.T) {
	t.Parallel()

	err := NewValidationError("sender.id", "required")

	assert.Equal(t, "validation failed on sender.id: required", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidEvent))
}
