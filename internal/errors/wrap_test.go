package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperation_Fail(t *testing.T) {
	t.Parallel()

	op := Op("graph", "user_profile")

	t.Run("nil error stays nil", func(t *testing.T) {
		assert.NoError(t, op.Fail(nil))
		assert.NoError(t, op.FailFor("123", nil))
	})

	t.Run("keeps module, operation, psid and cause", func(t *testing.T) {
		base := errors.New("connection refused")
		err := op.FailFor("123", base)

		var oe *OpError
		require.ErrorAs(t, err, &oe)
		assert.Equal(t, "graph", oe.Module)
		assert.Equal(t, "user_profile", oe.Op)
		assert.Equal(t, "123", oe.PSID)
		assert.ErrorIs(t, err, base)
		assert.Equal(t, "graph user_profile (psid=123): connection refused", err.Error())
	})

	t.Run("page-level call omits psid", func(t *testing.T) {
		err := Op("graph", "me").Fail(ErrGraphAPI)
		assert.Equal(t, "graph me: graph api error", err.Error())
	})
}

func TestOperationOf(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "graph:send_message", OperationOf(Op("graph", "send_message").Fail(errors.New("x"))))
	assert.Empty(t, OperationOf(errors.New("x")))
}
