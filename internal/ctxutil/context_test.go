package ctxutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceFrom_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Trace{}, TraceFrom(context.Background()))
	assert.Empty(t, Trace{}.Attrs())
}

func TestTrace_Accumulates(t *testing.T) {
	t.Parallel()

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithPSID(ctx, "1254459154682919")
	ctx = WithEvent(ctx, "mid.$cAAJ", "text")

	assert.Equal(t, Trace{
		RequestID: "req-1",
		PSID:      "1254459154682919",
		EventID:   "mid.$cAAJ",
		EventKind: "text",
	}, TraceFrom(ctx))
}

func TestTrace_ParentUnchanged(t *testing.T) {
	t.Parallel()

	parent := WithRequestID(context.Background(), "req-1")
	_ = WithPSID(parent, "42")

	assert.Empty(t, TraceFrom(parent).PSID)
}

func TestTrace_Attrs(t *testing.T) {
	t.Parallel()

	got := Trace{RequestID: "req-1", EventKind: "postback"}.Attrs()
	assert.Equal(t, []any{"request_id", "req-1", "event_kind", "postback"}, got)
}

func TestDetach(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), time.Minute)
	parent = WithRequestID(parent, "req-9")
	cancel()
	require.Error(t, parent.Err())

	detached := Detach(parent)
	require.NoError(t, detached.Err())
	_, hasDeadline := detached.Deadline()
	assert.False(t, hasDeadline)
	assert.Equal(t, "req-9", TraceFrom(detached).RequestID)
}

func TestDetach_NoTrace(t *testing.T) {
	t.Parallel()

	assert.Equal(t, context.Background(), Detach(context.Background()))
}
