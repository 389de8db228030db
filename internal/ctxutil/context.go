// Package ctxutil carries per-event tracing values through context.
package ctxutil

import "context"

type traceKey struct{}

// Trace identifies the webhook request and Messenger event a log line or
// outbound call belongs to. Empty fields are unknown.
type Trace struct {
	RequestID string
	PSID      string
	EventID   string
	EventKind string
}

// TraceFrom returns the trace stored in ctx, or the zero Trace.
func TraceFrom(ctx context.Context) Trace {
	t, _ := ctx.Value(traceKey{}).(Trace)
	return t
}

func withTrace(ctx context.Context, update func(*Trace)) context.Context {
	t := TraceFrom(ctx)
	update(&t)
	return context.WithValue(ctx, traceKey{}, t)
}

// WithRequestID records the id of the inbound HTTP request.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return withTrace(ctx, func(t *Trace) { t.RequestID = requestID })
}

// WithPSID records the page-scoped id of the user being served.
func WithPSID(ctx context.Context, psid string) context.Context {
	return withTrace(ctx, func(t *Trace) { t.PSID = psid })
}

// WithEvent records the event id (message mid or a generated id) and its kind.
func WithEvent(ctx context.Context, eventID, kind string) context.Context {
	return withTrace(ctx, func(t *Trace) {
		t.EventID = eventID
		t.EventKind = kind
	})
}

// Detach returns a background context carrying only the trace of ctx.
// Event processing uses it to keep running after the webhook response is
// written, without holding on to the request context (Go issue #64478).
func Detach(ctx context.Context) context.Context {
	t := TraceFrom(ctx)
	if t == (Trace{}) {
		return context.Background()
	}
	return context.WithValue(context.Background(), traceKey{}, t)
}

// Attrs lists the non-empty trace fields as alternating key/value pairs
// in a fixed order.
func (t Trace) Attrs() []any {
	out := make([]any, 0, 8)
	for _, kv := range [...][2]string{
		{"request_id", t.RequestID},
		{"user_id", t.PSID},
		{"event_id", t.EventID},
		{"event_kind", t.EventKind},
	} {
		if kv[1] != "" {
			out = append(out, kv[0], kv[1])
		}
	}
	return out
}
