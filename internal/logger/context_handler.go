package logger

import (
	"context"
	"log/slog"

	"github.com/garyellow/messenger-portfolio-bot/internal/ctxutil"
)

// ContextHandler adds the ctxutil trace (request id, PSID, event id and kind)
// to every record logged with a context.
type ContextHandler struct {
	next slog.Handler
}

func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if attrs := ctxutil.TraceFrom(ctx).Attrs(); len(attrs) > 0 {
		r.Add(attrs...)
	}
	return h.next.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
