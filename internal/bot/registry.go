package bot

import (
	"context"
	"strings"

	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
)

// PayloadHandler builds the reply for one registered payload.
type PayloadHandler func(ctx context.Context, user *messenger.UserProfile) (*messenger.Message, error)

// Registry maps postback or quick reply payloads to handlers. It implements
// PayloadResponder.
type Registry struct {
	handlers map[string]PayloadHandler
	fallback PayloadResponder
}

// NewRegistry creates an empty registry. Unknown payloads go to fallback,
// or produce no reply when fallback is nil.
func NewRegistry(fallback PayloadResponder) *Registry {
	return &Registry{
		handlers: make(map[string]PayloadHandler),
		fallback: fallback,
	}
}

// Register adds a handler for payload. Matching ignores surrounding space.
func (r *Registry) Register(payload string, h PayloadHandler) {
	r.handlers[strings.TrimSpace(payload)] = h
}

// RespondPayload dispatches payload to its handler or the fallback.
func (r *Registry) RespondPayload(ctx context.Context, payload string, user *messenger.UserProfile) (*messenger.Message, error) {
	if h, ok := r.handlers[strings.TrimSpace(payload)]; ok {
		return h(ctx, user)
	}
	if r.fallback != nil {
		return r.fallback.RespondPayload(ctx, payload, user)
	}
	return nil, nil
}
