package webhook

import "time"

// HandlerOption is a functional option for configuring Handler.
type HandlerOption func(*Handler)

// WithTypingDelay overrides the pause between the typing indicator and the reply.
func WithTypingDelay(d time.Duration) HandlerOption {
	return func(h *Handler) {
		h.typingDelay = d
	}
}

// WithSleep replaces the function used to wait out the typing delay.
func WithSleep(sleep func(time.Duration)) HandlerOption {
	return func(h *Handler) {
		h.sleep = sleep
	}
}
