package bot

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/garyellow/messenger-portfolio-bot/internal/logger"
	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
	"github.com/garyellow/messenger-portfolio-bot/internal/metrics"
	"github.com/garyellow/messenger-portfolio-bot/internal/sentry"
)

// LoggingMiddleware logs responder execution with timing and result info.
func LoggingMiddleware(log *logger.Logger) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev messenger.Event, user *messenger.UserProfile) (*messenger.Message, error) {
			start := time.Now()
			kind := ev.Kind().String()

			log.WithField("kind", kind).DebugContext(ctx, "Responder started")

			msg, err := next(ctx, ev, user)

			entry := log.WithField("kind", kind).
				WithField("duration_ms", time.Since(start).Milliseconds()).
				WithField("has_payload", msg != nil)
			if err != nil {
				entry.WithError(err).WarnContext(ctx, "Responder failed")
			} else {
				entry.DebugContext(ctx, "Responder completed")
			}
			return msg, err
		}
	}
}

// RecoveryMiddleware turns a responder panic into an error so nothing is sent
// for that event. The panic is logged, counted and reported to Sentry.
func RecoveryMiddleware(log *logger.Logger, m *metrics.Metrics) Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, ev messenger.Event, user *messenger.UserProfile) (msg *messenger.Message, err error) {
			defer func() {
				if r := recover(); r != nil {
					log.WithField("kind", ev.Kind().String()).
						WithField("panic", r).
						WithField("stack", string(debug.Stack())).
						ErrorContext(ctx, "Responder panicked")
					m.RecordPanic()
					sentry.RecoverPanic(ctx, r)
					msg, err = nil, fmt.Errorf("responder panic: %v", r)
				}
			}()
			return next(ctx, ev, user)
		}
	}
}
