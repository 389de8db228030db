// Package webhook implements the Messenger webhook endpoints: the subscription
// challenge and the event intake that turns each messaging event into a reply.
package webhook

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/garyellow/messenger-portfolio-bot/internal/bot"
	"github.com/garyellow/messenger-portfolio-bot/internal/config"
	"github.com/garyellow/messenger-portfolio-bot/internal/ctxutil"
	domerrors "github.com/garyellow/messenger-portfolio-bot/internal/errors"
	"github.com/garyellow/messenger-portfolio-bot/internal/logger"
	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
	"github.com/garyellow/messenger-portfolio-bot/internal/metrics"
	"github.com/garyellow/messenger-portfolio-bot/internal/sentry"
)

// EventReceived is the acknowledgement body for accepted page batches.
const EventReceived = "EVENT_RECEIVED"

// Platform is the Graph API surface the handler calls. *graph.Client implements it.
type Platform interface {
	UserProfile(ctx context.Context, psid string) (*messenger.UserProfile, error)
	SenderAction(ctx context.Context, psid string, action messenger.SenderAction) error
	SendMessage(ctx context.Context, psid string, msg *messenger.Message) (*messenger.Result, error)
	SetUserPersistentMenu(ctx context.Context, psid string, menu []messenger.PersistentMenu) error
}

// Handler handles Messenger webhook requests
type Handler struct {
	verifyToken string
	platform    Platform
	dispatcher  *bot.Dispatcher
	validate    *validator.Validate
	metrics     *metrics.Metrics
	logger      *logger.Logger
	wg          sync.WaitGroup // WaitGroup for async event processing

	typingDelay time.Duration
	sleep       func(time.Duration)
}

// HandlerConfig holds configuration for creating a new Handler
type HandlerConfig struct {
	VerifyToken string
	Platform    Platform
	Dispatcher  *bot.Dispatcher
	Metrics     *metrics.Metrics
	Logger      *logger.Logger
}

// NewHandler creates a new webhook handler.
func NewHandler(cfg HandlerConfig, opts ...HandlerOption) *Handler {
	h := &Handler{
		verifyToken: cfg.VerifyToken,
		platform:    cfg.Platform,
		dispatcher:  cfg.Dispatcher,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		metrics:     cfg.Metrics,
		logger:      cfg.Logger.WithModule("webhook"),
		typingDelay: config.TypingPacingDelay,
		sleep:       time.Sleep,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Verify answers the subscription challenge (GET /webhook).
//
// A request missing hub.mode or hub.verify_token gets 400 with an empty body.
// A present but wrong mode or token gets 403.
func (h *Handler) Verify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "" || token == "" {
		h.metrics.RecordVerification("bad_request")
		h.logger.WarnContext(c.Request.Context(), "Verification request missing mode or token")
		c.Status(http.StatusBadRequest)
		return
	}

	if mode != "subscribe" || subtle.ConstantTimeCompare([]byte(token), []byte(h.verifyToken)) != 1 {
		h.metrics.RecordVerification("forbidden")
		h.logger.WithError(domerrors.ErrVerificationFailed).
			WithField("mode", mode).
			WarnContext(c.Request.Context(), "Webhook verification rejected")
		c.Status(http.StatusForbidden)
		return
	}

	h.metrics.RecordVerification("success")
	h.logger.InfoContext(c.Request.Context(), "WEBHOOK_VERIFIED")
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(challenge))
}

// Handle is the Gin handler for event notifications (POST /webhook).
// Page batches are acknowledged before any event is processed.
func (h *Handler) Handle(c *gin.Context) {
	// Only object is decoded up front: a foreign webhook is answered 404
	// whatever shape its entries have.
	var envelope struct {
		Object string          `json:"object"`
		Entry  json.RawMessage `json:"entry"`
	}
	if err := c.ShouldBindJSON(&envelope); err != nil {
		h.rejectMalformed(c, err)
		return
	}

	if envelope.Object != messenger.ObjectPage {
		h.metrics.RecordWebhookRequest("not_page")
		h.logger.WithError(domerrors.ErrNotPageEvent).
			WithField("object", envelope.Object).
			WarnContext(c.Request.Context(), "Ignoring non-page webhook")
		c.Status(http.StatusNotFound)
		return
	}

	batch := messenger.Batch{Object: envelope.Object}
	if len(envelope.Entry) > 0 && string(envelope.Entry) != "null" {
		if err := json.Unmarshal(envelope.Entry, &batch.Entry); err != nil {
			h.rejectMalformed(c, err)
			return
		}
	}

	// Return 200 OK immediately; replies are sent through the Send API.
	c.String(http.StatusOK, EventReceived)
	h.metrics.RecordWebhookRequest("accepted")

	// Processing must outlive the request.
	ctx := ctxutil.Detach(c.Request.Context())

	for _, entry := range batch.Entry {
		if len(entry.Messaging) == 0 {
			h.logger.WithField("entry_id", entry.ID).WarnContext(ctx, "Entry has no messaging events")
			continue
		}
		for _, ev := range entry.Messaging {
			if err := h.validateEvent(ev); err != nil {
				h.metrics.RecordEvent(ev.Kind().String(), "invalid", 0)
				h.logger.WithError(err).WithField("entry_id", entry.ID).WarnContext(ctx, "Dropping invalid event")
				continue
			}
			h.wg.Go(func() {
				h.processEvent(ctx, ev)
			})
		}
	}
}

func (h *Handler) rejectMalformed(c *gin.Context, err error) {
	h.metrics.RecordWebhookRequest("malformed")
	h.logger.WithError(err).WarnContext(c.Request.Context(), "Failed to decode webhook body")
	c.Status(http.StatusBadRequest)
}

func (h *Handler) validateEvent(ev messenger.Event) error {
	err := h.validate.Struct(ev)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return domerrors.NewValidationError(verrs[0].Namespace(), verrs[0].Tag())
	}
	return domerrors.NewValidationError("event", err.Error())
}

// processEvent runs one event through profile lookup, typing indicator,
// responder dispatch and send. Any failure ends the event without a reply.
func (h *Handler) processEvent(ctx context.Context, ev messenger.Event) {
	start := time.Now()
	psid := ev.Sender.ID
	kind := ev.Kind()

	eventID := ev.MID()
	if eventID == "" {
		eventID = uuid.NewString()
	}
	ctx = ctxutil.WithPSID(ctx, psid)
	ctx = ctxutil.WithEvent(ctx, eventID, kind.String())

	defer func() {
		if r := recover(); r != nil {
			h.metrics.RecordPanic()
			sentry.RecoverPanic(ctx, r)
			h.logger.WithField("panic", r).ErrorContext(ctx, "Panic in async event processing")
		}
	}()

	record := func(status string) {
		h.metrics.RecordEvent(kind.String(), status, time.Since(start).Seconds())
	}

	if ev.IsGuest() {
		h.wg.Go(func() {
			h.provisionGuestMenu(ctx, psid)
		})
	}

	if kind == messenger.KindUnsupported {
		record("skipped")
		h.logger.WithError(domerrors.ErrUnsupportedEvent).DebugContext(ctx, "Skipping unsupported event")
		return
	}

	profile, err := h.platform.UserProfile(ctx, psid)
	switch {
	case domerrors.IsGraphError(err):
		// Graph answered (e.g. "No profile available"): reply without a name.
		h.logger.WithError(err).WarnContext(ctx, "User profile unavailable, replying without it")
		profile = &messenger.UserProfile{ID: psid}
	case err != nil:
		record("profile_error")
		h.logger.WithError(err).ErrorContext(ctx, "Failed to fetch user profile")
		sentry.Capture(ctx, err)
		return
	}

	h.notifyTyping(ctx, psid, true)
	h.sleep(h.typingDelay)

	msg, err := h.dispatcher.Dispatch(ctx, ev, profile)
	switch {
	case errors.Is(err, domerrors.ErrNilPayload):
		record("no_reply")
		h.logger.DebugContext(ctx, "Responder produced no reply")
		return
	case err != nil:
		record("responder_error")
		h.logger.WithError(err).WarnContext(ctx, "Responder failed")
		return
	}

	if err := h.reply(ctx, psid, msg); err != nil {
		record("send_error")
		h.logger.WithError(err).ErrorContext(ctx, "Failed to send reply")
		sentry.Capture(ctx, err)
		return
	}

	record("success")
	h.logger.WithField("duration_ms", time.Since(start).Milliseconds()).InfoContext(ctx, "Event processed")
}

// reply clears the typing indicator, then posts msg.
func (h *Handler) reply(ctx context.Context, psid string, msg *messenger.Message) error {
	h.notifyTyping(ctx, psid, false)
	_, err := h.platform.SendMessage(ctx, psid, msg)
	return err
}

// notifyTyping is best effort: a failure is logged and the event continues.
func (h *Handler) notifyTyping(ctx context.Context, psid string, typing bool) {
	action := messenger.TypingAction(typing)
	if err := h.platform.SenderAction(ctx, psid, action); err != nil {
		h.logger.WithError(err).WithField("action", string(action)).WarnContext(ctx, "Failed to send sender action")
	}
}

func (h *Handler) provisionGuestMenu(ctx context.Context, psid string) {
	defer func() {
		if r := recover(); r != nil {
			h.metrics.RecordPanic()
			h.metrics.RecordMenuProvision("error")
			sentry.RecoverPanic(ctx, r)
			h.logger.WithField("panic", r).ErrorContext(ctx, "Panic while installing guest menu")
		}
	}()
	if err := h.platform.SetUserPersistentMenu(ctx, psid, messenger.GuestMenu()); err != nil {
		h.metrics.RecordMenuProvision("error")
		h.logger.WithError(err).ErrorContext(ctx, "Failed to install guest menu")
		return
	}
	h.metrics.RecordMenuProvision("success")
	h.logger.DebugContext(ctx, "Guest menu installed")
}

// Shutdown waits for all async event processing to complete.
// It returns an error if the context is canceled before completion.
func (h *Handler) Shutdown(ctx context.Context) error {
	c := make(chan struct{})
	go func() {
		defer close(c)
		h.wg.Wait()
	}()

	select {
	case <-c:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
