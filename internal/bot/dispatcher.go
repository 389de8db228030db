package bot

import (
	"context"

	domerrors "github.com/garyellow/messenger-portfolio-bot/internal/errors"
	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
)

// HandlerFunc produces the reply for one event.
type HandlerFunc func(ctx context.Context, ev messenger.Event, user *messenger.UserProfile) (*messenger.Message, error)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Responders is the set of collaborators a Dispatcher routes to.
type Responders struct {
	Text       TextResponder
	Attachment AttachmentResponder
	QuickReply PayloadResponder
	Postback   PayloadResponder
}

// Dispatcher routes a classified event to its responder.
type Dispatcher struct {
	responders Responders
	handler    HandlerFunc
}

// NewDispatcher creates a dispatcher. Middlewares run in the order given,
// the first one outermost.
func NewDispatcher(r Responders, middlewares ...Middleware) *Dispatcher {
	d := &Dispatcher{responders: r}
	h := d.route
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	d.handler = h
	return d
}

// Dispatch returns the reply for ev. It returns ErrUnsupportedEvent for events
// without a handled variant and ErrNilPayload when the responder had nothing
// to say, so a successful return always carries a non-nil message.
func (d *Dispatcher) Dispatch(ctx context.Context, ev messenger.Event, user *messenger.UserProfile) (*messenger.Message, error) {
	msg, err := d.handler(ctx, ev, user)
	if err != nil {
		return nil, err
	}
	if msg == nil {
		return nil, domerrors.ErrNilPayload
	}
	return msg, nil
}

func (d *Dispatcher) route(ctx context.Context, ev messenger.Event, user *messenger.UserProfile) (*messenger.Message, error) {
	switch ev.Kind() {
	case messenger.KindText:
		if d.responders.Text != nil {
			return d.responders.Text.RespondText(ctx, ev.Message.Text, user)
		}
	case messenger.KindAttachment:
		if d.responders.Attachment != nil {
			return d.responders.Attachment.RespondAttachment(ctx, ev.AttachmentURL(), user)
		}
	case messenger.KindQuickReply:
		if d.responders.QuickReply != nil {
			return d.responders.QuickReply.RespondPayload(ctx, ev.Message.QuickReply.Payload, user)
		}
	case messenger.KindPostback:
		if d.responders.Postback != nil {
			return d.responders.Postback.RespondPayload(ctx, ev.Postback.Payload, user)
		}
	}
	return nil, domerrors.ErrUnsupportedEvent
}
