// Package bot produces response payloads for classified messaging events.
// The webhook controller never builds payloads itself: it hands each event to
// a Dispatcher, which routes it to the responder registered for its kind.
package bot

import (
	"context"

	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
)

// TextResponder answers free-text messages.
type TextResponder interface {
	RespondText(ctx context.Context, text string, user *messenger.UserProfile) (*messenger.Message, error)
}

// AttachmentResponder answers messages carrying an attachment. url is the
// first attachment's URL.
type AttachmentResponder interface {
	RespondAttachment(ctx context.Context, url string, user *messenger.UserProfile) (*messenger.Message, error)
}

// PayloadResponder answers postback and quick reply payloads.
//
// A nil message with a nil error means "no reply"; the caller sends nothing.
type PayloadResponder interface {
	RespondPayload(ctx context.Context, payload string, user *messenger.UserProfile) (*messenger.Message, error)
}

// TextResponderFunc adapts a function to TextResponder.
type TextResponderFunc func(ctx context.Context, text string, user *messenger.UserProfile) (*messenger.Message, error)

// RespondText calls f.
func (f TextResponderFunc) RespondText(ctx context.Context, text string, user *messenger.UserProfile) (*messenger.Message, error) {
	return f(ctx, text, user)
}

// AttachmentResponderFunc adapts a function to AttachmentResponder.
type AttachmentResponderFunc func(ctx context.Context, url string, user *messenger.UserProfile) (*messenger.Message, error)

// RespondAttachment calls f.
func (f AttachmentResponderFunc) RespondAttachment(ctx context.Context, url string, user *messenger.UserProfile) (*messenger.Message, error) {
	return f(ctx, url, user)
}

// PayloadResponderFunc adapts a function to PayloadResponder.
type PayloadResponderFunc func(ctx context.Context, payload string, user *messenger.UserProfile) (*messenger.Message, error)

// RespondPayload calls f.
func (f PayloadResponderFunc) RespondPayload(ctx context.Context, payload string, user *messenger.UserProfile) (*messenger.Message, error) {
	return f(ctx, payload, user)
}

// firstName returns the user's first name, or "there" for an unknown user.
func firstName(user *messenger.UserProfile) string {
	if user == nil || user.FirstName == "" {
		return "there"
	}
	return user.FirstName
}
