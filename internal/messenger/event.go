// Package messenger defines the Messenger Platform wire types: inbound webhook
// events, outbound response payloads and the request envelopes posted to the
// Graph API.
package messenger

// ObjectPage is the batch object value for page subscriptions.
const ObjectPage = "page"

// Batch is the body of a webhook POST.
type Batch struct {
	Object string  `json:"object"`
	Entry  []Entry `json:"entry"`
}

// Entry groups the messaging events delivered for one page.
type Entry struct {
	ID        string  `json:"id"`
	Time      int64   `json:"time"`
	Messaging []Event `json:"messaging"`
}

// Event is one messaging notification. Exactly one of Message or Postback is
// set for the variants the bot handles; use Kind to classify it.
type Event struct {
	Sender    Sender           `json:"sender"`
	Recipient Recipient        `json:"recipient"`
	Timestamp int64            `json:"timestamp"`
	Message   *IncomingMessage `json:"message,omitempty"`
	Postback  *Postback        `json:"postback,omitempty"`
}

// Sender identifies who sent the event by PSID.
type Sender struct {
	ID string `json:"id" validate:"required"`
}

// Recipient identifies who a message is addressed to by PSID (or the page ID on inbound events).
type Recipient struct {
	ID string `json:"id"`
}

// IncomingMessage is the message variant of an event.
type IncomingMessage struct {
	MID         string             `json:"mid,omitempty"`
	Text        string             `json:"text,omitempty"`
	Attachments []Attachment       `json:"attachments,omitempty"`
	QuickReply  *QuickReplyPayload `json:"quick_reply,omitempty"`
	IsEcho      bool               `json:"is_echo,omitempty"`
}

// Attachment is a URL-bearing inbound attachment (image, audio, video, file).
type Attachment struct {
	Type    string            `json:"type"`
	Payload AttachmentPayload `json:"payload"`
}

// AttachmentPayload carries the attachment URL.
type AttachmentPayload struct {
	URL string `json:"url,omitempty"`
}

// QuickReplyPayload is attached to a message sent by tapping a quick reply chip.
type QuickReplyPayload struct {
	Payload string `json:"payload"`
}

// Postback is the variant produced by tapping a postback button or menu item.
type Postback struct {
	Title    string    `json:"title,omitempty"`
	Payload  string    `json:"payload"`
	Referral *Referral `json:"referral,omitempty"`
}

// Referral describes how the user entered the conversation.
type Referral struct {
	Ref         string `json:"ref,omitempty"`
	Source      string `json:"source,omitempty"`
	Type        string `json:"type,omitempty"`
	IsGuestUser bool   `json:"is_guest_user,omitempty"`
}

// Kind is the handled variant of an Event.
type Kind int

// Event kinds, in classification order.
const (
	KindUnsupported Kind = iota
	KindQuickReply
	KindText
	KindAttachment
	KindPostback
)

// String returns the metric/log label for the kind.
func (k Kind) String() string {
	switch k {
	case KindQuickReply:
		return "quick_reply"
	case KindText:
		return "text"
	case KindAttachment:
		return "attachment"
	case KindPostback:
		return "postback"
	default:
		return "unsupported"
	}
}

// Kind classifies the event. A quick reply wins over text since a quick-reply
// message also carries the chip title as text. Echoes of the page's own
// messages are unsupported.
func (e Event) Kind() Kind {
	switch {
	case e.Message != nil:
		m := e.Message
		switch {
		case m.IsEcho:
			return KindUnsupported
		case m.QuickReply != nil:
			return KindQuickReply
		case m.Text != "":
			return KindText
		case len(m.Attachments) > 0:
			return KindAttachment
		default:
			return KindUnsupported
		}
	case e.Postback != nil:
		return KindPostback
	default:
		return KindUnsupported
	}
}

// IsGuest reports whether the postback referral flags the sender as a guest user.
func (e Event) IsGuest() bool {
	return e.Postback != nil && e.Postback.Referral != nil && e.Postback.Referral.IsGuestUser
}

// AttachmentURL returns the URL of the first attachment, or "".
func (e Event) AttachmentURL() string {
	if e.Message == nil || len(e.Message.Attachments) == 0 {
		return ""
	}
	return e.Message.Attachments[0].Payload.URL
}

// MID returns the message ID when the event carries one.
func (e Event) MID() string {
	if e.Message == nil {
		return ""
	}
	return e.Message.MID
}
