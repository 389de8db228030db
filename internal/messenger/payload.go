package messenger

import "github.com/garyellow/messenger-portfolio-bot/internal/stringutil"

// Messenger Platform limits enforced by the builders.
const (
	MaxTextLength       = 2000
	MaxQuickReplies     = 13
	MaxQuickReplyTitle  = 20
	MaxButtons          = 3
	MaxButtonTitle      = 20
	MaxTemplateText     = 640
	MaxGenericElements  = 10
	MaxElementTitle     = 80
	MaxElementSubtitle  = 80
	MaxPostbackPayload  = 1000
	templateTypeButton  = "button"
	templateTypeGeneric = "generic"
)

// Message is an outbound response payload. The webhook forwards it verbatim.
type Message struct {
	Text         string              `json:"text,omitempty"`
	Attachment   *OutgoingAttachment `json:"attachment,omitempty"`
	QuickReplies []QuickReply        `json:"quick_replies,omitempty"`
}

// OutgoingAttachment is a template or media attachment.
type OutgoingAttachment struct {
	Type    string          `json:"type"` // template, image, ...
	Payload TemplatePayload `json:"payload"`
}

// TemplatePayload is the payload of a structured template.
type TemplatePayload struct {
	TemplateType string    `json:"template_type,omitempty"`
	Text         string    `json:"text,omitempty"`
	Elements     []Element `json:"elements,omitempty"`
	Buttons      []Button  `json:"buttons,omitempty"`
	URL          string    `json:"url,omitempty"`
	IsReusable   bool      `json:"is_reusable,omitempty"`
}

// Element is one card of a generic template.
type Element struct {
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	ImageURL string   `json:"image_url,omitempty"`
	Buttons  []Button `json:"buttons,omitempty"`
}

// Button is a template or menu button.
type Button struct {
	Type    string `json:"type"` // postback, web_url
	Title   string `json:"title"`
	Payload string `json:"payload,omitempty"`
	URL     string `json:"url,omitempty"`
}

// QuickReply is a suggested reply chip.
type QuickReply struct {
	ContentType string `json:"content_type"`
	Title       string `json:"title,omitempty"`
	Payload     string `json:"payload,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// NewTextMessage creates a plain text message, truncated to the platform limit.
func NewTextMessage(text string) *Message {
	return &Message{Text: stringutil.TruncateRunes(text, MaxTextLength)}
}

// NewQuickReply creates a text quick reply chip.
func NewQuickReply(title, payload string) QuickReply {
	return QuickReply{
		ContentType: "text",
		Title:       stringutil.TruncateRunes(title, MaxQuickReplyTitle),
		Payload:     stringutil.TruncateRunes(payload, MaxPostbackPayload),
	}
}

// WithQuickReplies attaches quick replies to m, keeping at most MaxQuickReplies.
func (m *Message) WithQuickReplies(replies ...QuickReply) *Message {
	if len(replies) > MaxQuickReplies {
		replies = replies[:MaxQuickReplies]
	}
	m.QuickReplies = append(m.QuickReplies, replies...)
	return m
}

// PostbackButton creates a button that sends payload back as a postback.
func PostbackButton(title, payload string) Button {
	return Button{
		Type:    "postback",
		Title:   stringutil.TruncateRunes(title, MaxButtonTitle),
		Payload: stringutil.TruncateRunes(payload, MaxPostbackPayload),
	}
}

// URLButton creates a button that opens url.
func URLButton(title, url string) Button {
	return Button{
		Type:  "web_url",
		Title: stringutil.TruncateRunes(title, MaxButtonTitle),
		URL:   url,
	}
}

// NewButtonTemplate creates a button template message.
func NewButtonTemplate(text string, buttons ...Button) *Message {
	if len(buttons) > MaxButtons {
		buttons = buttons[:MaxButtons]
	}
	return &Message{
		Attachment: &OutgoingAttachment{
			Type: "template",
			Payload: TemplatePayload{
				TemplateType: templateTypeButton,
				Text:         stringutil.TruncateRunes(text, MaxTemplateText),
				Buttons:      buttons,
			},
		},
	}
}

// NewGenericTemplate creates a generic (card) template message.
func NewGenericTemplate(elements ...Element) *Message {
	if len(elements) > MaxGenericElements {
		elements = elements[:MaxGenericElements]
	}
	for i := range elements {
		elements[i].Title = stringutil.TruncateRunes(elements[i].Title, MaxElementTitle)
		elements[i].Subtitle = stringutil.TruncateRunes(elements[i].Subtitle, MaxElementSubtitle)
		if len(elements[i].Buttons) > MaxButtons {
			elements[i].Buttons = elements[i].Buttons[:MaxButtons]
		}
	}
	return &Message{
		Attachment: &OutgoingAttachment{
			Type: "template",
			Payload: TemplatePayload{
				TemplateType: templateTypeGeneric,
				Elements:     elements,
			},
		},
	}
}

// NewQuickReplies creates a text message offering the given quick replies.
func NewQuickReplies(text string, replies ...QuickReply) *Message {
	return NewTextMessage(text).WithQuickReplies(replies...)
}
