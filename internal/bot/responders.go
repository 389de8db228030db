package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/garyellow/messenger-portfolio-bot/internal/messenger"
)

// Quick reply payloads offered by the intro card.
const (
	PayloadSkills   = "skills"
	PayloadProjects = "projects"
	PayloadContact  = "contact"
)

// MaintenanceNotice is the reply to free text while language understanding is offline.
const MaintenanceNotice = "Sorry, %s. My NLP model is not functioning and currently under maintenance at the moment. " +
	"Meanwhile, select an option from the hamburger menu down below. :("

var greetings = []string{
	"Hi %s! Nice to meet you.",
	"Hello %s! Thanks for dropping by.",
	"Hey %s! Glad you're here.",
	"Welcome, %s!",
}

var skills = []string{"Go", "JavaScript", "Node.js", "Docker", "SQL", "Cloud"}

// Links is where the portfolio responders point people.
type Links struct {
	Portfolio  string
	Repository string
}

// MaintenanceResponder answers every text message with MaintenanceNotice.
type MaintenanceResponder struct{}

// RespondText implements TextResponder.
func (MaintenanceResponder) RespondText(_ context.Context, _ string, user *messenger.UserProfile) (*messenger.Message, error) {
	return messenger.NewTextMessage(fmt.Sprintf(MaintenanceNotice, firstName(user))), nil
}

// AttachmentConfirmResponder asks the user to confirm the picture they sent.
type AttachmentConfirmResponder struct{}

// RespondAttachment implements AttachmentResponder.
func (AttachmentConfirmResponder) RespondAttachment(_ context.Context, url string, _ *messenger.UserProfile) (*messenger.Message, error) {
	return messenger.NewGenericTemplate(messenger.Element{
		Title:    "Is this the right picture?",
		Subtitle: "Tap a button to answer.",
		ImageURL: url,
		Buttons: []messenger.Button{
			messenger.PostbackButton("Yes!", messenger.PayloadYes),
			messenger.PostbackButton("No!", messenger.PayloadNo),
		},
	}), nil
}

// NewPostbackResponder returns the registry answering menu and button postbacks.
func NewPostbackResponder(links Links) *Registry {
	r := NewRegistry(PayloadResponderFunc(unknownPayload))

	greet := func(_ context.Context, user *messenger.UserProfile) (*messenger.Message, error) {
		text := fmt.Sprintf(lo.Sample(greetings), firstName(user)) +
			" I'm a portfolio bot. Use the menu below, or pick a topic."
		return introReplies(text), nil
	}
	r.Register(messenger.PayloadGetStarted, greet)
	r.Register(messenger.PayloadIntro, greet)

	r.Register(messenger.PayloadHire, func(context.Context, *messenger.UserProfile) (*messenger.Message, error) {
		return messenger.NewButtonTemplate(
			"Here's my portfolio with recent work and ways to reach me.",
			messenger.URLButton("Open Portfolio", links.Portfolio),
		), nil
	})
	r.Register(messenger.PayloadContribute, func(context.Context, *messenger.UserProfile) (*messenger.Message, error) {
		return messenger.NewButtonTemplate(
			"Found a bug or have an idea? Open an issue on the repository.",
			messenger.URLButton("Report An Issue", links.Repository),
		), nil
	})
	r.Register(messenger.PayloadYes, func(context.Context, *messenger.UserProfile) (*messenger.Message, error) {
		return messenger.NewTextMessage("Thanks!"), nil
	})
	r.Register(messenger.PayloadNo, func(context.Context, *messenger.UserProfile) (*messenger.Message, error) {
		return messenger.NewTextMessage("Oops, try sending another image."), nil
	})
	return r
}

// NewQuickReplyResponder returns the registry answering quick reply chips.
// Payloads it does not know are looked up in postbacks.
func NewQuickReplyResponder(postbacks PayloadResponder) *Registry {
	r := NewRegistry(postbacks)

	r.Register(PayloadSkills, func(context.Context, *messenger.UserProfile) (*messenger.Message, error) {
		list := lo.Map(skills, func(s string, _ int) string { return "• " + s })
		return introReplies("Things I work with:\n" + strings.Join(list, "\n")), nil
	})
	r.Register(PayloadProjects, func(ctx context.Context, user *messenger.UserProfile) (*messenger.Message, error) {
		return postbacks.RespondPayload(ctx, messenger.PayloadHire, user)
	})
	r.Register(PayloadContact, func(_ context.Context, user *messenger.UserProfile) (*messenger.Message, error) {
		return messenger.NewTextMessage(fmt.Sprintf(
			"Thanks %s! Leave a message here and I'll get back to you as soon as I can.", firstName(user))), nil
	})
	return r
}

func introReplies(text string) *messenger.Message {
	return messenger.NewQuickReplies(text,
		messenger.NewQuickReply("Skills", PayloadSkills),
		messenger.NewQuickReply("Projects", PayloadProjects),
		messenger.NewQuickReply("Contact", PayloadContact),
	)
}

func unknownPayload(_ context.Context, _ string, user *messenger.UserProfile) (*messenger.Message, error) {
	return messenger.NewTextMessage(fmt.Sprintf(
		"Sorry %s, I don't know that option yet. Try the menu down below.", firstName(user))), nil
}

// DefaultResponders wires the built-in responders.
func DefaultResponders(links Links) Responders {
	postbacks := NewPostbackResponder(links)
	return Responders{
		Text:       MaintenanceResponder{},
		Attachment: AttachmentConfirmResponder{},
		QuickReply: NewQuickReplyResponder(postbacks),
		Postback:   postbacks,
	}
}
