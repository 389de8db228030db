package messenger

import "github.com/garyellow/messenger-portfolio-bot/internal/stringutil"

// Postback payloads shared by the persistent menu and the responders.
const (
	PayloadGetStarted = "GET_STARTED"
	PayloadIntro      = "intro"
	PayloadHire       = "hire"
	PayloadContribute = "contribute"
	PayloadYes        = "yes"
	PayloadNo         = "no"
)

// MaxGreetingText is the platform limit for the greeting text.
const MaxGreetingText = 160

// PersistentMenu is one locale's menu definition.
type PersistentMenu struct {
	Locale                string   `json:"locale"`
	ComposerInputDisabled bool     `json:"composer_input_disabled"`
	CallToActions         []Button `json:"call_to_actions"`
}

// MessengerProfile is the page-wide profile installed by the provisioning CLI.
type MessengerProfile struct {
	GetStarted     *GetStarted      `json:"get_started,omitempty"`
	Greeting       []Greeting       `json:"greeting,omitempty"`
	PersistentMenu []PersistentMenu `json:"persistent_menu,omitempty"`
}

// GetStarted configures the Get Started button payload.
type GetStarted struct {
	Payload string `json:"payload"`
}

// Greeting is the welcome text shown before the conversation starts.
type Greeting struct {
	Locale string `json:"locale"`
	Text   string `json:"text"`
}

// MenuActions returns the three fixed menu entries.
func MenuActions() []Button {
	return []Button{
		PostbackButton("Get To Know Me", PayloadIntro),
		PostbackButton("See My Portfolio", PayloadHire),
		PostbackButton("Report An Issue", PayloadContribute),
	}
}

// GuestMenu returns the persistent menu installed for guest users. Guests
// cannot type, so the composer is disabled and the menu is their only input.
func GuestMenu() []PersistentMenu {
	return []PersistentMenu{{
		Locale:                "default",
		ComposerInputDisabled: true,
		CallToActions:         MenuActions(),
	}}
}

// PageProfile returns the page-wide profile: Get Started, greeting and the
// same menu with the composer left enabled.
func PageProfile(greeting string) MessengerProfile {
	return MessengerProfile{
		GetStarted: &GetStarted{Payload: PayloadGetStarted},
		Greeting:   []Greeting{{Locale: "default", Text: stringutil.TruncateRunes(greeting, MaxGreetingText)}},
		PersistentMenu: []PersistentMenu{{
			Locale:        "default",
			CallToActions: MenuActions(),
		}},
	}
}
