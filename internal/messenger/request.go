package messenger

// MessagingTypeResponse marks a message as a reply to a user-initiated event.
const MessagingTypeResponse = "RESPONSE"

// SenderAction is a presence update shown in the conversation.
type SenderAction string

// Sender actions.
const (
	ActionTypingOn  SenderAction = "typing_on"
	ActionTypingOff SenderAction = "typing_off"
	ActionMarkSeen  SenderAction = "mark_seen"
)

// TypingAction maps a typing flag to its sender action.
func TypingAction(typing bool) SenderAction {
	if typing {
		return ActionTypingOn
	}
	return ActionTypingOff
}

// SendRequest is the envelope posted to the Send API.
// The messaging type key uses a hyphen to match the wire shape this bot has always sent.
type SendRequest struct {
	Recipient     Recipient `json:"recipient"`
	Message       *Message  `json:"message"`
	MessagingType string    `json:"messaging-type"`
}

// NewSendRequest builds a RESPONSE envelope for psid.
func NewSendRequest(psid string, msg *Message) SendRequest {
	return SendRequest{
		Recipient:     Recipient{ID: psid},
		Message:       msg,
		MessagingType: MessagingTypeResponse,
	}
}

// SenderActionRequest is the envelope for presence updates.
type SenderActionRequest struct {
	Recipient    Recipient    `json:"recipient"`
	SenderAction SenderAction `json:"sender_action"`
}

// UserSettingsRequest installs per-user settings (custom_user_settings).
type UserSettingsRequest struct {
	PSID           string           `json:"psid"`
	PersistentMenu []PersistentMenu `json:"persistent_menu"`
}

// PageInfo is the subset of /me returned for operator checks.
type PageInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Result is the acknowledgement body of Graph POST calls.
type Result struct {
	RecipientID string `json:"recipient_id,omitempty"`
	MessageID   string `json:"message_id,omitempty"`
	Result      string `json:"result,omitempty"`
	Success     bool   `json:"success,omitempty"`
}
