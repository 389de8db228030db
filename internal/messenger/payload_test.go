package messenger

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTextMessage(t *testing.T) {
	t.Parallel()

	msg := NewTextMessage("hi")
	assert.Equal(t, "hi", msg.Text)
	assert.Nil(t, msg.Attachment)

	long := NewTextMessage(strings.Repeat("a", MaxTextLength+10))
	assert.Len(t, []rune(long.Text), MaxTextLength)
}

func TestNewQuickReplies(t *testing.T) {
	t.Parallel()

	replies := make([]QuickReply, 0, MaxQuickReplies+2)
	for range MaxQuickReplies + 2 {
		replies = append(replies, NewQuickReply("a very long quick reply title", "p"))
	}
	msg := NewQuickReplies("pick one", replies...)

	assert.Equal(t, "pick one", msg.Text)
	assert.Len(t, msg.QuickReplies, MaxQuickReplies)
	assert.Equal(t, "text", msg.QuickReplies[0].ContentType)
	assert.LessOrEqual(t, len([]rune(msg.QuickReplies[0].Title)), MaxQuickReplyTitle)
}

func TestNewButtonTemplate(t *testing.T) {
	t.Parallel()

	msg := NewButtonTemplate("choose",
		PostbackButton("One", "1"),
		URLButton("Two", "https://example.com"),
		PostbackButton("Three", "3"),
		PostbackButton("Four", "4"),
	)
	require.NotNil(t, msg.Attachment)
	assert.Equal(t, "template", msg.Attachment.Type)
	assert.Equal(t, "button", msg.Attachment.Payload.TemplateType)
	assert.Equal(t, "choose", msg.Attachment.Payload.Text)
	require.Len(t, msg.Attachment.Payload.Buttons, MaxButtons)
	assert.Equal(t, "web_url", msg.Attachment.Payload.Buttons[1].Type)
	assert.Equal(t, "https://example.com", msg.Attachment.Payload.Buttons[1].URL)
}

func TestNewGenericTemplate(t *testing.T) {
	t.Parallel()

	msg := NewGenericTemplate(Element{
		Title:    "Is this the right picture?",
		Subtitle: "Tap a button to answer.",
		ImageURL: "https://x/y.png",
		Buttons:  []Button{PostbackButton("Yes!", PayloadYes), PostbackButton("No!", PayloadNo)},
	})

	raw, err := json.Marshal(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"attachment":{"type":"template","payload":{"template_type":"generic","elements":[
		{"title":"Is this the right picture?","subtitle":"Tap a button to answer.","image_url":"https://x/y.png",
		 "buttons":[{"type":"postback","title":"Yes!","payload":"yes"},{"type":"postback","title":"No!","payload":"no"}]}
	]}}}`, string(raw))
}

func TestSendRequestWireShape(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(NewSendRequest("psid-1", NewTextMessage("hello")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"recipient":{"id":"psid-1"},"message":{"text":"hello"},"messaging-type":"RESPONSE"}`, string(raw))
}

func TestSenderActionRequestWireShape(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(SenderActionRequest{Recipient: Recipient{ID: "psid-1"}, SenderAction: TypingAction(true)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"recipient":{"id":"psid-1"},"sender_action":"typing_on"}`, string(raw))
	assert.Equal(t, ActionTypingOff, TypingAction(false))
}
