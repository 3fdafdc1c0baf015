package whatsapp

import (
	"fmt"
	"strings"
	"time"

	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

// InboundMessage is a customer text message addressed to one tenant's device.
type InboundMessage struct {
	TenantID  string
	From      string
	Text      string
	Timestamp time.Time
}

// inboundFrom normalises a whatsmeow message event. Group chats, status
// broadcasts, our own messages and messages without text are skipped.
func inboundFrom(tenantID string, evt *events.Message) (InboundMessage, bool) {
	if evt == nil || evt.Message == nil {
		return InboundMessage{}, false
	}
	info := evt.Info
	if info.IsFromMe || info.IsGroup || info.Chat.Server == types.BroadcastServer {
		return InboundMessage{}, false
	}

	text := strings.TrimSpace(messageText(evt.Message))
	if text == "" {
		return InboundMessage{}, false
	}

	from := info.Sender.User
	if from == "" {
		from = info.Chat.User
	}
	return InboundMessage{
		TenantID:  tenantID,
		From:      from,
		Text:      text,
		Timestamp: info.Timestamp,
	}, true
}

func messageText(msg *waE2E.Message) string {
	switch {
	case msg.GetConversation() != "":
		return msg.GetConversation()
	case msg.GetExtendedTextMessage().GetText() != "":
		return msg.GetExtendedTextMessage().GetText()
	case msg.GetImageMessage().GetCaption() != "":
		return msg.GetImageMessage().GetCaption()
	case msg.GetVideoMessage().GetCaption() != "":
		return msg.GetVideoMessage().GetCaption()
	}
	return ""
}

// recipientJID turns a phone number ("+255 712 345 678", "255712345678" or a
// full JID) into a user JID.
func recipientJID(phone string) (types.JID, error) {
	if strings.Contains(phone, "@") {
		jid, err := types.ParseJID(phone)
		if err != nil {
			return types.JID{}, fmt.Errorf("invalid jid %q: %w", phone, err)
		}
		return jid.ToNonAD(), nil
	}

	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, phone)
	if len(digits) < 7 {
		return types.JID{}, fmt.Errorf("invalid phone number %q", phone)
	}
	return types.NewJID(digits, types.DefaultUserServer), nil
}
