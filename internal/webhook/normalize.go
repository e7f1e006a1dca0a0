package webhook

import (
	"time"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"
	wire "whatsapp-inbox/pkg/models"
)

// ContactUpsert directs the store to create or refresh the contact behind a
// message. Pushname is only applied on Incoming traffic so outbound messages
// never seed a contact with the bot's own identity.
type ContactUpsert struct {
	WhatsappjID string
	Pushname    string
	Direction   string
	InstanceID  string
}

// Result is the canonical form of one webhook event: at most one message
// record plus the broadcast event derived from it, and always a contact
// upsert directive. Side-channel media (audio, video, documents) produce
// neither record nor event.
type Result struct {
	Text   *models.Message
	Image  *models.ImageMessage
	Event  any // *wire.TextEvent or *wire.ImageEvent
	Upsert ContactUpsert
}

// Normalize maps a gateway event block to its canonical form. now is used
// when the gateway did not report a timestamp.
func Normalize(ev *wire.EventData, now time.Time) (*Result, error) {
	if ev.Key.ID == "" {
		return nil, apperr.Invalid("missing message id (key.id)")
	}
	if ev.Key.RemoteJid == "" {
		return nil, apperr.Invalid("missing remote JID (key.remoteJid)")
	}

	direction := models.DirectionIncoming
	if ev.Key.FromMe {
		direction = models.DirectionOutgoing
	}

	ts := now
	if ev.MessageTimestamp > 0 {
		ts = time.Unix(ev.MessageTimestamp, 0)
	}

	res := &Result{
		Upsert: ContactUpsert{
			WhatsappjID: ev.Key.RemoteJid,
			Pushname:    ev.PushName,
			Direction:   direction,
			InstanceID:  ev.InstanceID,
		},
	}

	switch {
	case ev.Message == nil:
		// State-change callbacks carry no message block. The contact
		// upsert still applies.
	case ev.Message.Conversation != nil:
		res.Text = &models.Message{
			MessageID:   ev.Key.ID,
			Datetime:    ts,
			WhatsappjID: ev.Key.RemoteJid,
			Direction:   direction,
			Content:     *ev.Message.Conversation,
			InstanceID:  ev.InstanceID,
		}
		res.Event = &wire.TextEvent{
			Type:        "text",
			MessageID:   res.Text.MessageID,
			WhatsappjID: res.Text.WhatsappjID,
			Direction:   direction,
			Content:     res.Text.Content,
			Contact:     ev.PushName,
			Datetime:    ts,
		}
	case ev.Message.ImageMessage != nil:
		img := ev.Message.ImageMessage
		res.Image = &models.ImageMessage{
			ID:            ev.Key.ID,
			MessageID:     ev.Key.ID,
			WhatsappjID:   ev.Key.RemoteJid,
			InstanceID:    ev.InstanceID,
			Datetime:      ts,
			URL:           img.URL,
			Mimetype:      img.Mimetype,
			Caption:       img.Caption,
			FileSha256:    img.FileSha256,
			FileLength:    img.FileLength,
			Height:        img.Height,
			Width:         img.Width,
			MediaKey:      img.MediaKey,
			FileEncSha256: img.FileEncSha256,
			Direction:     direction,
		}
		res.Event = &wire.ImageEvent{
			Type:        "image",
			MessageID:   res.Image.MessageID,
			WhatsappjID: res.Image.WhatsappjID,
			Direction:   direction,
			ImageURL:    img.URL,
			Mimetype:    img.Mimetype,
			Caption:     img.Caption,
			Height:      img.Height,
			Width:       img.Width,
			Contact:     ev.PushName,
			Datetime:    ts,
		}
	}

	return res, nil
}
