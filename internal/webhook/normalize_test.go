package webhook

import (
	"testing"
	"time"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"
	wire "whatsapp-inbox/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func textEvent(fromMe bool) *wire.EventData {
	return &wire.EventData{
		InstanceID: "inst-1",
		Key: wire.MessageKey{
			ID:        "MSG-1",
			RemoteJid: "551199@s.whatsapp.net",
			FromMe:    fromMe,
		},
		PushName:         "Ana",
		Message:          &wire.MessageContent{Conversation: strPtr("hi")},
		MessageTimestamp: 1700000000,
	}
}

func TestNormalizeTextMessage(t *testing.T) {
	now := time.Now()
	res, err := Normalize(textEvent(false), now)
	require.NoError(t, err)

	require.NotNil(t, res.Text)
	assert.Nil(t, res.Image)
	assert.Equal(t, "MSG-1", res.Text.MessageID)
	assert.Equal(t, "551199@s.whatsapp.net", res.Text.WhatsappjID)
	assert.Equal(t, models.DirectionIncoming, res.Text.Direction)
	assert.Equal(t, "hi", res.Text.Content)
	assert.Equal(t, time.Unix(1700000000, 0), res.Text.Datetime)

	ev, ok := res.Event.(*wire.TextEvent)
	require.True(t, ok)
	assert.Equal(t, "text", ev.Type)
	assert.Equal(t, "Ana", ev.Contact)

	assert.Equal(t, "551199@s.whatsapp.net", res.Upsert.WhatsappjID)
	assert.Equal(t, models.DirectionIncoming, res.Upsert.Direction)
	assert.Equal(t, "inst-1", res.Upsert.InstanceID)
}

func TestNormalizeDirection(t *testing.T) {
	now := time.Now()

	res, err := Normalize(textEvent(true), now)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionOutgoing, res.Text.Direction)

	res, err = Normalize(textEvent(false), now)
	require.NoError(t, err)
	assert.Equal(t, models.DirectionIncoming, res.Text.Direction)
}

func TestNormalizeTimestampFallback(t *testing.T) {
	ev := textEvent(false)
	ev.MessageTimestamp = 0
	now := time.Now()

	res, err := Normalize(ev, now)
	require.NoError(t, err)
	assert.Equal(t, now, res.Text.Datetime)
}

func TestNormalizeImageMessage(t *testing.T) {
	ev := textEvent(false)
	ev.Message = &wire.MessageContent{
		ImageMessage: &wire.ImagePayload{
			URL:           "https://cdn.example.com/img.enc",
			Mimetype:      "image/jpeg",
			Caption:       "vacation",
			FileSha256:    "abc",
			FileLength:    "12345",
			Height:        600,
			Width:         800,
			MediaKey:      "key",
			FileEncSha256: "def",
		},
	}

	res, err := Normalize(ev, time.Now())
	require.NoError(t, err)
	require.NotNil(t, res.Image)
	assert.Nil(t, res.Text)
	assert.Equal(t, "MSG-1", res.Image.ID)
	assert.Equal(t, "https://cdn.example.com/img.enc", res.Image.URL)
	assert.Equal(t, "vacation", res.Image.Caption)
	assert.Equal(t, 800, res.Image.Width)
	assert.Equal(t, "def", res.Image.FileEncSha256)

	iev, ok := res.Event.(*wire.ImageEvent)
	require.True(t, ok)
	assert.Equal(t, "image", iev.Type)
	assert.Equal(t, "https://cdn.example.com/img.enc", iev.ImageURL)
	assert.Equal(t, 600, iev.Height)
}

func TestNormalizeSideChannelDropped(t *testing.T) {
	// Audio/video/document arrive as message blocks with neither a
	// conversation nor an imageMessage field: no event, upsert still runs.
	ev := textEvent(false)
	ev.Message = &wire.MessageContent{}

	res, err := Normalize(ev, time.Now())
	require.NoError(t, err)
	assert.Nil(t, res.Text)
	assert.Nil(t, res.Image)
	assert.Nil(t, res.Event)
	assert.Equal(t, "551199@s.whatsapp.net", res.Upsert.WhatsappjID)
}

func TestNormalizeMissingRequiredFields(t *testing.T) {
	ev := textEvent(false)
	ev.Key.ID = ""
	_, err := Normalize(ev, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalid, apperr.CodeOf(err))

	ev = textEvent(false)
	ev.Key.RemoteJid = ""
	_, err = Normalize(ev, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.CodeInvalid, apperr.CodeOf(err))
}
