package models

// WebhookPayload represents the incoming JSON payload from the messaging
// gateway. The event block arrives nested under "data", but some gateway
// versions post it at the top level, so both are accepted.
type WebhookPayload struct {
	EventData
	Data *EventData `json:"data,omitempty"`
}

// Event returns the effective event block of the payload.
func (p *WebhookPayload) Event() *EventData {
	if p.Data != nil {
		return p.Data
	}
	return &p.EventData
}

// EventData is one message event as reported by the gateway.
type EventData struct {
	InstanceID       string          `json:"instanceId"`
	Key              MessageKey      `json:"key"`
	PushName         string          `json:"pushName"`
	Message          *MessageContent `json:"message,omitempty"`
	MessageTimestamp int64           `json:"messageTimestamp,omitempty"`
}

// MessageKey identifies a message within a chat.
type MessageKey struct {
	ID        string `json:"id"`
	RemoteJid string `json:"remoteJid"`
	FromMe    bool   `json:"fromMe"`
}

// MessageContent holds the message body variants. Exactly one field is set
// for the message kinds we log; other media kinds arrive as keys we do not
// model and are dropped.
type MessageContent struct {
	Conversation *string       `json:"conversation,omitempty"`
	ImageMessage *ImagePayload `json:"imageMessage,omitempty"`
}

// ImagePayload represents the media metadata of an image message.
type ImagePayload struct {
	URL           string `json:"url"`
	Mimetype      string `json:"mimetype,omitempty"`
	Caption       string `json:"caption,omitempty"`
	FileSha256    string `json:"fileSha256,omitempty"`
	FileLength    string `json:"fileLength,omitempty"`
	Height        int    `json:"height,omitempty"`
	Width         int    `json:"width,omitempty"`
	MediaKey      string `json:"mediaKey,omitempty"`
	FileEncSha256 string `json:"fileEncSha256,omitempty"`
}
