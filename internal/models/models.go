package models

import (
	"time"
)

// Inbox represents one connected gateway instance.
type Inbox struct {
	InboxID     string `gorm:"primaryKey;column:inbox_id" json:"inbox_id"`
	InstanceID  string `gorm:"index;column:instance_id" json:"instance_id"`
	URLEvo      string `gorm:"column:url_evo;not null" json:"url_evo"`
	APIKey      string `gorm:"column:api_key;not null" json:"api_key"`
	WhatsappjID string `gorm:"column:whatsappj_id;not null" json:"whatsappjID"`
	InboxName   string `gorm:"column:inbox_name;not null" json:"inbox_name"`
}

func (Inbox) TableName() string {
	return "inbox"
}

// Contact represents a chat participant, upserted on first message.
// Pushname stays NULL until the contact sends something themselves.
type Contact struct {
	ContactID   string     `gorm:"primaryKey;column:contact_id" json:"contactId"`
	WhatsappjID string     `gorm:"column:whatsappj_id;uniqueIndex;not null" json:"WhatsappjId"`
	Pushname    *string    `gorm:"column:pushname" json:"pushname"`
	InstanceID  string     `gorm:"column:instance_id;not null" json:"instanceId"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   *time.Time `gorm:"column:updated_at;autoUpdateTime:false" json:"updatedAt"`
}

func (Contact) TableName() string {
	return "contact"
}

// Message represents a text message. Immutable once created.
// Direction is "Incoming" or "Outgoing".
type Message struct {
	MessageID   string    `gorm:"primaryKey;column:message_id" json:"messageId"`
	Datetime    time.Time `gorm:"column:datetime;not null;index" json:"datetime"`
	WhatsappjID string    `gorm:"column:whatsappj_id;index;not null" json:"WhatsappjId"`
	Direction   string    `gorm:"column:message_type;not null" json:"Message_Type"`
	Content     string    `gorm:"column:message_content;type:text" json:"Message_Content"`
	InstanceID  string    `gorm:"column:instance_id;not null" json:"instanceId"`
}

func (Message) TableName() string {
	return "message"
}

// ImageMessage represents an image message with its media metadata.
// Stored separately from text messages; immutable once created.
type ImageMessage struct {
	ID            string    `gorm:"primaryKey" json:"id"`
	MessageID     string    `gorm:"column:message_id;index" json:"messageId"`
	WhatsappjID   string    `gorm:"column:whatsappj_id;index" json:"WhatsappjId"`
	InstanceID    string    `gorm:"column:instance_id;index" json:"instanceId"`
	Datetime      time.Time `gorm:"column:datetime;not null;index" json:"datetime"`
	URL           string    `gorm:"column:url;not null" json:"url"`
	Mimetype      string    `gorm:"column:mimetype" json:"mimetype"`
	Caption       string    `gorm:"column:caption" json:"caption"`
	FileSha256    string    `gorm:"column:file_sha256" json:"fileSha256"`
	FileLength    string    `gorm:"column:file_length" json:"fileLength"`
	Height        int       `json:"height"`
	Width         int       `json:"width"`
	MediaKey      string    `gorm:"column:media_key" json:"mediaKey"`
	FileEncSha256 string    `gorm:"column:file_enc_sha256" json:"fileEncSha256"`
	Direction     string    `gorm:"column:message_type;not null" json:"Message_Type"`
}

func (ImageMessage) TableName() string {
	return "image_message"
}

// Direction values stored in message_type columns.
const (
	DirectionIncoming = "Incoming"
	DirectionOutgoing = "Outgoing"
)
