package models

import "time"

// TextEvent is the canonical form of a text message. It is broadcast to
// live viewers and reused as the item shape of the message history endpoint.
type TextEvent struct {
	Type        string    `json:"type"`
	MessageID   string    `json:"messageId"`
	WhatsappjID string    `json:"WhatsappjId"`
	Direction   string    `json:"Message_Type"`
	Content     string    `json:"Message_Content"`
	Contact     string    `json:"contact"`
	Datetime    time.Time `json:"datetime"`
}

// ImageEvent is the canonical form of an image message.
type ImageEvent struct {
	Type        string    `json:"type"`
	MessageID   string    `json:"messageId"`
	WhatsappjID string    `json:"WhatsappjId"`
	Direction   string    `json:"Message_Type"`
	ImageURL    string    `json:"image_url"`
	Mimetype    string    `json:"mimetype"`
	Caption     string    `json:"caption"`
	Height      int       `json:"height"`
	Width       int       `json:"width"`
	Contact     string    `json:"contact"`
	Datetime    time.Time `json:"datetime"`
}
