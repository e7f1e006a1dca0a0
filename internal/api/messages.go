package api

import (
	"errors"
	"sort"
	"time"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"
	wire "whatsapp-inbox/pkg/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MessageHandler struct {
	DB *gorm.DB
}

func NewMessageHandler(db *gorm.DB) *MessageHandler {
	return &MessageHandler{DB: db}
}

// GetMessages returns the merged text and image history for one contact,
// sorted ascending by timestamp.
func (h *MessageHandler) GetMessages(c *gin.Context) {
	instanceID := c.Query("instanceId")
	contactNumber := c.Query("contact_number")
	if instanceID == "" || contactNumber == "" {
		Error(c, apperr.Invalid("instanceId and contact_number are required"))
		return
	}
	whatsappID := contactNumber + jidSuffix

	var texts []models.Message
	err := h.DB.Where("instance_id = ? AND whatsappj_id = ?", instanceID, whatsappID).
		Order("datetime ASC").
		Find(&texts).Error
	if err != nil {
		Error(c, apperr.Internal("failed to load messages", err))
		return
	}

	var images []models.ImageMessage
	err = h.DB.Where("instance_id = ? AND whatsappj_id = ?", instanceID, whatsappID).
		Order("datetime ASC").
		Find(&images).Error
	if err != nil {
		Error(c, apperr.Internal("failed to load image messages", err))
		return
	}

	contactName := ""
	var contact models.Contact
	err = h.DB.Where("whatsappj_id = ?", whatsappID).First(&contact).Error
	if err == nil && contact.Pushname != nil {
		contactName = *contact.Pushname
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, apperr.Internal("failed to load contact", err))
		return
	}

	type timedItem struct {
		at   time.Time
		item any
	}
	merged := make([]timedItem, 0, len(texts)+len(images))
	for _, msg := range texts {
		merged = append(merged, timedItem{at: msg.Datetime, item: &wire.TextEvent{
			Type:        "text",
			MessageID:   msg.MessageID,
			WhatsappjID: msg.WhatsappjID,
			Direction:   msg.Direction,
			Content:     msg.Content,
			Contact:     contactName,
			Datetime:    msg.Datetime,
		}})
	}
	for _, img := range images {
		merged = append(merged, timedItem{at: img.Datetime, item: &wire.ImageEvent{
			Type:        "image",
			MessageID:   img.MessageID,
			WhatsappjID: img.WhatsappjID,
			Direction:   img.Direction,
			ImageURL:    img.URL,
			Mimetype:    img.Mimetype,
			Caption:     img.Caption,
			Height:      img.Height,
			Width:       img.Width,
			Contact:     contactName,
			Datetime:    img.Datetime,
		}})
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].at.Before(merged[j].at)
	})

	items := make([]any, len(merged))
	for i, m := range merged {
		items[i] = m.item
	}

	Success(c, gin.H{"messages": items})
}
