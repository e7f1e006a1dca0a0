package api

import (
	"errors"
	"strings"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const jidSuffix = "@s.whatsapp.net"

type ConversationHandler struct {
	DB *gorm.DB
}

func NewConversationHandler(db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{DB: db}
}

type ConversationRow struct {
	ContactName   *string `json:"contact_name"`
	ContactNumber string  `json:"contact_number"`
	LastMessage   string  `json:"last_message"`
	LastUpdate    string  `json:"last_update"`
}

// GetConversations returns one row per contact that has at least one text
// message, carrying that contact's most recent message.
func (h *ConversationHandler) GetConversations(c *gin.Context) {
	instanceID := c.Query("instanceId")
	if instanceID == "" {
		Error(c, apperr.Invalid("instanceId is required"))
		return
	}

	var contacts []models.Contact
	if err := h.DB.Where("instance_id = ?", instanceID).Find(&contacts).Error; err != nil {
		Error(c, apperr.Internal("failed to list contacts", err))
		return
	}

	conversations := []ConversationRow{}
	for _, contact := range contacts {
		var last models.Message
		err := h.DB.Where("whatsappj_id = ?", contact.WhatsappjID).
			Order("datetime DESC").
			First(&last).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			continue
		}
		if err != nil {
			Error(c, apperr.Internal("failed to load last message", err))
			return
		}
		conversations = append(conversations, ConversationRow{
			ContactName:   contact.Pushname,
			ContactNumber: strings.TrimSuffix(contact.WhatsappjID, jidSuffix),
			LastMessage:   last.Content,
			LastUpdate:    last.Datetime.Format("2006-01-02 15:04:05"),
		})
	}

	Success(c, gin.H{"conversations": conversations})
}
