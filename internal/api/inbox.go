package api

import (
	"errors"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InboxHandler struct {
	DB *gorm.DB
}

func NewInboxHandler(db *gorm.DB) *InboxHandler {
	return &InboxHandler{DB: db}
}

type CreateInboxRequest struct {
	InstanceID  string `json:"instance_id" binding:"required"`
	URLEvo      string `json:"url_evo" binding:"required"`
	APIKey      string `json:"api_key" binding:"required"`
	WhatsappjID string `json:"whatsappjID" binding:"required"`
	InboxName   string `json:"inbox_name" binding:"required"`
}

func (h *InboxHandler) CreateInbox(c *gin.Context) {
	var req CreateInboxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, apperr.Invalid(err.Error()))
		return
	}

	inbox := models.Inbox{
		InboxID:     uuid.NewString(),
		InstanceID:  req.InstanceID,
		URLEvo:      req.URLEvo,
		APIKey:      req.APIKey,
		WhatsappjID: req.WhatsappjID,
		InboxName:   req.InboxName,
	}
	if err := h.DB.Create(&inbox).Error; err != nil {
		Error(c, apperr.Internal("failed to create inbox", err))
		return
	}

	Success(c, gin.H{"inbox": inbox})
}

func (h *InboxHandler) GetInboxes(c *gin.Context) {
	var inboxes []models.Inbox
	if err := h.DB.Find(&inboxes).Error; err != nil {
		Error(c, apperr.Internal("failed to list inboxes", err))
		return
	}

	if inboxes == nil {
		inboxes = []models.Inbox{}
	}

	Success(c, gin.H{"inboxes": inboxes})
}

func (h *InboxHandler) DeleteInbox(c *gin.Context) {
	inboxID := c.Param("inboxId")

	var inbox models.Inbox
	err := h.DB.Where("inbox_id = ?", inboxID).First(&inbox).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, apperr.NotFound("Inbox not found"))
		return
	}
	if err != nil {
		Error(c, apperr.Internal("failed to load inbox", err))
		return
	}

	if err := h.DB.Delete(&inbox).Error; err != nil {
		Error(c, apperr.Internal("failed to delete inbox", err))
		return
	}

	Success(c, gin.H{"message": "Inbox " + inboxID + " deleted"})
}
