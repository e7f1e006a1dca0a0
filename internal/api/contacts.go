package api

import (
	"errors"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ContactHandler struct {
	DB *gorm.DB
}

func NewContactHandler(db *gorm.DB) *ContactHandler {
	return &ContactHandler{DB: db}
}

func (h *ContactHandler) GetContacts(c *gin.Context) {
	instanceID := c.Query("instanceId")
	if instanceID == "" {
		Error(c, apperr.Invalid("instanceId is required"))
		return
	}

	var contacts []models.Contact
	err := h.DB.Where("instance_id = ?", instanceID).
		Order("created_at DESC").
		Find(&contacts).Error
	if err != nil {
		Error(c, apperr.Internal("failed to list contacts", err))
		return
	}

	// Return empty array instead of null
	if contacts == nil {
		contacts = []models.Contact{}
	}

	Success(c, gin.H{"contacts": contacts})
}

type CreateContactRequest struct {
	Pushname    string `json:"pushname" binding:"required"`
	WhatsappjID string `json:"WhatsappjId" binding:"required"`
	InstanceID  string `json:"instanceId" binding:"required"`
}

func (h *ContactHandler) CreateContact(c *gin.Context) {
	var req CreateContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, apperr.Invalid(err.Error()))
		return
	}

	var existing models.Contact
	err := h.DB.Where("whatsappj_id = ? AND instance_id = ?", req.WhatsappjID, req.InstanceID).
		First(&existing).Error
	if err == nil {
		Error(c, apperr.Conflict("Contact already exists"))
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, apperr.Internal("failed to check contact", err))
		return
	}

	contact := models.Contact{
		ContactID:   uuid.NewString(),
		WhatsappjID: req.WhatsappjID,
		Pushname:    &req.Pushname,
		InstanceID:  req.InstanceID,
	}
	if err := h.DB.Create(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			Error(c, apperr.Conflict("Contact already exists"))
			return
		}
		Error(c, apperr.Internal("failed to create contact", err))
		return
	}

	Success(c, gin.H{"contact": contact})
}

func (h *ContactHandler) DeleteContact(c *gin.Context) {
	contactID := c.Query("contactId")
	if contactID == "" {
		Error(c, apperr.Invalid("contactId is required"))
		return
	}

	var contact models.Contact
	err := h.DB.Where("contact_id = ?", contactID).First(&contact).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		Error(c, apperr.NotFound("Contact not found"))
		return
	}
	if err != nil {
		Error(c, apperr.Internal("failed to load contact", err))
		return
	}

	if err := h.DB.Delete(&contact).Error; err != nil {
		Error(c, apperr.Internal("failed to delete contact", err))
		return
	}

	Success(c, gin.H{"message": "Contact " + contactID + " deleted"})
}
