package webhook

import (
	"errors"
	"log"
	"net/http"
	"time"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/internal/ws"
	wire "whatsapp-inbox/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Handler struct {
	DB  *gorm.DB
	Hub *ws.Hub
}

func NewHandler(db *gorm.DB, hub *ws.Hub) *Handler {
	return &Handler{
		DB:  db,
		Hub: hub,
	}
}

// HandleMessage ingests one gateway webhook event: normalize, persist the
// message and contact in a single transaction, then broadcast to live
// viewers. The broadcast is best-effort and never fails the ingestion.
func (h *Handler) HandleMessage(c *gin.Context) {
	var payload wire.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		log.Printf("Error binding webhook JSON: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "details": err.Error()})
		return
	}

	res, err := Normalize(payload.Event(), time.Now())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "details": err.Error()})
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if res.Text != nil {
			if err := tx.Create(res.Text).Error; err != nil {
				return err
			}
		}
		if res.Image != nil {
			if err := tx.Create(res.Image).Error; err != nil {
				return err
			}
		}
		return upsertContact(tx, res.Upsert, time.Now())
	})
	if err != nil {
		log.Printf("Error ingesting webhook event %s: %v", payload.Event().Key.ID, err)
		status := http.StatusInternalServerError
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			status = http.StatusConflict
		}
		c.JSON(status, gin.H{"status": "error", "details": err.Error()})
		return
	}

	if res.Event != nil {
		h.Hub.Publish(res.Event)
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// upsertContact creates the contact on first sight, or refreshes its
// pushname when the contact messaged us themselves.
func upsertContact(tx *gorm.DB, u ContactUpsert, now time.Time) error {
	var existing models.Contact
	err := tx.Where("whatsappj_id = ?", u.WhatsappjID).First(&existing).Error
	if err == nil {
		if u.Direction == models.DirectionIncoming && u.Pushname != "" {
			return tx.Model(&existing).Updates(map[string]any{
				"pushname":   u.Pushname,
				"updated_at": now,
			}).Error
		}
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	contact := models.Contact{
		ContactID:   uuid.NewString(),
		WhatsappjID: u.WhatsappjID,
		InstanceID:  u.InstanceID,
	}
	if u.Direction == models.DirectionIncoming && u.Pushname != "" {
		contact.Pushname = &u.Pushname
	}
	return tx.Create(&contact).Error
}
