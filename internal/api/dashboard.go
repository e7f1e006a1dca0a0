package api

import (
	"fmt"
	"time"

	"whatsapp-inbox/internal/models"
	"whatsapp-inbox/pkg/apperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	DB *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{DB: db}
}

// windows holds the aggregation boundaries, computed relative to now at
// call time. Day boundaries are local start-of-day.
type windows struct {
	today    time.Time
	tomorrow time.Time
	weekAgo  time.Time
	monthAgo time.Time
}

func windowsAt(now time.Time) windows {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return windows{
		today:    today,
		tomorrow: today.AddDate(0, 0, 1),
		weekAgo:  today.AddDate(0, 0, -7),
		monthAgo: today.AddDate(0, 0, -30),
	}
}

// GetDashboardInfo returns message and contact counts per window.
func (h *DashboardHandler) GetDashboardInfo(c *gin.Context) {
	info, err := h.collectInfo(windowsAt(time.Now()))
	if err != nil {
		Error(c, apperr.Internal("failed to aggregate dashboard counts", err))
		return
	}
	Success(c, info)
}

// GetDashboardTime returns the same counts plus 24 zero-filled hour buckets
// for the current day, per direction.
func (h *DashboardHandler) GetDashboardTime(c *gin.Context) {
	w := windowsAt(time.Now())
	info, err := h.collectInfo(w)
	if err != nil {
		Error(c, apperr.Internal("failed to aggregate dashboard counts", err))
		return
	}

	sentByTime, err := h.hourlyBuckets(models.DirectionOutgoing, w)
	if err != nil {
		Error(c, apperr.Internal("failed to bucket sent messages", err))
		return
	}
	receivedByTime, err := h.hourlyBuckets(models.DirectionIncoming, w)
	if err != nil {
		Error(c, apperr.Internal("failed to bucket received messages", err))
		return
	}

	info["messages_sent"].(gin.H)["sent_by_time"] = sentByTime
	info["messages_received"].(gin.H)["received_by_time"] = receivedByTime
	Success(c, info)
}

func (h *DashboardHandler) collectInfo(w windows) (gin.H, error) {
	sent, err := h.directionCounts(models.DirectionOutgoing, w)
	if err != nil {
		return nil, err
	}
	received, err := h.directionCounts(models.DirectionIncoming, w)
	if err != nil {
		return nil, err
	}

	var totalContacts int64
	if err := h.DB.Model(&models.Contact{}).Count(&totalContacts).Error; err != nil {
		return nil, err
	}

	talkedToday, err := h.distinctContacts(w.today, w.tomorrow)
	if err != nil {
		return nil, err
	}
	talkedWeek, err := h.distinctContacts(w.weekAgo, time.Time{})
	if err != nil {
		return nil, err
	}
	talkedMonth, err := h.distinctContacts(w.monthAgo, time.Time{})
	if err != nil {
		return nil, err
	}

	var totalInboxes int64
	if err := h.DB.Model(&models.Inbox{}).Count(&totalInboxes).Error; err != nil {
		return nil, err
	}

	return gin.H{
		"messages_sent":     sent,
		"messages_received": received,
		"contacts": gin.H{
			"active":              totalContacts,
			"talked_today":        talkedToday,
			"talked_last_7_days":  talkedWeek,
			"talked_last_30_days": talkedMonth,
		},
		"total_inboxes": totalInboxes,
	}, nil
}

func (h *DashboardHandler) directionCounts(direction string, w windows) (gin.H, error) {
	today, err := h.countMessages(direction, w.today, w.tomorrow)
	if err != nil {
		return nil, err
	}
	week, err := h.countMessages(direction, w.weekAgo, time.Time{})
	if err != nil {
		return nil, err
	}
	month, err := h.countMessages(direction, w.monthAgo, time.Time{})
	if err != nil {
		return nil, err
	}
	return gin.H{
		"today":        today,
		"last_7_days":  week,
		"last_30_days": month,
	}, nil
}

func (h *DashboardHandler) countMessages(direction string, from, to time.Time) (int64, error) {
	q := h.DB.Model(&models.Message{}).
		Where("message_type = ? AND datetime >= ?", direction, from)
	if !to.IsZero() {
		q = q.Where("datetime < ?", to)
	}
	var n int64
	return n, q.Count(&n).Error
}

func (h *DashboardHandler) distinctContacts(from, to time.Time) (int64, error) {
	q := h.DB.Model(&models.Message{}).
		Distinct("whatsappj_id").
		Where("datetime >= ?", from)
	if !to.IsZero() {
		q = q.Where("datetime < ?", to)
	}
	var n int64
	return n, q.Count(&n).Error
}

// hourlyBuckets groups today's messages for one direction into 24 hour
// buckets. Bucketing happens in Go so the same code serves sqlite and
// postgres. The result always has exactly 24 entries, zero-filled.
func (h *DashboardHandler) hourlyBuckets(direction string, w windows) ([]map[string]int64, error) {
	var stamps []time.Time
	err := h.DB.Model(&models.Message{}).
		Where("message_type = ? AND datetime >= ? AND datetime < ?", direction, w.today, w.tomorrow).
		Pluck("datetime", &stamps).Error
	if err != nil {
		return nil, err
	}

	var counts [24]int64
	for _, ts := range stamps {
		counts[ts.In(w.today.Location()).Hour()]++
	}

	buckets := make([]map[string]int64, 24)
	for hour := 0; hour < 24; hour++ {
		buckets[hour] = map[string]int64{
			fmt.Sprintf("time_%d", hour): counts[hour],
		}
	}
	return buckets, nil
}
