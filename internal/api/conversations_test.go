package api

import (
	"net/http"
	"testing"
	"time"

	"whatsapp-inbox/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConversations(t *testing.T) {
	r, db := newTestRouter(t)
	seedContact(t, db, "551199@s.whatsapp.net", "Ana", "inst-1")
	seedContact(t, db, "552288@s.whatsapp.net", "Bruno", "inst-1")
	// A contact with no messages yet is not listed.
	seedContact(t, db, "553377@s.whatsapp.net", "Carla", "inst-1")
	// Other instances are filtered out.
	seedContact(t, db, "554466@s.whatsapp.net", "Duda", "inst-2")

	base := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&models.Message{
		MessageID: "M1", Datetime: base, WhatsappjID: "551199@s.whatsapp.net",
		Direction: models.DirectionIncoming, Content: "old", InstanceID: "inst-1",
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		MessageID: "M2", Datetime: base.Add(time.Hour), WhatsappjID: "551199@s.whatsapp.net",
		Direction: models.DirectionOutgoing, Content: "latest", InstanceID: "inst-1",
	}).Error)
	require.NoError(t, db.Create(&models.Message{
		MessageID: "M3", Datetime: base, WhatsappjID: "552288@s.whatsapp.net",
		Direction: models.DirectionIncoming, Content: "oi", InstanceID: "inst-1",
	}).Error)

	w := doRequest(t, r, http.MethodGet, "/conversations?instanceId=inst-1", nil)
	resp := requireSuccess(t, w)
	conversations := resp["conversations"].([]any)
	require.Len(t, conversations, 2)

	byNumber := map[string]map[string]any{}
	for _, raw := range conversations {
		row := raw.(map[string]any)
		byNumber[row["contact_number"].(string)] = row
	}

	ana := byNumber["551199"]
	require.NotNil(t, ana)
	assert.Equal(t, "Ana", ana["contact_name"])
	assert.Equal(t, "latest", ana["last_message"])
	assert.Equal(t, base.Add(time.Hour).Format("2006-01-02 15:04:05"), ana["last_update"])

	bruno := byNumber["552288"]
	require.NotNil(t, bruno)
	assert.Equal(t, "oi", bruno["last_message"])
}

func TestGetConversationsRequiresInstanceID(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doRequest(t, r, http.MethodGet, "/conversations", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Error", resp["status"])
}
