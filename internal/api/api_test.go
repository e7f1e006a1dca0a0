package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"whatsapp-inbox/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

// newTestRouter wires every REST handler against a fresh in-memory DB.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	r := gin.New()
	conversationHandler := NewConversationHandler(db)
	messageHandler := NewMessageHandler(db)
	contactHandler := NewContactHandler(db)
	inboxHandler := NewInboxHandler(db)
	dashboardHandler := NewDashboardHandler(db)

	r.GET("/conversations", conversationHandler.GetConversations)
	r.GET("/messages", messageHandler.GetMessages)
	contactGroup := r.Group("/contacts")
	{
		contactGroup.GET("/", contactHandler.GetContacts)
		contactGroup.POST("/", contactHandler.CreateContact)
		contactGroup.DELETE("/", contactHandler.DeleteContact)
	}
	inboxGroup := r.Group("/inbox")
	{
		inboxGroup.POST("/create_inbox", inboxHandler.CreateInbox)
		inboxGroup.GET("/", inboxHandler.GetInboxes)
		inboxGroup.DELETE("/:inboxId", inboxHandler.DeleteInbox)
	}
	r.GET("/dashboard_info", dashboardHandler.GetDashboardInfo)
	r.GET("/dashboard_time", dashboardHandler.GetDashboardTime)

	return r, db
}

func doRequest(t *testing.T, r *gin.Engine, method, path string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func requireSuccess(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody(t, w)
	require.Equal(t, "Success", resp["status"])
	return resp
}
