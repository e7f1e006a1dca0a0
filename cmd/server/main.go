package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"whatsapp-inbox/internal/api"
	"whatsapp-inbox/internal/config"
	"whatsapp-inbox/internal/database"
	"whatsapp-inbox/internal/webhook"
	"whatsapp-inbox/internal/ws"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()
	db := database.InitGorm(cfg)

	r := gin.Default()

	// CORS Middleware
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	hub := ws.NewHub()
	webhookHandler := webhook.NewHandler(db, hub)
	conversationHandler := api.NewConversationHandler(db)
	messageHandler := api.NewMessageHandler(db)
	contactHandler := api.NewContactHandler(db)
	inboxHandler := api.NewInboxHandler(db)
	dashboardHandler := api.NewDashboardHandler(db)

	// Webhook ingestion + live viewer channel
	r.POST("/webhook/mensagens", webhookHandler.HandleMessage)
	r.GET("/ws/mensagens", func(c *gin.Context) {
		hub.ServeWs(c.Writer, c.Request)
	})

	// Conversation / message history
	r.GET("/conversations", conversationHandler.GetConversations)
	r.GET("/messages", messageHandler.GetMessages)

	// Contact CRUD
	contactGroup := r.Group("/contacts")
	{
		contactGroup.GET("/", contactHandler.GetContacts)
		contactGroup.POST("/", contactHandler.CreateContact)
		contactGroup.DELETE("/", contactHandler.DeleteContact)
	}

	// Inbox CRUD
	inboxGroup := r.Group("/inbox")
	{
		inboxGroup.POST("/create_inbox", inboxHandler.CreateInbox)
		inboxGroup.GET("/", inboxHandler.GetInboxes)
		inboxGroup.DELETE("/:inboxId", inboxHandler.DeleteInbox)
	}

	// Dashboard
	r.GET("/dashboard_info", dashboardHandler.GetDashboardInfo)
	r.GET("/dashboard_time", dashboardHandler.GetDashboardTime)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to run server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down")
	hub.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
