package database

import (
	"fmt"
	"log"

	"whatsapp-inbox/internal/config"
	"whatsapp-inbox/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitGorm opens the configured database and runs auto-migration.
// DB_DRIVER selects postgres for deployment, sqlite for local use.
func InitGorm(cfg *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, cfg.DBSSLMode)
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}

	log.Println("Database initialized successfully (inbox, contact, message, image_message)")
	return db
}

// Migrate creates or updates the schema for all record kinds.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Inbox{},
		&models.Contact{},
		&models.Message{},
		&models.ImageMessage{},
	)
}
