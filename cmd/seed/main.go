package main

import (
	"log"
	"os"
	"time"

	"doc-manager-be/internal/model"
	"doc-manager-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

// Seeds a starter folder and a demo clustering session so a fresh install has
// something to upload into.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		color.Red("Error: DB_CONNECTION_STRING is not set")
		os.Exit(1)
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		color.Red("Error: Failed to connect to database: %v", err)
		os.Exit(1)
	}

	masterBucket := os.Getenv("S3_MASTER_BUCKET")
	if masterBucket == "" {
		masterBucket = "doc-manager-master"
	}

	color.Cyan("🚀 Seeding starter data")
	seedFolder(db, "general", masterBucket)
	seedSession(db, "Demo Session", 0.7)
	color.Green("✅ Seeding complete")
}

func seedFolder(db *gorm.DB, name, masterBucket string) {
	var count int64
	db.Model(&model.Folder{}).Where("name = ? AND session_id IS NULL", name).Count(&count)
	if count > 0 {
		color.Yellow("Folder %q already exists, skipping", name)
		return
	}

	folder := model.Folder{
		Id:        uuid.New(),
		Name:      name,
		Bucket:    masterBucket,
		Prefix:    "folders/" + name,
		CreatedAt: time.Now(),
	}
	if err := db.Create(&folder).Error; err != nil {
		color.Red("Failed to seed folder %q: %v", name, err)
		return
	}
	color.Green("Seeded folder %q", name)
}

func seedSession(db *gorm.DB, name string, threshold float64) {
	var count int64
	db.Model(&model.Session{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		color.Yellow("Session %q already exists, skipping", name)
		return
	}

	session := model.Session{
		Id:                  uuid.New(),
		Name:                name,
		Description:         "Auto-created demo session",
		SimilarityThreshold: threshold,
		Active:              true,
		CreatedAt:           time.Now(),
	}
	if err := db.Create(&session).Error; err != nil {
		color.Red("Failed to seed session %q: %v", name, err)
		return
	}
	color.Green("Seeded session %q (threshold %.2f)", name, threshold)
}
