package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Session struct {
	Id                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name                string    `gorm:"type:text;not null"`
	Description         string    `gorm:"type:text"`
	SimilarityThreshold float64   `gorm:"not null;default:0.7"`
	CustomPrompt        string    `gorm:"type:text"`
	PromptModel         string    `gorm:"type:text"`
	Active              bool      `gorm:"not null;default:true"`
	DocumentCount       int       `gorm:"not null;default:0"`
	FolderCount         int       `gorm:"not null;default:0"`
	CreatedAt           time.Time `gorm:"autoCreateTime"`
	UpdatedAt           time.Time `gorm:"autoUpdateTime"`
	DeletedAt           gorm.DeletedAt `gorm:"index"`
}

func (Session) TableName() string {
	return "sessions"
}
