package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type Document struct {
	Id          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Filename    string     `gorm:"type:text;not null"`
	Source      string     `gorm:"type:text"`
	Description string     `gorm:"type:text"`
	FolderId    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SessionId   *uuid.UUID `gorm:"type:uuid;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:'processing'"`
	StatusError string     `gorm:"type:text"`
	Size        int64
	StorageKey  string `gorm:"type:text;not null"`
	// text-embedding-3-small produces 1536 dimensions
	Embedding *pgvector.Vector `gorm:"type:vector(1536)"`
	CreatedAt time.Time        `gorm:"autoCreateTime"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt   `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
