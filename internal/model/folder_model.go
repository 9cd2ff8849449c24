package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Folder struct {
	Id        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"type:text;not null;index:idx_folders_scope_name"`
	SessionId *uuid.UUID `gorm:"type:uuid;index:idx_folders_scope_name"`
	Bucket    string     `gorm:"type:text;not null"`
	Prefix    string     `gorm:"type:text;not null"`
	CreatedAt time.Time  `gorm:"autoCreateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (Folder) TableName() string {
	return "folders"
}
