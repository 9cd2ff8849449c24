package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByFolder scopes documents to a single folder
type ByFolder struct {
	FolderId uuid.UUID
}

func (s ByFolder) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("folder_id = ?", s.FolderId)
}

// BySession scopes documents or folders to one session
type BySession struct {
	SessionId uuid.UUID
}

func (s BySession) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionId)
}

// TopLevelOnly keeps rows that belong to no session (the folder registry)
type TopLevelOnly struct{}

func (s TopLevelOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id IS NULL")
}

// ByName filters by exact name
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}
