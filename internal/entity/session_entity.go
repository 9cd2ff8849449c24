package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session is a named similarity-clustering configuration. Documents uploaded
// into a session are auto-grouped into folders using its threshold.
type Session struct {
	Id                  uuid.UUID
	Name                string
	Description         string
	SimilarityThreshold float64
	CustomPrompt        string
	PromptModel         string
	Active              bool
	DocumentCount       int
	FolderCount         int
	CreatedAt           time.Time
	UpdatedAt           *time.Time
	DeletedAt           *time.Time
}
