package entity

import (
	"time"

	"github.com/google/uuid"
)

type DocumentStatus string

const (
	DocumentStatusProcessing DocumentStatus = "processing"
	DocumentStatusProcessed  DocumentStatus = "processed"
	DocumentStatusError      DocumentStatus = "error"
)

type Document struct {
	Id          uuid.UUID
	Filename    string
	Source      string
	Description string
	FolderId    uuid.UUID
	SessionId   *uuid.UUID
	Status      DocumentStatus
	StatusError string
	Size        int64
	StorageKey  string
	// Embedding holds the document-level vector used for similarity
	// placement. Nil until the document has been embedded.
	Embedding []float32
	CreatedAt time.Time
	UpdatedAt *time.Time
	DeletedAt *time.Time
}
