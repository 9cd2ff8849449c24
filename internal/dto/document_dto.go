package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentInput carries a multipart upload into the service layer.
type UploadDocumentInput struct {
	Filename    string
	Content     []byte
	SourceName  string
	FolderName  string
	Description string
}

type DocumentResponse struct {
	Id          uuid.UUID `json:"id"`
	Filename    string    `json:"filename"`
	Source      string    `json:"source"`
	Description string    `json:"description,omitempty"`
	Folder      string    `json:"folder"`
	Status      string    `json:"status"`
	Size        int64     `json:"size"`
	CreatedAt   time.Time `json:"created_at"`
}

type DocumentStatusResponse struct {
	Status    string `json:"status"`
	Filename  string `json:"filename"`
	Processed bool   `json:"processed"`
	Error     string `json:"error,omitempty"`
}

// PublishIndexMessage is the payload queued for background chunk indexing.
type PublishIndexMessage struct {
	DocumentId uuid.UUID `json:"document_id"`
}
