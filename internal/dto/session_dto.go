package dto

import (
	"time"

	"doc-manager-be/pkg/similarity"

	"github.com/google/uuid"
)

type CreateSessionRequest struct {
	Name                string   `json:"name" validate:"required"`
	Description         string   `json:"description"`
	SimilarityThreshold *float64 `json:"similarity_threshold" validate:"omitempty,gte=0,lte=1"`
	CustomPrompt        string   `json:"custom_prompt"`
	PromptModel         string   `json:"prompt_model"`
}

type UpdateSessionRequest struct {
	Id                  uuid.UUID `json:"-"`
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	SimilarityThreshold *float64  `json:"similarity_threshold" validate:"omitempty,gte=0,lte=1"`
	CustomPrompt        *string   `json:"custom_prompt"`
	PromptModel         *string   `json:"prompt_model"`
	Active              *bool     `json:"active"`
}

type SessionResponse struct {
	Id                  uuid.UUID  `json:"id"`
	Name                string     `json:"name"`
	Description         string     `json:"description,omitempty"`
	SimilarityThreshold float64    `json:"similarity_threshold"`
	CustomPrompt        string     `json:"custom_prompt,omitempty"`
	PromptModel         string     `json:"prompt_model,omitempty"`
	Active              bool       `json:"active"`
	DocumentCount       int        `json:"document_count"`
	FolderCount         int        `json:"folder_count"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// UploadToSessionInput carries a session upload into the engine.
type UploadToSessionInput struct {
	SessionId uuid.UUID
	Filename  string
	Content   []byte
}

type SessionUploadResponse struct {
	Message        string                  `json:"message"`
	DocumentId     uuid.UUID               `json:"document_id"`
	Folder         string                  `json:"folder"`
	SessionId      uuid.UUID               `json:"session_id"`
	SimilarityLogs *similarity.DecisionLog `json:"similarity_logs"`
}

type SessionDocumentResponse struct {
	Id        uuid.UUID `json:"id"`
	Filename  string    `json:"filename"`
	Folder    string    `json:"folder"`
	SessionId uuid.UUID `json:"session_id"`
	Status    string    `json:"status"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type SessionDocumentsResponse struct {
	Documents []SessionDocumentResponse `json:"documents"`
}

type SessionFolderStats struct {
	Folder        string                    `json:"folder"`
	DocumentCount int                       `json:"document_count"`
	Documents     []SessionDocumentResponse `json:"documents"`
}

type SessionFoldersResponse struct {
	Folders []SessionFolderStats `json:"folders"`
}
