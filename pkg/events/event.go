package events

import "time"

// BaseEvent is the payload published for lifecycle events. Consumers are
// best-effort: publish failures are logged, never propagated.
type BaseEvent struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}

const (
	DocumentUploaded = "DOCUMENT_UPLOADED"
	DocumentDeleted  = "DOCUMENT_DELETED"
	DocumentPlaced   = "DOCUMENT_PLACED"
	FolderCreated    = "FOLDER_CREATED"
	FolderDeleted    = "FOLDER_DELETED"
	SessionCreated   = "SESSION_CREATED"
	SessionDeleted   = "SESSION_DELETED"
)
