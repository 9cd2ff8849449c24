package entity

import (
	"time"

	"github.com/google/uuid"
)

// Folder is the logical grouping entity. Its storage location (bucket +
// prefix) is carried explicitly instead of being derived from the name.
type Folder struct {
	Id        uuid.UUID
	Name      string
	SessionId *uuid.UUID // nil for top-level registry folders
	Bucket    string
	Prefix    string
	CreatedAt time.Time
	DeletedAt *time.Time
}
