package contract

import (
	"context"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FolderRepository interface {
	Create(ctx context.Context, folder *entity.Folder) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
