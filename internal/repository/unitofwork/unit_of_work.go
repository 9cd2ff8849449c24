package unitofwork

import (
	"context"

	"doc-manager-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	DocumentRepository() contract.DocumentRepository
	FolderRepository() contract.FolderRepository
	SessionRepository() contract.SessionRepository
	DocumentChunkRepository() contract.DocumentChunkRepository
}
