package contract

import (
	"context"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredChunk wraps a chunk with its cosine similarity to a query vector
type ScoredChunk struct {
	Chunk      *entity.DocumentChunk
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type DocumentChunkRepository interface {
	CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	DeleteByFolderId(ctx context.Context, folderId uuid.UUID) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error)
	// SearchSimilarByDocumentIds runs a scoped pgvector top-k search over the
	// given documents.
	SearchSimilarByDocumentIds(ctx context.Context, embedding []float32, limit int, documentIds []uuid.UUID) ([]*ScoredChunk, error)
	// SearchSimilarByFolder scopes the search to every document of one folder.
	SearchSimilarByFolder(ctx context.Context, embedding []float32, limit int, folderId uuid.UUID) ([]*ScoredChunk, error)
}
