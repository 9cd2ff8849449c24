package implementation

import (
	"context"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/mapper"
	"doc-manager-be/internal/model"
	"doc-manager-be/internal/repository/contract"
	"doc-manager-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.DocumentChunkMapper
}

func NewDocumentChunkRepository(db *gorm.DB) contract.DocumentChunkRepository {
	return &DocumentChunkRepositoryImpl{
		db:     db,
		mapper: mapper.NewDocumentChunkMapper(),
	}
}

func (r *DocumentChunkRepositoryImpl) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	models := r.mapper.ToModels(chunks)
	if err := r.db.WithContext(ctx).Create(models).Error; err != nil {
		return err
	}
	for i, m := range models {
		*chunks[i] = *r.mapper.ToEntity(m)
	}
	return nil
}

func (r *DocumentChunkRepositoryImpl) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return r.db.WithContext(ctx).Where("document_id = ?", documentId).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) DeleteByFolderId(ctx context.Context, folderId uuid.UUID) error {
	subQuery := r.db.Table("documents").Select("id").Where("folder_id = ?", folderId)
	return r.db.WithContext(ctx).Where("document_id IN (?)", subQuery).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	subQuery := r.db.Table("documents").Select("id").Where("session_id = ?", sessionId)
	return r.db.WithContext(ctx).Where("document_id IN (?)", subQuery).Delete(&model.DocumentChunk{}).Error
}

func (r *DocumentChunkRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	var models []*model.DocumentChunk
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

// scoredChunkRow carries the pgvector similarity alongside the chunk columns
type scoredChunkRow struct {
	model.DocumentChunk
	Similarity float64
}

func (r *DocumentChunkRepositoryImpl) searchSimilar(ctx context.Context, embedding []float32, limit int, scope func(*gorm.DB) *gorm.DB) ([]*contract.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	queryVector := pgvector.NewVector(embedding)

	// Cosine distance in pgvector is 1 - cosine_similarity, so
	// 1 - (embedding <=> query_vector) = cosine_similarity.
	query := r.db.WithContext(ctx).
		Table("document_chunks").
		Select("document_chunks.*, 1 - (document_chunks.embedding <=> ?) as similarity", queryVector).
		Joins("JOIN documents ON documents.id = document_chunks.document_id").
		Where("document_chunks.deleted_at IS NULL").
		Where("documents.deleted_at IS NULL")

	query = scope(query)

	var rows []scoredChunkRow
	err := query.
		Order("similarity DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	scored := make([]*contract.ScoredChunk, len(rows))
	for i, row := range rows {
		scored[i] = &contract.ScoredChunk{
			Chunk:      r.mapper.ToEntity(&row.DocumentChunk),
			Similarity: row.Similarity,
		}
	}
	return scored, nil
}

func (r *DocumentChunkRepositoryImpl) SearchSimilarByDocumentIds(ctx context.Context, embedding []float32, limit int, documentIds []uuid.UUID) ([]*contract.ScoredChunk, error) {
	return r.searchSimilar(ctx, embedding, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("documents.id IN ?", documentIds)
	})
}

func (r *DocumentChunkRepositoryImpl) SearchSimilarByFolder(ctx context.Context, embedding []float32, limit int, folderId uuid.UUID) ([]*contract.ScoredChunk, error) {
	return r.searchSimilar(ctx, embedding, limit, func(q *gorm.DB) *gorm.DB {
		return q.Where("documents.folder_id = ?", folderId)
	})
}
