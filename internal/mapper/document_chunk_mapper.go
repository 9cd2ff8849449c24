package mapper

import (
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentChunkMapper struct{}

func NewDocumentChunkMapper() *DocumentChunkMapper {
	return &DocumentChunkMapper{}
}

func (m *DocumentChunkMapper) ToEntity(c *model.DocumentChunk) *entity.DocumentChunk {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  c.Embedding.Slice(),
		CreatedAt:  c.CreatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentChunkMapper) ToModel(c *entity.DocumentChunk) *model.DocumentChunk {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	}

	return &model.DocumentChunk{
		Id:         c.Id,
		DocumentId: c.DocumentId,
		ChunkIndex: c.ChunkIndex,
		Content:    c.Content,
		Embedding:  pgvector.NewVector(c.Embedding),
		CreatedAt:  c.CreatedAt,
		DeletedAt:  deletedAt,
	}
}

func (m *DocumentChunkMapper) ToEntities(chunks []*model.DocumentChunk) []*entity.DocumentChunk {
	entities := make([]*entity.DocumentChunk, len(chunks))
	for i, c := range chunks {
		entities[i] = m.ToEntity(c)
	}
	return entities
}

func (m *DocumentChunkMapper) ToModels(chunks []*entity.DocumentChunk) []*model.DocumentChunk {
	models := make([]*model.DocumentChunk, len(chunks))
	for i, c := range chunks {
		models[i] = m.ToModel(c)
	}
	return models
}
