package mapper

import (
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}

	var deletedAt *time.Time
	if d.DeletedAt.Valid {
		t := d.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !d.UpdatedAt.IsZero() {
		t := d.UpdatedAt
		updatedAt = &t
	}

	var embedding []float32
	if d.Embedding != nil {
		embedding = d.Embedding.Slice()
	}

	return &entity.Document{
		Id:          d.Id,
		Filename:    d.Filename,
		Source:      d.Source,
		Description: d.Description,
		FolderId:    d.FolderId,
		SessionId:   d.SessionId,
		Status:      entity.DocumentStatus(d.Status),
		StatusError: d.StatusError,
		Size:        d.Size,
		StorageKey:  d.StorageKey,
		Embedding:   embedding,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if d.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *d.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if d.UpdatedAt != nil {
		updatedAt = *d.UpdatedAt
	}

	var embedding *pgvector.Vector
	if d.Embedding != nil {
		v := pgvector.NewVector(d.Embedding)
		embedding = &v
	}

	return &model.Document{
		Id:          d.Id,
		Filename:    d.Filename,
		Source:      d.Source,
		Description: d.Description,
		FolderId:    d.FolderId,
		SessionId:   d.SessionId,
		Status:      string(d.Status),
		StatusError: d.StatusError,
		Size:        d.Size,
		StorageKey:  d.StorageKey,
		Embedding:   embedding,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *DocumentMapper) ToEntities(documents []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(documents))
	for i, d := range documents {
		entities[i] = m.ToEntity(d)
	}
	return entities
}
