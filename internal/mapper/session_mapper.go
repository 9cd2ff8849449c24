package mapper

import (
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/model"

	"gorm.io/gorm"
)

type SessionMapper struct{}

func NewSessionMapper() *SessionMapper {
	return &SessionMapper{}
}

func (m *SessionMapper) ToEntity(s *model.Session) *entity.Session {
	if s == nil {
		return nil
	}

	var deletedAt *time.Time
	if s.DeletedAt.Valid {
		t := s.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.Session{
		Id:                  s.Id,
		Name:                s.Name,
		Description:         s.Description,
		SimilarityThreshold: s.SimilarityThreshold,
		CustomPrompt:        s.CustomPrompt,
		PromptModel:         s.PromptModel,
		Active:              s.Active,
		DocumentCount:       s.DocumentCount,
		FolderCount:         s.FolderCount,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
		DeletedAt:           deletedAt,
	}
}

func (m *SessionMapper) ToModel(s *entity.Session) *model.Session {
	if s == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if s.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *s.DeletedAt, Valid: true}
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.Session{
		Id:                  s.Id,
		Name:                s.Name,
		Description:         s.Description,
		SimilarityThreshold: s.SimilarityThreshold,
		CustomPrompt:        s.CustomPrompt,
		PromptModel:         s.PromptModel,
		Active:              s.Active,
		DocumentCount:       s.DocumentCount,
		FolderCount:         s.FolderCount,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           updatedAt,
		DeletedAt:           deletedAt,
	}
}

func (m *SessionMapper) ToEntities(sessions []*model.Session) []*entity.Session {
	entities := make([]*entity.Session, len(sessions))
	for i, s := range sessions {
		entities[i] = m.ToEntity(s)
	}
	return entities
}
