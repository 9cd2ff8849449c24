package mapper

import (
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/model"

	"gorm.io/gorm"
)

type FolderMapper struct{}

func NewFolderMapper() *FolderMapper {
	return &FolderMapper{}
}

func (m *FolderMapper) ToEntity(f *model.Folder) *entity.Folder {
	if f == nil {
		return nil
	}

	var deletedAt *time.Time
	if f.DeletedAt.Valid {
		t := f.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Folder{
		Id:        f.Id,
		Name:      f.Name,
		SessionId: f.SessionId,
		Bucket:    f.Bucket,
		Prefix:    f.Prefix,
		CreatedAt: f.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *FolderMapper) ToModel(f *entity.Folder) *model.Folder {
	if f == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if f.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *f.DeletedAt, Valid: true}
	}

	return &model.Folder{
		Id:        f.Id,
		Name:      f.Name,
		SessionId: f.SessionId,
		Bucket:    f.Bucket,
		Prefix:    f.Prefix,
		CreatedAt: f.CreatedAt,
		DeletedAt: deletedAt,
	}
}

func (m *FolderMapper) ToEntities(folders []*model.Folder) []*entity.Folder {
	entities := make([]*entity.Folder, len(folders))
	for i, f := range folders {
		entities[i] = m.ToEntity(f)
	}
	return entities
}
