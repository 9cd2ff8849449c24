package service

import (
	"context"
	"fmt"
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/repository/specification"
	"doc-manager-be/internal/repository/unitofwork"
	"doc-manager-be/pkg/events"
	pktNats "doc-manager-be/pkg/nats"
	"doc-manager-be/pkg/objectstore"

	"github.com/google/uuid"
)

type IFolderService interface {
	List(ctx context.Context) ([]string, string, error)
	Create(ctx context.Context, folderName string) (*entity.Folder, error)
	Delete(ctx context.Context, folderName string) error
	FindByName(ctx context.Context, folderName string) (*entity.Folder, error)
}

type folderService struct {
	uowFactory     unitofwork.RepositoryFactory
	store          *objectstore.Store
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewFolderService(
	uowFactory unitofwork.RepositoryFactory,
	store *objectstore.Store,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IFolderService {
	return &folderService{
		uowFactory:     uowFactory,
		store:          store,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// List returns top-level folder names plus the master bucket they map into.
func (s *folderService) List(ctx context.Context) ([]string, string, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.TopLevelOnly{},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, "", err
	}

	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Name
	}
	return names, s.store.MasterBucket(), nil
}

func (s *folderService) Create(ctx context.Context, folderName string) (*entity.Folder, error) {
	if folderName == "" {
		return nil, serverutils.NewValidationError("folder_name is required")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	existing, err := uow.FolderRepository().FindOne(ctx,
		specification.ByName{Name: folderName},
		specification.TopLevelOnly{},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, serverutils.NewConflictError(fmt.Sprintf("folder %s already exists", folderName))
	}

	folder := entity.Folder{
		Id:        uuid.New(),
		Name:      folderName,
		Bucket:    s.store.MasterBucket(),
		Prefix:    fmt.Sprintf("folders/%s", folderName),
		CreatedAt: time.Now(),
	}
	if err := uow.FolderRepository().Create(ctx, &folder); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.FolderCreated, map[string]interface{}{
		"folder_id": folder.Id,
		"name":      folder.Name,
	})

	return &folder, nil
}

// Delete removes the folder, its documents, their chunks, and every blob
// under the folder's prefix.
func (s *folderService) Delete(ctx context.Context, folderName string) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	folder, err := uow.FolderRepository().FindOne(ctx,
		specification.ByName{Name: folderName},
		specification.TopLevelOnly{},
	)
	if err != nil {
		return err
	}
	if folder == nil {
		return serverutils.NewNotFoundError(fmt.Sprintf("folder not found: %s", folderName))
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByFolderId(ctx, folder.Id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().DeleteByFolderId(ctx, folder.Id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.FolderRepository().Delete(ctx, folder.Id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	// Blob cleanup happens after the metadata commit; a failure here leaves
	// orphaned objects, not dangling metadata.
	if err := s.store.DeletePrefix(ctx, folder.Prefix+"/"); err != nil {
		s.log.Warn("folder", "failed to delete folder blobs", map[string]interface{}{
			"folder": folderName,
			"error":  err.Error(),
		})
	}

	s.publishEvent(ctx, events.FolderDeleted, map[string]interface{}{
		"folder_id": folder.Id,
		"name":      folder.Name,
	})

	return nil
}

func (s *folderService) FindByName(ctx context.Context, folderName string) (*entity.Folder, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FolderRepository().FindOne(ctx,
		specification.ByName{Name: folderName},
		specification.TopLevelOnly{},
	)
}

func (s *folderService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("folder", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
