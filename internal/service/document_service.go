package service

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"doc-manager-be/internal/dto"
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

type IDocumentService interface {
	Upload(ctx context.Context, input *dto.UploadDocumentInput) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Status(ctx context.Context, id uuid.UUID) (*dto.DocumentStatusResponse, error)
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	store            *objectstore.Store
	folderService    IFolderService
	publisherService IPublisherService
	eventPublisher   *pktNats.Publisher
	log              logger.ILogger
	maxUploadBytes   int
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	store *objectstore.Store,
	folderService IFolderService,
	publisherService IPublisherService,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	maxUploadBytes int,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		store:            store,
		folderService:    folderService,
		publisherService: publisherService,
		eventPublisher:   eventPublisher,
		log:              log,
		maxUploadBytes:   maxUploadBytes,
	}
}

var supportedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// Upload persists the blob and metadata, then queues background chunk
// indexing. The response carries status "processing" until the consumer
// finishes.
func (s *documentService) Upload(ctx context.Context, input *dto.UploadDocumentInput) (*dto.DocumentResponse, error) {
	if len(input.Content) == 0 {
		return nil, serverutils.NewValidationError("file is required")
	}
	if len(input.Content) > s.maxUploadBytes {
		return nil, serverutils.NewValidationError("file too large (max 10 MB)")
	}
	ext := strings.ToLower(filepath.Ext(input.Filename))
	if !supportedExtensions[ext] {
		return nil, serverutils.NewValidationError(fmt.Sprintf("unsupported file type: %s", ext))
	}
	if input.FolderName == "" {
		return nil, serverutils.NewValidationError("folder is required")
	}

	folder, err := s.folderService.FindByName(ctx, input.FolderName)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("folder not found: %s", input.FolderName))
	}

	docId := uuid.New()
	storageKey := fmt.Sprintf("%s/%s_%s", folder.Prefix, docId, input.Filename)

	if err := s.store.Upload(ctx, storageKey, input.Content); err != nil {
		return nil, serverutils.ClassifyUpstreamError(err)
	}

	document := entity.Document{
		Id:          docId,
		Filename:    input.Filename,
		Source:      input.SourceName,
		Description: input.Description,
		FolderId:    folder.Id,
		Status:      entity.DocumentStatusProcessing,
		Size:        int64(len(input.Content)),
		StorageKey:  storageKey,
		CreatedAt:   time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, &document); err != nil {
		// Roll the blob back so storage does not accumulate orphans.
		if delErr := s.store.Delete(ctx, storageKey); delErr != nil {
			s.log.Warn("document", "failed to remove blob after create failure", map[string]interface{}{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return nil, err
	}

	msgPayload := dto.PublishIndexMessage{DocumentId: document.Id}
	msgJson, err := json.Marshal(msgPayload)
	if err != nil {
		return nil, err
	}
	if err := s.publisherService.Publish(ctx, msgJson); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.DocumentUploaded, map[string]interface{}{
		"document_id": document.Id,
		"filename":    document.Filename,
		"folder":      folder.Name,
	})

	return s.toResponse(&document, folder.Name), nil
}

// List returns every stored document, session-placed ones included, each
// carrying the name of the folder it landed in.
func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	folders, err := uow.FolderRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	folderNames := make(map[uuid.UUID]string, len(folders))
	for _, f := range folders {
		folderNames[f.Id] = f.Name
	}

	responses := make([]*dto.DocumentResponse, len(documents))
	for i, d := range documents {
		responses[i] = s.toResponse(d, folderNames[d.FolderId])
	}
	return responses, nil
}

func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return err
	}
	if document == nil {
		return serverutils.NewNotFoundError(fmt.Sprintf("document not found: %s", id))
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteByDocumentId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	if err := s.store.Delete(ctx, document.StorageKey); err != nil {
		s.log.Warn("document", "failed to delete blob", map[string]interface{}{
			"storage_key": document.StorageKey,
			"error":       err.Error(),
		})
	}

	s.publishEvent(ctx, events.DocumentDeleted, map[string]interface{}{
		"document_id": id,
	})

	return nil
}

func (s *documentService) Status(ctx context.Context, id uuid.UUID) (*dto.DocumentStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if document == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("document not found: %s", id))
	}

	return &dto.DocumentStatusResponse{
		Status:    string(document.Status),
		Filename:  document.Filename,
		Processed: document.Status == entity.DocumentStatusProcessed,
		Error:     document.StatusError,
	}, nil
}

func (s *documentService) toResponse(d *entity.Document, folderName string) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:          d.Id,
		Filename:    d.Filename,
		Source:      d.Source,
		Description: d.Description,
		Folder:      folderName,
		Status:      string(d.Status),
		Size:        d.Size,
		CreatedAt:   d.CreatedAt,
	}
}

func (s *documentService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	evt := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, evt); err != nil {
		s.log.Warn("document", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}
