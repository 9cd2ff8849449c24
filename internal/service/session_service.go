package service

import (
	"context"
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
	"doc-manager-be/pkg/embedding"
	"doc-manager-be/pkg/events"
	"doc-manager-be/pkg/extract"
	"doc-manager-be/pkg/llm"
	pktNats "doc-manager-be/pkg/nats"
	"doc-manager-be/pkg/objectstore"
	"doc-manager-be/pkg/similarity"
	"doc-manager-be/pkg/textsplit"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type ISessionService interface {
	Create(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error)
	List(ctx context.Context) ([]*dto.SessionResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error)
	Update(ctx context.Context, request *dto.UpdateSessionRequest) (*dto.SessionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Upload(ctx context.Context, input *dto.UploadToSessionInput) (*dto.SessionUploadResponse, error)
	Documents(ctx context.Context, sessionId uuid.UUID) (*dto.SessionDocumentsResponse, error)
	FolderStats(ctx context.Context, sessionId uuid.UUID) (*dto.SessionFoldersResponse, error)
}

// sessionService owns the similarity clustering engine: documents uploaded
// into a session are compared against every already-placed document and
// either join the best-matching bucket folder or open a new one.
type sessionService struct {
	uowFactory        unitofwork.RepositoryFactory
	store             *objectstore.Store
	embeddingProvider embedding.EmbeddingProvider
	llmProvider       llm.LLMProvider
	locker            *similarity.SessionLocker
	cache             *gocache.Cache
	eventPublisher    *pktNats.Publisher
	log               logger.ILogger
	similarityLog     logger.ILogger
	defaultThreshold  float64
	upstreamTimeout   time.Duration
	maxUploadBytes    int
	chunkSize         int
	chunkOverlap      int
}

func NewSessionService(
	uowFactory unitofwork.RepositoryFactory,
	store *objectstore.Store,
	embeddingProvider embedding.EmbeddingProvider,
	llmProvider llm.LLMProvider,
	locker *similarity.SessionLocker,
	cache *gocache.Cache,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
	similarityLog logger.ILogger,
	defaultThreshold float64,
	upstreamTimeout time.Duration,
	maxUploadBytes int,
	chunkSize int,
	chunkOverlap int,
) ISessionService {
	return &sessionService{
		uowFactory:        uowFactory,
		store:             store,
		embeddingProvider: embeddingProvider,
		llmProvider:       llmProvider,
		locker:            locker,
		cache:             cache,
		eventPublisher:    eventPublisher,
		log:               log,
		similarityLog:     similarityLog,
		defaultThreshold:  defaultThreshold,
		upstreamTimeout:   upstreamTimeout,
		maxUploadBytes:    maxUploadBytes,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
	}
}

func (s *sessionService) Create(ctx context.Context, request *dto.CreateSessionRequest) (*dto.SessionResponse, error) {
	if strings.TrimSpace(request.Name) == "" {
		return nil, serverutils.NewValidationError("session name is required")
	}

	threshold := s.defaultThreshold
	if request.SimilarityThreshold != nil {
		threshold = *request.SimilarityThreshold
	}

	session := entity.Session{
		Id:                  uuid.New(),
		Name:                request.Name,
		Description:         request.Description,
		SimilarityThreshold: threshold,
		CustomPrompt:        request.CustomPrompt,
		PromptModel:         request.PromptModel,
		Active:              true,
		CreatedAt:           time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Create(ctx, &session); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.SessionCreated, map[string]interface{}{
		"session_id": session.Id,
		"name":       session.Name,
	})

	return s.toResponse(&session), nil
}

func (s *sessionService) List(ctx context.Context) ([]*dto.SessionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sessions, err := uow.SessionRepository().FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		responses = append(responses, s.toResponse(session))
	}
	return responses, nil
}

func (s *sessionService) Get(ctx context.Context, id uuid.UUID) (*dto.SessionResponse, error) {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toResponse(session), nil
}

func (s *sessionService) Update(ctx context.Context, request *dto.UpdateSessionRequest) (*dto.SessionResponse, error) {
	session, err := s.loadSession(ctx, request.Id)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		if strings.TrimSpace(*request.Name) == "" {
			return nil, serverutils.NewValidationError("session name is required")
		}
		session.Name = *request.Name
	}
	if request.Description != nil {
		session.Description = *request.Description
	}
	if request.SimilarityThreshold != nil {
		// Changing the threshold only affects future placements.
		session.SimilarityThreshold = *request.SimilarityThreshold
	}
	if request.CustomPrompt != nil {
		session.CustomPrompt = *request.CustomPrompt
	}
	if request.PromptModel != nil {
		session.PromptModel = *request.PromptModel
	}
	if request.Active != nil {
		session.Active = *request.Active
	}
	now := time.Now()
	session.UpdatedAt = &now

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		return nil, err
	}
	s.cache.Delete(sessionCacheKey(session.Id))

	return s.toResponse(session), nil
}

func (s *sessionService) Delete(ctx context.Context, id uuid.UUID) error {
	session, err := s.loadSession(ctx, id)
	if err != nil {
		return err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().DeleteBySessionId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.DocumentRepository().DeleteBySessionId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.FolderRepository().DeleteBySessionId(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.SessionRepository().Delete(ctx, id); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}
	s.cache.Delete(sessionCacheKey(id))

	// Blob cleanup is best effort; metadata is already gone.
	prefix := fmt.Sprintf("sessions/%s", id)
	if err := s.store.DeletePrefix(ctx, prefix); err != nil {
		s.log.Warn("session", "failed to remove session blobs", map[string]interface{}{
			"session_id": id,
			"error":      err.Error(),
		})
	}

	s.publishEvent(ctx, events.SessionDeleted, map[string]interface{}{
		"session_id": id,
		"name":       session.Name,
	})
	return nil
}

// Upload runs the placement pipeline: extract, optionally clean through the
// session's prompt, embed, then decide the bucket under the session lock and
// persist everything in one transaction.
func (s *sessionService) Upload(ctx context.Context, input *dto.UploadToSessionInput) (*dto.SessionUploadResponse, error) {
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

	session, err := s.loadSession(ctx, input.SessionId)
	if err != nil {
		return nil, err
	}

	text, err := extract.Text(input.Filename, input.Content)
	if err != nil {
		return nil, serverutils.NewValidationError(err.Error())
	}

	if session.CustomPrompt != "" {
		text, err = s.preprocess(ctx, session, text)
		if err != nil {
			return nil, err
		}
	}

	// Embedding calls never hold the session lock.
	docVector, err := s.embed(ctx, text)
	if err != nil {
		return nil, err
	}

	chunks := textsplit.Split(text, s.chunkSize, s.chunkOverlap)
	chunkVectors := make([][]float32, 0, len(chunks))
	for _, chunk := range chunks {
		vector, err := s.embed(ctx, chunk)
		if err != nil {
			return nil, err
		}
		chunkVectors = append(chunkVectors, vector)
	}

	unlock := s.locker.Lock(session.Id)
	defer unlock()

	uow := s.uowFactory.NewUnitOfWork(ctx)
	buckets, foldersByName, err := s.loadBuckets(ctx, uow, session.Id)
	if err != nil {
		return nil, err
	}

	placement := similarity.Place(input.Filename, docVector, buckets,
		session.SimilarityThreshold, s.embeddingProvider.Model())

	folder := foldersByName[placement.Folder]
	if placement.IsNewFolder {
		folder = &entity.Folder{
			Id:        uuid.New(),
			Name:      placement.Folder,
			SessionId: &session.Id,
			Bucket:    s.store.MasterBucket(),
			Prefix:    fmt.Sprintf("sessions/%s/%s", session.Id, placement.Folder),
			CreatedAt: time.Now(),
		}
	}

	docId := uuid.New()
	storageKey := fmt.Sprintf("%s/%s_%s", folder.Prefix, docId, input.Filename)
	if err := s.store.Upload(ctx, storageKey, input.Content); err != nil {
		return nil, serverutils.ClassifyUpstreamError(err)
	}

	document := entity.Document{
		Id:         docId,
		Filename:   input.Filename,
		FolderId:   folder.Id,
		SessionId:  &session.Id,
		Status:     entity.DocumentStatusProcessed,
		Size:       int64(len(input.Content)),
		StorageKey: storageKey,
		Embedding:  docVector,
		CreatedAt:  time.Now(),
	}

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: docId,
			ChunkIndex: i,
			Content:    chunk,
			Embedding:  chunkVectors[i],
			CreatedAt:  time.Now(),
		})
	}

	if err := s.persistPlacement(ctx, uow, session, folder, &document, chunkEntities, placement.IsNewFolder); err != nil {
		if delErr := s.store.Delete(ctx, storageKey); delErr != nil {
			s.log.Warn("session", "failed to remove blob after placement failure", map[string]interface{}{
				"storage_key": storageKey,
				"error":       delErr.Error(),
			})
		}
		return nil, err
	}
	s.cache.Delete(sessionCacheKey(session.Id))

	s.similarityLog.Info("similarity", "placement decision", map[string]interface{}{
		"session_id":  session.Id,
		"document_id": docId,
		"filename":    input.Filename,
		"logs":        placement.Logs,
	})

	s.publishEvent(ctx, events.DocumentPlaced, map[string]interface{}{
		"session_id":    session.Id,
		"document_id":   docId,
		"folder":        placement.Folder,
		"is_new_folder": placement.IsNewFolder,
	})

	return &dto.SessionUploadResponse{
		Message:        "Document uploaded and organized successfully",
		DocumentId:     docId,
		Folder:         placement.Folder,
		SessionId:      session.Id,
		SimilarityLogs: placement.Logs,
	}, nil
}

func (s *sessionService) Documents(ctx context.Context, sessionId uuid.UUID) (*dto.SessionDocumentsResponse, error) {
	if _, err := s.loadSession(ctx, sessionId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	folderNames, err := s.folderNames(ctx, uow, sessionId)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SessionDocumentResponse, 0, len(documents))
	for _, document := range documents {
		responses = append(responses, toSessionDocumentResponse(document, folderNames[document.FolderId]))
	}
	return &dto.SessionDocumentsResponse{Documents: responses}, nil
}

func (s *sessionService) FolderStats(ctx context.Context, sessionId uuid.UUID) (*dto.SessionFoldersResponse, error) {
	if _, err := s.loadSession(ctx, sessionId); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	byFolder := make(map[uuid.UUID][]*entity.Document)
	for _, document := range documents {
		byFolder[document.FolderId] = append(byFolder[document.FolderId], document)
	}

	stats := make([]dto.SessionFolderStats, 0, len(folders))
	for _, folder := range folders {
		members := byFolder[folder.Id]
		memberResponses := make([]dto.SessionDocumentResponse, 0, len(members))
		for _, member := range members {
			memberResponses = append(memberResponses, toSessionDocumentResponse(member, folder.Name))
		}
		stats = append(stats, dto.SessionFolderStats{
			Folder:        folder.Name,
			DocumentCount: len(members),
			Documents:     memberResponses,
		})
	}
	return &dto.SessionFoldersResponse{Folders: stats}, nil
}

// preprocess cleans the extracted text through the session's prompt model.
// Any model failure aborts the ingestion so nothing half-processed persists.
func (s *sessionService) preprocess(ctx context.Context, session *entity.Session, text string) (string, error) {
	prompt := fmt.Sprintf("%s\n\n%s", session.CustomPrompt, text)

	options := []llm.Option{}
	if session.PromptModel != "" {
		options = append(options, llm.WithModel(session.PromptModel))
	}

	llmCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()

	cleaned, err := s.llmProvider.Generate(llmCtx, prompt, options...)
	if err != nil {
		return "", serverutils.ClassifyUpstreamError(err)
	}
	return cleaned, nil
}

func (s *sessionService) embed(ctx context.Context, text string) ([]float32, error) {
	embedCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()

	vector, err := s.embeddingProvider.Embed(embedCtx, text)
	if err != nil {
		return nil, serverutils.ClassifyUpstreamError(err)
	}
	return vector, nil
}

// loadBuckets materializes the session's folders in creation order together
// with every member document that already has an embedding.
func (s *sessionService) loadBuckets(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) ([]similarity.Bucket, map[string]*entity.Folder, error) {
	folders, err := uow.FolderRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, nil, err
	}

	documents, err := uow.DocumentRepository().FindAll(ctx,
		specification.BySession{SessionId: sessionId},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, nil, err
	}

	membersByFolder := make(map[uuid.UUID][]similarity.Member)
	for _, document := range documents {
		if document.Embedding == nil {
			continue
		}
		membersByFolder[document.FolderId] = append(membersByFolder[document.FolderId], similarity.Member{
			DocId:     document.Id.String(),
			Filename:  document.Filename,
			Embedding: document.Embedding,
		})
	}

	buckets := make([]similarity.Bucket, 0, len(folders))
	foldersByName := make(map[string]*entity.Folder, len(folders))
	for _, folder := range folders {
		foldersByName[folder.Name] = folder
		buckets = append(buckets, similarity.Bucket{
			Name:    folder.Name,
			Members: membersByFolder[folder.Id],
		})
	}
	return buckets, foldersByName, nil
}

func (s *sessionService) persistPlacement(
	ctx context.Context,
	uow unitofwork.UnitOfWork,
	session *entity.Session,
	folder *entity.Folder,
	document *entity.Document,
	chunks []*entity.DocumentChunk,
	isNewFolder bool,
) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if isNewFolder {
		if err := uow.FolderRepository().Create(ctx, folder); err != nil {
			_ = uow.Rollback()
			return err
		}
	}
	if err := uow.DocumentRepository().Create(ctx, document); err != nil {
		_ = uow.Rollback()
		return err
	}
	if len(chunks) > 0 {
		if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunks); err != nil {
			_ = uow.Rollback()
			return err
		}
	}

	session.DocumentCount++
	if isNewFolder {
		session.FolderCount++
	}
	now := time.Now()
	session.UpdatedAt = &now
	if err := uow.SessionRepository().Update(ctx, session); err != nil {
		_ = uow.Rollback()
		return err
	}
	return uow.Commit()
}

func (s *sessionService) folderNames(ctx context.Context, uow unitofwork.UnitOfWork, sessionId uuid.UUID) (map[uuid.UUID]string, error) {
	folders, err := uow.FolderRepository().FindAll(ctx, specification.BySession{SessionId: sessionId})
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(folders))
	for _, folder := range folders {
		names[folder.Id] = folder.Name
	}
	return names, nil
}

// loadSession caches sessions by value and hands every caller its own copy,
// so an in-place mutation that never reaches the database cannot leak into
// later reads.
func (s *sessionService) loadSession(ctx context.Context, id uuid.UUID) (*entity.Session, error) {
	if cached, found := s.cache.Get(sessionCacheKey(id)); found {
		if session, ok := cached.(entity.Session); ok {
			return &session, nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	session, err := uow.SessionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("session not found: %s", id))
	}
	s.cache.Set(sessionCacheKey(id), *session, gocache.DefaultExpiration)
	return session, nil
}

func (s *sessionService) publishEvent(ctx context.Context, eventType string, data map[string]interface{}) {
	if s.eventPublisher == nil {
		return
	}
	event := events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.log.Warn("session", "failed to publish event", map[string]interface{}{
			"event": eventType,
			"error": err.Error(),
		})
	}
}

func (s *sessionService) toResponse(session *entity.Session) *dto.SessionResponse {
	return &dto.SessionResponse{
		Id:                  session.Id,
		Name:                session.Name,
		Description:         session.Description,
		SimilarityThreshold: session.SimilarityThreshold,
		CustomPrompt:        session.CustomPrompt,
		PromptModel:         session.PromptModel,
		Active:              session.Active,
		DocumentCount:       session.DocumentCount,
		FolderCount:         session.FolderCount,
		CreatedAt:           session.CreatedAt,
		UpdatedAt:           session.UpdatedAt,
	}
}

func toSessionDocumentResponse(document *entity.Document, folderName string) dto.SessionDocumentResponse {
	return dto.SessionDocumentResponse{
		Id:        document.Id,
		Filename:  document.Filename,
		Folder:    folderName,
		SessionId: *document.SessionId,
		Status:    string(document.Status),
		Size:      document.Size,
		CreatedAt: document.CreatedAt,
	}
}

func sessionCacheKey(id uuid.UUID) string {
	return "session:" + id.String()
}
