package service

import (
	"context"
	"fmt"
	"time"

	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/repository/contract"
	"doc-manager-be/internal/repository/unitofwork"
	"doc-manager-be/pkg/embedding"
	"doc-manager-be/pkg/rag"

	"github.com/google/uuid"
)

type IQuestionService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
}

// questionService answers questions grounded on stored document chunks.
// The retrieval scope is either an explicit document list or a folder;
// document_ids takes precedence when both are given.
type questionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	answerer          *rag.Answerer
	folderService     IFolderService
	log               logger.ILogger
	topK              int
	upstreamTimeout   time.Duration
}

func NewQuestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	answerer *rag.Answerer,
	folderService IFolderService,
	log logger.ILogger,
	topK int,
	upstreamTimeout time.Duration,
) IQuestionService {
	return &questionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		answerer:          answerer,
		folderService:     folderService,
		log:               log,
		topK:              topK,
		upstreamTimeout:   upstreamTimeout,
	}
}

func (s *questionService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	if request.Folder == "" && len(request.DocumentIds) == 0 {
		return nil, serverutils.NewValidationError("either folder or document_ids must be provided")
	}

	embedCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	queryVector, err := s.embeddingProvider.Embed(embedCtx, request.Question)
	cancel()
	if err != nil {
		return nil, serverutils.ClassifyUpstreamError(err)
	}

	chunks, err := s.retrieve(ctx, request, queryVector)
	if err != nil {
		return nil, err
	}

	contexts := make([]string, 0, len(chunks))
	for _, scored := range chunks {
		contexts = append(contexts, scored.Chunk.Content)
	}

	answerCtx, cancel := context.WithTimeout(ctx, s.upstreamTimeout)
	defer cancel()
	answer, err := s.answerer.Answer(answerCtx, request.Question, contexts, request.Model)
	if err != nil {
		return nil, serverutils.ClassifyUpstreamError(err)
	}

	return &dto.AskResponse{
		Question:    request.Question,
		Answer:      answer,
		DocumentIds: request.DocumentIds,
		Model:       request.Model,
	}, nil
}

func (s *questionService) retrieve(ctx context.Context, request *dto.AskRequest, queryVector []float32) ([]*contract.ScoredChunk, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// document_ids wins over folder when both are supplied.
	if len(request.DocumentIds) > 0 {
		ids := make([]uuid.UUID, 0, len(request.DocumentIds))
		for _, raw := range request.DocumentIds {
			id, err := uuid.Parse(raw)
			if err != nil {
				return nil, serverutils.NewValidationError(fmt.Sprintf("invalid document id: %s", raw))
			}
			ids = append(ids, id)
		}
		return uow.DocumentChunkRepository().SearchSimilarByDocumentIds(ctx, queryVector, s.topK, ids)
	}

	folder, err := s.folderService.FindByName(ctx, request.Folder)
	if err != nil {
		return nil, err
	}
	if folder == nil {
		return nil, serverutils.NewNotFoundError(fmt.Sprintf("folder not found: %s", request.Folder))
	}
	return uow.DocumentChunkRepository().SearchSimilarByFolder(ctx, queryVector, s.topK, folder.Id)
}
