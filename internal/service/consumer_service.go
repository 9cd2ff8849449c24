package service

import (
	"context"
	"encoding/json"
	"time"

	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/repository/specification"
	"doc-manager-be/internal/repository/unitofwork"
	"doc-manager-be/pkg/embedding"
	"doc-manager-be/pkg/extract"
	"doc-manager-be/pkg/objectstore"
	"doc-manager-be/pkg/textsplit"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService indexes uploaded documents in the background: download the
// blob, extract text, split, embed every chunk plus a document-level vector,
// and flip the document status.
type consumerService struct {
	pubSub            *gochannel.GoChannel
	topicName         string
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.EmbeddingProvider
	store             *objectstore.Store
	log               logger.ILogger
	chunkSize         int
	chunkOverlap      int
	upstreamTimeout   time.Duration
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.EmbeddingProvider,
	store *objectstore.Store,
	log logger.ILogger,
	chunkSize int,
	chunkOverlap int,
	upstreamTimeout time.Duration,
) IConsumerService {
	return &consumerService{
		pubSub:            pubSub,
		topicName:         topicName,
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		store:             store,
		log:               log,
		chunkSize:         chunkSize,
		chunkOverlap:      chunkOverlap,
		upstreamTimeout:   upstreamTimeout,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.PublishIndexMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("indexer", "failed to unmarshal message", map[string]interface{}{"error": err.Error()})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("indexer", "processing document", map[string]interface{}{"document_id": payload.DocumentId})

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	document, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		cs.log.Error("indexer", "failed to load document", map[string]interface{}{
			"document_id": payload.DocumentId,
			"error":       err.Error(),
		})
		msg.Nack() // Nack for retriable errors
		return
	}
	if document == nil {
		// Deleted before indexing ran.
		msg.Ack()
		return
	}

	if err := cs.index(ctx, uow, document); err != nil {
		cs.markError(ctx, uow, document, err)
	}

	msg.Ack()
}

func (cs *consumerService) index(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document) error {
	content, err := cs.store.Download(ctx, document.StorageKey)
	if err != nil {
		return err
	}

	text, err := extract.Text(document.Filename, content)
	if err != nil {
		return err
	}

	chunks := textsplit.Split(text, cs.chunkSize, cs.chunkOverlap)

	chunkEntities := make([]*entity.DocumentChunk, 0, len(chunks))
	for i, chunk := range chunks {
		embedCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
		vector, err := cs.embeddingProvider.Embed(embedCtx, chunk)
		cancel()
		if err != nil {
			return err
		}

		chunkEntities = append(chunkEntities, &entity.DocumentChunk{
			Id:         uuid.New(),
			DocumentId: document.Id,
			ChunkIndex: i,
			Content:    chunk,
			Embedding:  vector,
			CreatedAt:  time.Now(),
		})
	}

	embedCtx, cancel := context.WithTimeout(ctx, cs.upstreamTimeout)
	docVector, err := cs.embeddingProvider.Embed(embedCtx, text)
	cancel()
	if err != nil {
		return err
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	if err := uow.DocumentChunkRepository().CreateBulk(ctx, chunkEntities); err != nil {
		_ = uow.Rollback()
		return err
	}
	document.Embedding = docVector
	document.Status = entity.DocumentStatusProcessed
	document.StatusError = ""
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err := uow.Commit(); err != nil {
		return err
	}

	cs.log.Info("indexer", "document indexed", map[string]interface{}{
		"document_id": document.Id,
		"chunks":      len(chunkEntities),
	})
	return nil
}

func (cs *consumerService) markError(ctx context.Context, uow unitofwork.UnitOfWork, document *entity.Document, cause error) {
	cs.log.Error("indexer", "failed to index document", map[string]interface{}{
		"document_id": document.Id,
		"error":       cause.Error(),
	})

	document.Status = entity.DocumentStatusError
	document.StatusError = cause.Error()
	if err := uow.DocumentRepository().Update(ctx, document); err != nil {
		cs.log.Error("indexer", "failed to record document error state", map[string]interface{}{
			"document_id": document.Id,
			"error":       err.Error(),
		})
	}
}
