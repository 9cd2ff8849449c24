package bootstrap

import (
	"context"
	"log"
	"time"

	"doc-manager-be/internal/config"
	"doc-manager-be/internal/controller"
	"doc-manager-be/internal/pkg/logger"
	"doc-manager-be/internal/repository/unitofwork"
	"doc-manager-be/internal/service"
	"doc-manager-be/pkg/embedding"
	"doc-manager-be/pkg/llm/factory"
	pktNats "doc-manager-be/pkg/nats"
	"doc-manager-be/pkg/objectstore"
	"doc-manager-be/pkg/rag"
	"doc-manager-be/pkg/similarity"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	DocumentController controller.IDocumentController
	FolderController   controller.IFolderController
	SessionController  controller.ISessionController
	QuestionController controller.IQuestionController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Shared infrastructure main.go closes on shutdown
	EventPublisher *pktNats.Publisher
	SysLogger      logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")
	similarityLogger := logger.NewIsolatedLogger(cfg.App.SimilarityLogPath)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. AI Providers
	embeddingProvider, err := embedding.NewProvider(
		cfg.Ai.EmbeddingProvider,
		cfg.Ai.OpenAIAPIKey,
		cfg.Ai.EmbeddingModel,
		cfg.Ai.OllamaBaseURL,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize Embedding Provider: %v", err)
	}
	log.Printf("[INFO] Using Embedding Provider: %s (%s)", cfg.Ai.EmbeddingProvider, cfg.Ai.EmbeddingModel)

	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.OpenAIAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Infrastructure
	store, err := objectstore.New(objectstore.Config{
		Endpoint:     cfg.Storage.Endpoint,
		AccessKey:    cfg.Storage.AccessKey,
		SecretKey:    cfg.Storage.SecretKey,
		UseSSL:       cfg.Storage.UseSSL,
		MasterBucket: cfg.Storage.MasterBucket,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object store: %v", err)
	}
	if err := store.EnsureBucket(context.Background()); err != nil {
		log.Printf("[WARN] Failed to ensure master bucket: %v", err)
	}

	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	sessionLocker := similarity.NewSessionLocker()
	sessionCache := gocache.New(5*time.Minute, 10*time.Minute)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.Retrieval.IndexTopicName, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.Retrieval.IndexTopicName,
		uowFactory,
		embeddingProvider,
		store,
		sysLogger,
		cfg.Retrieval.ChunkSize,
		cfg.Retrieval.ChunkOverlap,
		cfg.Ai.UpstreamTimeout,
	)

	folderService := service.NewFolderService(uowFactory, store, natsPub, sysLogger)
	documentService := service.NewDocumentService(
		uowFactory,
		store,
		folderService,
		publisherService,
		natsPub,
		sysLogger,
		cfg.App.MaxUploadBytes,
	)
	sessionService := service.NewSessionService(
		uowFactory,
		store,
		embeddingProvider,
		llmProvider,
		sessionLocker,
		sessionCache,
		natsPub,
		sysLogger,
		similarityLogger,
		cfg.Retrieval.DefaultThreshold,
		cfg.Ai.UpstreamTimeout,
		cfg.App.MaxUploadBytes,
		cfg.Retrieval.ChunkSize,
		cfg.Retrieval.ChunkOverlap,
	)
	questionService := service.NewQuestionService(
		uowFactory,
		embeddingProvider,
		rag.NewAnswerer(llmProvider),
		folderService,
		sysLogger,
		cfg.Retrieval.TopK,
		cfg.Ai.UpstreamTimeout,
	)

	// 6. Controllers
	return &Container{
		DocumentController: controller.NewDocumentController(documentService, sysLogger),
		FolderController:   controller.NewFolderController(folderService, sysLogger),
		SessionController:  controller.NewSessionController(sessionService, sysLogger),
		QuestionController: controller.NewQuestionController(questionService),

		ConsumerService: consumerService,
		EventPublisher:  natsPub,
		SysLogger:       sysLogger,
	}
}
