package service

import (
	"context"
	"testing"
	"time"

	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/pkg/serverutils"
	"doc-manager-be/internal/repository/contract"
	"doc-manager-be/internal/repository/specification"
	"doc-manager-be/internal/repository/unitofwork"
	"doc-manager-be/pkg/llm"
	"doc-manager-be/pkg/rag"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChunkRepository struct {
	searchedByDocuments bool
	searchedByFolder    bool
	documentIds         []uuid.UUID
	folderId            uuid.UUID
	results             []*contract.ScoredChunk
}

func (f *fakeChunkRepository) CreateBulk(ctx context.Context, chunks []*entity.DocumentChunk) error {
	return nil
}
func (f *fakeChunkRepository) DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error {
	return nil
}
func (f *fakeChunkRepository) DeleteByFolderId(ctx context.Context, folderId uuid.UUID) error {
	return nil
}
func (f *fakeChunkRepository) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (f *fakeChunkRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.DocumentChunk, error) {
	return nil, nil
}
func (f *fakeChunkRepository) SearchSimilarByDocumentIds(ctx context.Context, embedding []float32, limit int, documentIds []uuid.UUID) ([]*contract.ScoredChunk, error) {
	f.searchedByDocuments = true
	f.documentIds = documentIds
	return f.results, nil
}
func (f *fakeChunkRepository) SearchSimilarByFolder(ctx context.Context, embedding []float32, limit int, folderId uuid.UUID) ([]*contract.ScoredChunk, error) {
	f.searchedByFolder = true
	f.folderId = folderId
	return f.results, nil
}

type fakeUnitOfWork struct {
	chunks    contract.DocumentChunkRepository
	documents contract.DocumentRepository
	folders   contract.FolderRepository
	sessions  contract.SessionRepository
}

func (f *fakeUnitOfWork) Begin(ctx context.Context) error { return nil }
func (f *fakeUnitOfWork) Commit() error                   { return nil }
func (f *fakeUnitOfWork) Rollback() error                 { return nil }
func (f *fakeUnitOfWork) DocumentRepository() contract.DocumentRepository {
	return f.documents
}
func (f *fakeUnitOfWork) FolderRepository() contract.FolderRepository {
	return f.folders
}
func (f *fakeUnitOfWork) SessionRepository() contract.SessionRepository {
	return f.sessions
}
func (f *fakeUnitOfWork) DocumentChunkRepository() contract.DocumentChunkRepository {
	return f.chunks
}

type fakeRepositoryFactory struct {
	uow unitofwork.UnitOfWork
}

func (f *fakeRepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type stubEmbeddingProvider struct{}

func (s *stubEmbeddingProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}
func (s *stubEmbeddingProvider) Model() string { return "stub-embedding" }

type stubLLMProvider struct{}

func (s *stubLLMProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return "stub answer", nil
}
func (s *stubLLMProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "stub answer", nil
}

type fakeFolderService struct {
	folder *entity.Folder
}

func (f *fakeFolderService) List(ctx context.Context) ([]string, string, error) {
	return nil, "", nil
}
func (f *fakeFolderService) Create(ctx context.Context, folderName string) (*entity.Folder, error) {
	return nil, nil
}
func (f *fakeFolderService) Delete(ctx context.Context, folderName string) error { return nil }
func (f *fakeFolderService) FindByName(ctx context.Context, folderName string) (*entity.Folder, error) {
	if f.folder != nil && f.folder.Name == folderName {
		return f.folder, nil
	}
	return nil, nil
}

func newQuestionServiceForTest(chunks *fakeChunkRepository, folders *fakeFolderService) IQuestionService {
	return NewQuestionService(
		&fakeRepositoryFactory{uow: &fakeUnitOfWork{chunks: chunks}},
		&stubEmbeddingProvider{},
		rag.NewAnswerer(&stubLLMProvider{}),
		folders,
		&nopLogger{},
		5,
		time.Second,
	)
}

type nopLogger struct{}

func (n *nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (n *nopLogger) Info(module, message string, details map[string]interface{})  {}
func (n *nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (n *nopLogger) Error(module, message string, details map[string]interface{}) {}
func (n *nopLogger) Sync() error                                                  { return nil }

func TestAskDocumentIdsWinOverFolder(t *testing.T) {
	docId := uuid.New()
	chunks := &fakeChunkRepository{}
	folders := &fakeFolderService{folder: &entity.Folder{Id: uuid.New(), Name: "reports"}}
	svc := newQuestionServiceForTest(chunks, folders)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question:    "what changed?",
		Folder:      "reports",
		DocumentIds: []string{docId.String()},
	})

	require.NoError(t, err)
	assert.Equal(t, "stub answer", res.Answer)
	assert.True(t, chunks.searchedByDocuments, "document scope should win")
	assert.False(t, chunks.searchedByFolder, "folder scope must not be queried")
	assert.Equal(t, []uuid.UUID{docId}, chunks.documentIds)
}

func TestAskFolderScopeWhenNoDocumentIds(t *testing.T) {
	folderId := uuid.New()
	chunks := &fakeChunkRepository{}
	folders := &fakeFolderService{folder: &entity.Folder{Id: folderId, Name: "reports"}}
	svc := newQuestionServiceForTest(chunks, folders)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question: "what changed?",
		Folder:   "reports",
	})

	require.NoError(t, err)
	assert.Equal(t, "stub answer", res.Answer)
	assert.True(t, chunks.searchedByFolder)
	assert.False(t, chunks.searchedByDocuments)
	assert.Equal(t, folderId, chunks.folderId)
}

func TestAskRequiresScope(t *testing.T) {
	svc := newQuestionServiceForTest(&fakeChunkRepository{}, &fakeFolderService{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "anything?"})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestAskRejectsInvalidDocumentId(t *testing.T) {
	svc := newQuestionServiceForTest(&fakeChunkRepository{}, &fakeFolderService{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question:    "anything?",
		DocumentIds: []string{"not-a-uuid"},
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Contains(t, appErr.Message, "invalid document id")
}

func TestAskUnknownFolder(t *testing.T) {
	svc := newQuestionServiceForTest(&fakeChunkRepository{}, &fakeFolderService{})

	_, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question: "anything?",
		Folder:   "missing",
	})

	var appErr *serverutils.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
