package service

import (
	"context"
	"testing"
	"time"

	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDocumentRepository struct {
	documents []*entity.Document
}

func (f *fakeDocumentRepository) Create(ctx context.Context, document *entity.Document) error {
	f.documents = append(f.documents, document)
	return nil
}
func (f *fakeDocumentRepository) Update(ctx context.Context, document *entity.Document) error {
	return nil
}
func (f *fakeDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeDocumentRepository) DeleteByFolderId(ctx context.Context, folderId uuid.UUID) error {
	return nil
}
func (f *fakeDocumentRepository) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (f *fakeDocumentRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Document, error) {
	return nil, nil
}
func (f *fakeDocumentRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Document, error) {
	return f.documents, nil
}
func (f *fakeDocumentRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.documents)), nil
}

type fakeFolderRepository struct {
	folders []*entity.Folder
}

func (f *fakeFolderRepository) Create(ctx context.Context, folder *entity.Folder) error {
	f.folders = append(f.folders, folder)
	return nil
}
func (f *fakeFolderRepository) Delete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakeFolderRepository) DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error {
	return nil
}
func (f *fakeFolderRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Folder, error) {
	return nil, nil
}
func (f *fakeFolderRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Folder, error) {
	return f.folders, nil
}
func (f *fakeFolderRepository) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(f.folders)), nil
}

func TestListIncludesSessionDocuments(t *testing.T) {
	sessionId := uuid.New()
	registryFolder := &entity.Folder{Id: uuid.New(), Name: "reports"}
	bucketFolder := &entity.Folder{Id: uuid.New(), Name: "bucket1", SessionId: &sessionId}

	documents := &fakeDocumentRepository{documents: []*entity.Document{
		{
			Id:        uuid.New(),
			Filename:  "plain.txt",
			FolderId:  registryFolder.Id,
			Status:    entity.DocumentStatusProcessed,
			CreatedAt: time.Now(),
		},
		{
			Id:        uuid.New(),
			Filename:  "clustered.txt",
			FolderId:  bucketFolder.Id,
			SessionId: &sessionId,
			Status:    entity.DocumentStatusProcessed,
			CreatedAt: time.Now(),
		},
	}}
	folders := &fakeFolderRepository{folders: []*entity.Folder{registryFolder, bucketFolder}}

	svc := NewDocumentService(
		&fakeRepositoryFactory{uow: &fakeUnitOfWork{documents: documents, folders: folders}},
		nil,
		&fakeFolderService{},
		nil,
		nil,
		&nopLogger{},
		10*1024*1024,
	)

	res, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 2)

	byName := make(map[string]string, len(res))
	for _, d := range res {
		byName[d.Filename] = d.Folder
	}
	assert.Equal(t, "reports", byName["plain.txt"])
	assert.Equal(t, "bucket1", byName["clustered.txt"], "session-placed documents appear with their bucket folder")
}
