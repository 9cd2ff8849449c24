package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"doc-manager-be/internal/dto"
	"doc-manager-be/internal/entity"
	"doc-manager-be/internal/repository/specification"
	"doc-manager-be/pkg/similarity"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSessionRepository keeps sessions in memory and can be told to fail
// writes, to exercise the error paths of the session service.
type fakeSessionRepository struct {
	sessions   map[uuid.UUID]entity.Session
	failUpdate bool
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[uuid.UUID]entity.Session)}
}

func (f *fakeSessionRepository) Create(ctx context.Context, session *entity.Session) error {
	f.sessions[session.Id] = *session
	return nil
}

func (f *fakeSessionRepository) Update(ctx context.Context, session *entity.Session) error {
	if f.failUpdate {
		return errors.New("write failed")
	}
	f.sessions[session.Id] = *session
	return nil
}

func (f *fakeSessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.sessions, id)
	return nil
}

func (f *fakeSessionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Session, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if session, found := f.sessions[byID.ID]; found {
				copied := session
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (f *fakeSessionRepository) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Session, error) {
	result := make([]*entity.Session, 0, len(f.sessions))
	for _, session := range f.sessions {
		copied := session
		result = append(result, &copied)
	}
	return result, nil
}

func newSessionServiceForTest(repo *fakeSessionRepository) ISessionService {
	return NewSessionService(
		&fakeRepositoryFactory{uow: &fakeUnitOfWork{sessions: repo}},
		nil,
		&stubEmbeddingProvider{},
		&stubLLMProvider{},
		similarity.NewSessionLocker(),
		gocache.New(5*time.Minute, 10*time.Minute),
		nil,
		&nopLogger{},
		&nopLogger{},
		0.7,
		time.Second,
		10*1024*1024,
		1000,
		100,
	)
}

func seedSessionForTest(repo *fakeSessionRepository, name string, threshold float64) uuid.UUID {
	id := uuid.New()
	repo.sessions[id] = entity.Session{
		Id:                  id,
		Name:                name,
		SimilarityThreshold: threshold,
		Active:              true,
		CreatedAt:           time.Now(),
	}
	return id
}

func TestUpdateAppliesChanges(t *testing.T) {
	repo := newFakeSessionRepository()
	id := seedSessionForTest(repo, "original", 0.7)
	svc := newSessionServiceForTest(repo)

	name := "renamed"
	threshold := 0.5
	res, err := svc.Update(context.Background(), &dto.UpdateSessionRequest{
		Id:                  id,
		Name:                &name,
		SimilarityThreshold: &threshold,
	})

	require.NoError(t, err)
	assert.Equal(t, "renamed", res.Name)
	assert.Equal(t, 0.5, res.SimilarityThreshold)

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, 0.5, got.SimilarityThreshold)
}

func TestFailedUpdateLeavesCachedSessionUntouched(t *testing.T) {
	repo := newFakeSessionRepository()
	id := seedSessionForTest(repo, "original", 0.7)
	svc := newSessionServiceForTest(repo)

	// Warm the cache with the persisted state.
	_, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	repo.failUpdate = true
	name := "renamed"
	threshold := 0.2
	_, err = svc.Update(context.Background(), &dto.UpdateSessionRequest{
		Id:                  id,
		Name:                &name,
		SimilarityThreshold: &threshold,
	})
	require.Error(t, err)

	// A failed write must not change what later reads observe.
	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "original", got.Name)
	assert.Equal(t, 0.7, got.SimilarityThreshold)
}

func TestGetReturnsIndependentCopies(t *testing.T) {
	repo := newFakeSessionRepository()
	id := seedSessionForTest(repo, "original", 0.7)
	svc := newSessionServiceForTest(repo)

	first, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	first.Name = "mutated by caller"

	second, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "original", second.Name)
}
