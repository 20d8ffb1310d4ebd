package artifact

import (
	"context"
	"errors"
	"sync"
	"time"

	"article-crew/internal/application/port/output"
	"article-crew/internal/domain/entity"

	"github.com/google/uuid"
)

var ErrArtifactNotFound = errors.New("artifact not found")

const DefaultTTL = 30 * time.Minute

var _ output.ArtifactStore = (*MemoryStore)(nil)

// MemoryStore keeps generated articles just long enough to be downloaded.
// Nothing survives a restart.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]*entity.Artifact
	ttl   time.Duration
	now   func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		items: make(map[string]*entity.Artifact),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Save(ctx context.Context, article entity.Article) (*entity.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	artifact := &entity.Artifact{
		ID:        uuid.NewString(),
		FileName:  article.FileName(),
		Content:   article.Bytes(),
		CreatedAt: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()
	s.items[artifact.ID] = artifact

	return cloneArtifact(artifact), nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*entity.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked()
	artifact, ok := s.items[id]
	if !ok {
		return nil, ErrArtifactNotFound
	}
	return cloneArtifact(artifact), nil
}

func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	return len(s.items)
}

func (s *MemoryStore) evictLocked() {
	cutoff := s.now().Add(-s.ttl)
	for id, artifact := range s.items {
		if artifact.CreatedAt.Before(cutoff) {
			delete(s.items, id)
		}
	}
}

func cloneArtifact(a *entity.Artifact) *entity.Artifact {
	c := *a
	c.Content = append([]byte(nil), a.Content...)
	return &c
}
