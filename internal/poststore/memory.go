package poststore

import (
	"context"
	"fmt"
	"sync"

	"inkstream/internal/models"
)

// MemoryStore is an in-memory Store with the same semantics as FileStore.
// It exists so concurrency behavior can be tested deterministically without
// real disk races, and doubles as a throwaway backend for local tooling.
type MemoryStore struct {
	mu    sync.RWMutex
	posts map[string]*models.Post
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{posts: make(map[string]*models.Post)}
}

// Create stores a copy of the record, failing with ErrConflict on an
// identifier clash.
func (s *MemoryStore) Create(ctx context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[post.ID]; exists {
		return fmt.Errorf("%w: %s", ErrConflict, post.ID)
	}
	s.posts[post.ID] = post.Clone()
	return nil
}

// Get returns a copy of the record, or ErrNotFound.
func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return post.Clone(), nil
}

// Update applies mutate under the store lock, serializing all mutation. That
// is stricter than FileStore's per-identifier lock but observably equivalent.
func (s *MemoryStore) Update(ctx context.Context, id string, mutate func(*models.Post)) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	post, ok := s.posts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	updated := post.Clone()
	mutate(updated)
	s.posts[id] = updated
	return updated.Clone(), nil
}

// ListAll returns copies of every record in unspecified order.
func (s *MemoryStore) ListAll(ctx context.Context) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]*models.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, post.Clone())
	}
	return posts, nil
}
