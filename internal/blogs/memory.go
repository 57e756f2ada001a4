package blogs

import (
	"context"
	"sort"
	"sync"

	"github.com/grandshipper/grandshipper-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryRepository is an in-memory Repository used by tests and local runs.
type MemoryRepository struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]models.Blog
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]models.Blog)}
}

func (m *MemoryRepository) List(ctx context.Context) ([]models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Blog, 0, len(m.store))
	for _, b := range m.store {
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &b, nil
}

func (m *MemoryRepository) Insert(ctx context.Context, b *models.Blog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	m.store[b.ID] = *b
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, b *models.Blog) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[b.ID]; !ok {
		return nil, ErrNotFound
	}
	m.store[b.ID] = *b
	out := *b
	return &out, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Blog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	return &b, nil
}
