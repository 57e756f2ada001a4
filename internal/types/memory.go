package types

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
	store map[primitive.ObjectID]models.Type
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{store: make(map[primitive.ObjectID]models.Type)}
}

func (m *MemoryRepository) List(ctx context.Context) ([]models.Type, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Type, 0, len(m.store))
	for _, t := range m.store {
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Type, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (m *MemoryRepository) Insert(ctx context.Context, t *models.Type) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	m.store[t.ID] = *t
	return nil
}

func (m *MemoryRepository) Update(ctx context.Context, id primitive.ObjectID, name string) (*models.Type, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.Name = name
	m.store[id] = t
	return &t, nil
}

func (m *MemoryRepository) Delete(ctx context.Context, id primitive.ObjectID) (*models.Type, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.store, id)
	return &t, nil
}
