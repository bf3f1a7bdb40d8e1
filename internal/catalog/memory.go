package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository[T Record] struct {
	mu        sync.RWMutex
	records   map[uuid.UUID]T
	newRecord func() T
	resource  string
}

// NewMemoryRepository creates an empty in-memory repository for one entity type.
func NewMemoryRepository[T Record](newRecord func() T) *MemoryRepository[T] {
	return &MemoryRepository[T]{
		records:   make(map[uuid.UUID]T),
		newRecord: newRecord,
		resource:  newRecord().Resource(),
	}
}

func (m *MemoryRepository[T]) Create(_ context.Context, record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := m.clone(record)
	m.records[copied.GetID()] = copied
	return m.clone(copied), nil
}

func (m *MemoryRepository[T]) GetByID(_ context.Context, id uuid.UUID) (T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		var zero T
		return zero, &NotFoundError{Resource: m.resource, Key: id.String()}
	}
	return m.clone(record), nil
}

func (m *MemoryRepository[T]) List(_ context.Context, onlyActive bool) ([]T, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]T, 0, len(m.records))
	for _, record := range m.records {
		if onlyActive && !record.Card().IsActive {
			continue
		}
		out = append(out, m.clone(record))
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Card(), out[j].Card()
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID.String() < b.ID.String()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return out, nil
}

func (m *MemoryRepository[T]) Update(_ context.Context, record T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[record.GetID()]; !ok {
		var zero T
		return zero, &NotFoundError{Resource: m.resource, Key: record.GetID().String()}
	}
	copied := m.clone(record)
	m.records[copied.GetID()] = copied
	return m.clone(copied), nil
}

func (m *MemoryRepository[T]) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Resource: m.resource, Key: id.String()}
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRepository[T]) ToggleActive(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return &NotFoundError{Resource: m.resource, Key: id.String()}
	}
	record.Card().IsActive = !record.Card().IsActive
	return nil
}

func (m *MemoryRepository[T]) InvalidateCache(context.Context) error { return nil }

func (m *MemoryRepository[T]) clone(record T) T {
	out := m.newRecord()
	*out.Card() = *record.Card()
	return out
}
