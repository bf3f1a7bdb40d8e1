package contacts

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*Contact
}

// NewMemoryRepository creates an empty in-memory contact repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{records: make(map[uuid.UUID]*Contact)}
}

func (m *MemoryRepository) Create(_ context.Context, record *Contact) (*Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records[copied.ID] = &copied
	out := copied
	return &out, nil
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Key: id.String()}
	}
	copied := *record
	return &copied, nil
}

func (m *MemoryRepository) List(_ context.Context) ([]*Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Contact, 0, len(m.records))
	for _, record := range m.records {
		copied := *record
		out = append(out, &copied)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MemoryRepository) MarkRead(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	record, ok := m.records[id]
	if !ok {
		return &NotFoundError{Key: id.String()}
	}
	record.IsRead = true
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.records[id]; !ok {
		return &NotFoundError{Key: id.String()}
	}
	delete(m.records, id)
	return nil
}

func (m *MemoryRepository) CountUnread(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, record := range m.records {
		if !record.IsRead {
			count++
		}
	}
	return count, nil
}
