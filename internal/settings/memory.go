package settings

import (
	"context"
	"sync"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	record *Settings
}

// NewMemoryRepository creates an empty in-memory settings repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Get(context.Context) (*Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.record == nil {
		return nil, ErrNotFound
	}
	return cloneSettings(m.record), nil
}

func (m *MemoryRepository) Upsert(_ context.Context, record *Settings) (*Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSettings(record)
	copied.ID = SingletonID
	m.record = copied
	return cloneSettings(copied), nil
}

func cloneSettings(src *Settings) *Settings {
	copied := *src
	if src.SocialLinks != nil {
		copied.SocialLinks = make([]SocialLink, len(src.SocialLinks))
		copy(copied.SocialLinks, src.SocialLinks)
	}
	return &copied
}
