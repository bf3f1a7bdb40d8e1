package sections

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryPageRepository is an in-memory implementation for scaffolding and tests.
type MemoryPageRepository struct {
	mu        sync.RWMutex
	pages     map[uuid.UUID]*Page
	slugIndex map[string]uuid.UUID
}

// NewMemoryPageRepository creates an empty in-memory page repository.
func NewMemoryPageRepository() *MemoryPageRepository {
	return &MemoryPageRepository{
		pages:     make(map[uuid.UUID]*Page),
		slugIndex: make(map[string]uuid.UUID),
	}
}

func (m *MemoryPageRepository) Create(_ context.Context, record *Page) (*Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := clonePage(record)
	m.pages[copied.ID] = copied
	m.slugIndex[copied.Slug] = copied.ID
	return clonePage(copied), nil
}

func (m *MemoryPageRepository) GetByID(_ context.Context, id uuid.UUID) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.pages[id]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: id.String()}
	}
	return clonePage(rec), nil
}

func (m *MemoryPageRepository) GetBySlug(_ context.Context, slug string) (*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.slugIndex[slug]
	if !ok {
		return nil, &NotFoundError{Resource: "page", Key: slug}
	}
	return clonePage(m.pages[id]), nil
}

func (m *MemoryPageRepository) List(_ context.Context) ([]*Page, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Page, 0, len(m.pages))
	for _, rec := range m.pages {
		out = append(out, clonePage(rec))
	}
	return out, nil
}

func (m *MemoryPageRepository) InvalidateCache(context.Context) error { return nil }

// MemorySectionRepository stores sections in-memory.
type MemorySectionRepository struct {
	mu       sync.RWMutex
	sections map[uuid.UUID]*Section
}

// NewMemorySectionRepository constructs the repository.
func NewMemorySectionRepository() *MemorySectionRepository {
	return &MemorySectionRepository{sections: make(map[uuid.UUID]*Section)}
}

func (m *MemorySectionRepository) Create(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := cloneSection(record)
	m.sections[copied.ID] = copied
	return cloneSection(copied), nil
}

func (m *MemorySectionRepository) GetByID(_ context.Context, id uuid.UUID) (*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, ok := m.sections[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section", Key: id.String()}
	}
	return cloneSection(rec), nil
}

func (m *MemorySectionRepository) ListByPage(_ context.Context, pageID uuid.UUID) ([]*Section, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Section{}
	for _, rec := range m.sections {
		if rec.PageID == pageID {
			out = append(out, cloneSection(rec))
		}
	}
	return out, nil
}

func (m *MemorySectionRepository) Update(_ context.Context, record *Section) (*Section, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sections[record.ID]; !ok {
		return nil, &NotFoundError{Resource: "section", Key: record.ID.String()}
	}
	copied := cloneSection(record)
	m.sections[copied.ID] = copied
	return cloneSection(copied), nil
}

func (m *MemorySectionRepository) InvalidateCache(context.Context) error { return nil }

// MemoryInputRepository stores input rows in-memory. Replace swaps a section's
// rows under one lock, mirroring the transactional contract of the bun
// implementation.
type MemoryInputRepository struct {
	mu        sync.RWMutex
	bySection map[uuid.UUID][]*Input
}

// NewMemoryInputRepository constructs the repository.
func NewMemoryInputRepository() *MemoryInputRepository {
	return &MemoryInputRepository{bySection: make(map[uuid.UUID][]*Input)}
}

func (m *MemoryInputRepository) ListBySection(_ context.Context, sectionID uuid.UUID) ([]*Input, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneInputs(m.bySection[sectionID]), nil
}

func (m *MemoryInputRepository) ListBySections(_ context.Context, sectionIDs []uuid.UUID) ([]*Input, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := []*Input{}
	for _, id := range sectionIDs {
		out = append(out, cloneInputs(m.bySection[id])...)
	}
	return out, nil
}

func (m *MemoryInputRepository) Replace(_ context.Context, sectionID uuid.UUID, rows []*Input) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(rows) == 0 {
		delete(m.bySection, sectionID)
		return nil
	}
	m.bySection[sectionID] = cloneInputs(rows)
	return nil
}

func (m *MemoryInputRepository) InvalidateCache(context.Context) error { return nil }

func clonePage(src *Page) *Page {
	if src == nil {
		return nil
	}
	copied := *src
	if len(src.Sections) > 0 {
		copied.Sections = make([]*Section, len(src.Sections))
		for i, section := range src.Sections {
			copied.Sections[i] = cloneSection(section)
		}
	}
	return &copied
}

func cloneSection(src *Section) *Section {
	if src == nil {
		return nil
	}
	copied := *src
	copied.Page = nil
	if len(src.Inputs) > 0 {
		copied.Inputs = cloneInputs(src.Inputs)
	}
	return &copied
}

func cloneInputs(src []*Input) []*Input {
	if len(src) == 0 {
		return nil
	}
	out := make([]*Input, len(src))
	for i, input := range src {
		if input == nil {
			continue
		}
		local := *input
		local.Section = nil
		out[i] = &local
	}
	return out
}
