package visits

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepository is an in-memory Repository for scaffolding and tests.
type MemoryRepository struct {
	mu      sync.RWMutex
	records []*Visit
}

// NewMemoryRepository creates an empty in-memory visit repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Insert(_ context.Context, record *Visit) (*Visit, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *record
	m.records = append(m.records, &copied)
	out := copied
	return &out, nil
}

func (m *MemoryRepository) FindRecent(_ context.Context, ip, path string, since time.Time) (*Visit, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var latest *Visit
	for _, record := range m.records {
		if record.IP != ip || record.Path != path || record.CreatedAt.Before(since) {
			continue
		}
		if latest == nil || record.CreatedAt.After(latest.CreatedAt) {
			latest = record
		}
	}
	if latest == nil {
		return nil, nil
	}
	copied := *latest
	return &copied, nil
}

func (m *MemoryRepository) CountBetween(_ context.Context, from, to time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, record := range m.records {
		if !from.IsZero() && record.CreatedAt.Before(from) {
			continue
		}
		if !to.IsZero() && !record.CreatedAt.Before(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (m *MemoryRepository) DistinctIPsSince(_ context.Context, since time.Time) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := map[string]bool{}
	for _, record := range m.records {
		if record.CreatedAt.Before(since) {
			continue
		}
		seen[record.IP] = true
	}
	return len(seen), nil
}

func (m *MemoryRepository) GroupByCountry(_ context.Context) ([]CountryStat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	type key struct{ code, name string }
	counts := map[key]int{}
	for _, record := range m.records {
		counts[key{record.CountryCode, record.CountryName}]++
	}

	out := make([]CountryStat, 0, len(counts))
	for k, count := range counts {
		out = append(out, CountryStat{Code: k.code, Name: k.name, Count: count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Code < out[j].Code
		}
		return out[i].Count > out[j].Count
	})
	return out, nil
}
