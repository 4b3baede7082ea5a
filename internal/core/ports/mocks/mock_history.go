package mocks

import (
	"context"
	"sort"
	"sync"

	"speedprobe/internal/core/domain"
)

// MockHistoryRepository is an in-memory HistoryRepository for testing.
type MockHistoryRepository struct {
	mu      sync.RWMutex
	reports []domain.Report

	SaveErr error
	ListErr error
}

// NewMockHistoryRepository creates an empty mock history.
func NewMockHistoryRepository() *MockHistoryRepository {
	return &MockHistoryRepository{}
}

func (m *MockHistoryRepository) Save(ctx context.Context, report *domain.Report) error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reports = append(m.reports, *report)
	return nil
}

func (m *MockHistoryRepository) List(ctx context.Context) ([]domain.Report, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]domain.Report, len(m.reports))
	copy(out, m.reports)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

func (m *MockHistoryRepository) Prune(ctx context.Context, keep int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(m.reports) <= keep {
		return 0, nil
	}
	sort.Slice(m.reports, func(i, j int) bool {
		return m.reports[i].Timestamp.After(m.reports[j].Timestamp)
	})
	removed := len(m.reports) - keep
	m.reports = m.reports[:keep]
	return removed, nil
}

func (m *MockHistoryRepository) Clear(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := len(m.reports)
	m.reports = nil
	return removed, nil
}

// Count reports how many reports are stored, for test assertions.
func (m *MockHistoryRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.reports)
}
