package postgres

import (
	"context"
	"sync"

	"github.com/weatherwidget/backend/internal/domain"
)

const mockCapacity = 100

// MockRepository implements domain.LookupRepository in memory for demo mode.
// It keeps the most recent entries only.
type MockRepository struct {
	mu      sync.Mutex
	entries []domain.LookupLog
}

// NewMockRepository creates a new mock repository
func NewMockRepository() *MockRepository {
	return &MockRepository{}
}

// SaveLookup appends entry, dropping the oldest beyond capacity
func (r *MockRepository) SaveLookup(ctx context.Context, entry domain.LookupLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, entry)
	if len(r.entries) > mockCapacity {
		r.entries = r.entries[len(r.entries)-mockCapacity:]
	}
	return nil
}

// RecentLookups returns up to limit entries, newest first
func (r *MockRepository) RecentLookups(ctx context.Context, limit int) ([]domain.LookupLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.LookupLog, 0, limit)
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}

// Health always returns nil in mock mode
func (r *MockRepository) Health(ctx context.Context) error {
	return nil
}
