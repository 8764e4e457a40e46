package catalog

import (
	"context"
	"sync"

	"github.com/MorseWayne/storefront/internal/domain"
)

// mockSource is an in-memory Source with a call counter.
type mockSource struct {
	mu       sync.Mutex
	products []domain.Product
	err      error
	calls    int
}

func (m *mockSource) Fetch(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.products, nil
}

func (m *mockSource) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
