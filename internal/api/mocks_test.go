package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/MorseWayne/storefront/internal/domain"
	"github.com/MorseWayne/storefront/internal/resp"
	"github.com/MorseWayne/storefront/internal/state"
)

// mockSource is an in-memory catalog source with a call counter.
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

func catalogProducts() []domain.Product {
	return []domain.Product{
		{ID: 1, Title: "Backpack", Price: 109.95, Category: "men's clothing", Rating: &domain.Rating{Rate: 3.9, Count: 120}},
		{ID: 2, Title: "T-Shirt", Price: 22.3, Category: "men's clothing", Rating: &domain.Rating{Rate: 4.1, Count: 259}},
		{ID: 3, Title: "Ring", Price: 168, Category: "jewelery", Rating: &domain.Rating{Rate: 4.6, Count: 400}},
		{ID: 4, Title: "Monitor", Price: 999.99, Category: "electronics", Rating: &domain.Rating{Rate: 2.2, Count: 250}},
		{ID: 5, Title: "Hard Drive", Price: 64, Category: "electronics", Rating: &domain.Rating{Rate: 3.3, Count: 203}},
	}
}

// loadedStore returns a store whose catalog already holds catalogProducts.
func loadedStore() *state.Store {
	store := state.New()
	store.Dispatch(state.FetchRequested())
	store.Dispatch(state.FetchSucceeded(catalogProducts()))
	return store
}

// decodeBody unmarshals the response envelope and its data payload.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) resp.Body {
	t.Helper()

	var body struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if dest != nil && len(body.Data) > 0 {
		if err := json.Unmarshal(body.Data, dest); err != nil {
			t.Fatalf("invalid data payload: %v", err)
		}
	}
	return resp.Body{Code: body.Code, Message: body.Message}
}
