package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/state"
)

func TestCatalogHandler_ListProducts_FetchesWhenIdle(t *testing.T) {
	store := state.New()
	source := &mockSource{products: catalogProducts()}
	h := NewCatalogHandler(store, source, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if source.callCount() != 1 {
		t.Errorf("source calls = %d, want 1", source.callCount())
	}

	var view CatalogView
	decodeBody(t, rec, &view)
	if view.Status != state.StatusSucceeded {
		t.Errorf("view status = %s", view.Status)
	}
	// Default page size 4 over 5 products
	if len(view.Products) != 4 || view.TotalPages != 2 || view.TotalItems != 5 {
		t.Errorf("view = %d products, %d pages, %d total", len(view.Products), view.TotalPages, view.TotalItems)
	}
	wantCategories := []string{"all", "men's clothing", "jewelery", "electronics"}
	if len(view.Categories) != len(wantCategories) {
		t.Fatalf("categories = %v", view.Categories)
	}
	for i, want := range wantCategories {
		if view.Categories[i] != want {
			t.Errorf("categories[%d] = %q, want %q", i, view.Categories[i], want)
		}
	}

	// Second list does not refetch
	h.ListProducts(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if source.callCount() != 1 {
		t.Errorf("source calls = %d after second list, want 1", source.callCount())
	}
}

func TestCatalogHandler_ListProducts_FailedFetchSurfacesError(t *testing.T) {
	store := state.New()
	source := &mockSource{err: errors.New("HTTP error! status: 404")}
	h := NewCatalogHandler(store, source, zap.NewNop())

	rec := httptest.NewRecorder()
	h.ListProducts(rec, httptest.NewRequest(http.MethodGet, "/api/v1/products", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d; failures resolve into state, not HTTP errors", rec.Code)
	}

	var view CatalogView
	decodeBody(t, rec, &view)
	if view.Status != state.StatusFailed {
		t.Errorf("view status = %s, want failed", view.Status)
	}
	if view.Error != "HTTP error! status: 404" {
		t.Errorf("view error = %q", view.Error)
	}
}

func TestCatalogHandler_Refresh(t *testing.T) {
	store := loadedStore()
	source := &mockSource{products: catalogProducts()}
	h := NewCatalogHandler(store, source, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if source.callCount() != 1 {
		t.Errorf("source calls = %d, want 1", source.callCount())
	}

	var result struct {
		Status state.CatalogStatus `json:"status"`
		Count  int                 `json:"count"`
	}
	decodeBody(t, rec, &result)
	if result.Status != state.StatusSucceeded || result.Count != 5 {
		t.Errorf("refresh result = %+v", result)
	}
}

func TestCatalogHandler_Refresh_ConflictWhileLoading(t *testing.T) {
	store := state.New()
	store.Dispatch(state.FetchRequested())
	source := &mockSource{products: catalogProducts()}
	h := NewCatalogHandler(store, source, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Refresh(rec, httptest.NewRequest(http.MethodPost, "/api/v1/catalog/refresh", nil))
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", rec.Code)
	}
	if source.callCount() != 0 {
		t.Errorf("source calls = %d, want 0", source.callCount())
	}
}

func TestCatalogHandler_SetFilters(t *testing.T) {
	store := loadedStore()
	store.Dispatch(state.SetCurrentPage(2))
	h := NewCatalogHandler(store, &mockSource{}, zap.NewNop())

	body := `{"category": "electronics", "search": "drive"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/filters", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.SetFilters(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var view CatalogView
	decodeBody(t, rec, &view)
	if view.SelectedCategory != "electronics" || view.SearchQuery != "drive" {
		t.Errorf("filters not applied: %+v", view)
	}
	// Filter changes reset pagination
	if view.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", view.CurrentPage)
	}
	if view.TotalItems != 1 || len(view.Products) != 1 || view.Products[0].ID != 5 {
		t.Errorf("filtered view = %+v", view.Products)
	}
}

func TestCatalogHandler_SetFilters_PartialUpdate(t *testing.T) {
	store := loadedStore()
	h := NewCatalogHandler(store, &mockSource{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/filters", strings.NewReader(`{"max_price": 200}`))
	rec := httptest.NewRecorder()
	h.SetFilters(rec, req)

	var view CatalogView
	decodeBody(t, rec, &view)
	if view.SelectedMaxPrice != 200 {
		t.Errorf("SelectedMaxPrice = %v, want 200", view.SelectedMaxPrice)
	}
	// Untouched fields keep their values
	if view.SelectedCategory != "all" {
		t.Errorf("SelectedCategory = %q, want all", view.SelectedCategory)
	}
	// Monitor at 999.99 drops out
	if view.TotalItems != 4 {
		t.Errorf("TotalItems = %d, want 4", view.TotalItems)
	}
}

func TestCatalogHandler_SetPage(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantPage   int
	}{
		{"valid page", `{"page": 2}`, http.StatusOK, 2},
		{"page zero", `{"page": 0}`, http.StatusBadRequest, 1},
		{"beyond last page", `{"page": 3}`, http.StatusBadRequest, 1},
		{"malformed body", `{"page": `, http.StatusBadRequest, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// 5 products at 4 per page: valid pages are 1 and 2
			store := loadedStore()
			h := NewCatalogHandler(store, &mockSource{}, zap.NewNop())

			req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/page", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.SetPage(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := store.GetState().Catalog.CurrentPage; got != tt.wantPage {
				t.Errorf("CurrentPage = %d, want %d", got, tt.wantPage)
			}
		})
	}
}

func TestCatalogHandler_SetPageSize(t *testing.T) {
	store := loadedStore()
	store.Dispatch(state.SetCurrentPage(2))
	h := NewCatalogHandler(store, &mockSource{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/v1/catalog/page-size", strings.NewReader(`{"items_per_page": 2}`))
	rec := httptest.NewRecorder()
	h.SetPageSize(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var view CatalogView
	decodeBody(t, rec, &view)
	if view.ItemsPerPage != 2 || view.TotalPages != 3 {
		t.Errorf("view = %d per page, %d pages", view.ItemsPerPage, view.TotalPages)
	}
	// Page size change resets to the first page
	if view.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", view.CurrentPage)
	}

	// Non-positive sizes are rejected
	req = httptest.NewRequest(http.MethodPut, "/api/v1/catalog/page-size", strings.NewReader(`{"items_per_page": 0}`))
	rec = httptest.NewRecorder()
	h.SetPageSize(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
