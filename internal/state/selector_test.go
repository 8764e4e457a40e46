package state

import (
	"reflect"
	"testing"

	"github.com/MorseWayne/storefront/internal/domain"
)

// loadedCatalog returns a catalog state with n products of ascending IDs,
// prices 10*i and rating 3.0, spread across two categories.
func loadedCatalog(n int) CatalogState {
	products := make([]domain.Product, 0, n)
	for i := 1; i <= n; i++ {
		category := "electronics"
		if i%2 == 0 {
			category = "jewelery"
		}
		products = append(products, domain.Product{
			ID:       int64(i),
			Title:    "Item",
			Price:    float64(10 * i),
			Category: category,
			Rating:   &domain.Rating{Rate: 3.0, Count: 10},
		})
	}
	s := NewCatalogState()
	return reduceCatalog(s, FetchSucceeded(products))
}

func TestCategories(t *testing.T) {
	s := NewCatalogState()
	s = reduceCatalog(s, FetchSucceeded([]domain.Product{
		{ID: 1, Category: "men's clothing", Price: 1},
		{ID: 2, Category: "jewelery", Price: 1},
		{ID: 3, Category: "men's clothing", Price: 1},
		{ID: 4, Category: "electronics", Price: 1},
	}))

	got := Categories(s)
	want := []string{"all", "men's clothing", "jewelery", "electronics"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}
}

func TestCategories_EmptyCatalog(t *testing.T) {
	got := Categories(NewCatalogState())
	if !reflect.DeepEqual(got, []string{"all"}) {
		t.Errorf("Categories() = %v, want [all]", got)
	}
}

func TestFilteredProducts(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CatalogState)
		wantIDs []int64
	}{
		{
			name:    "no filter passes everything",
			mutate:  func(s *CatalogState) {},
			wantIDs: []int64{1, 2, 3, 4},
		},
		{
			name: "category filter",
			mutate: func(s *CatalogState) {
				s.SelectedCategory = "electronics"
			},
			wantIDs: []int64{1, 3},
		},
		{
			name: "price range",
			mutate: func(s *CatalogState) {
				s.SelectedMinPrice = 20
				s.SelectedMaxPrice = 30
			},
			wantIDs: []int64{2, 3},
		},
		{
			name: "rating range excludes all",
			mutate: func(s *CatalogState) {
				s.SelectedMinRating = 4
			},
			wantIDs: []int64{},
		},
		{
			name: "case-insensitive title search",
			mutate: func(s *CatalogState) {
				s.SearchQuery = "iTeM"
			},
			wantIDs: []int64{1, 2, 3, 4},
		},
		{
			name: "search misses",
			mutate: func(s *CatalogState) {
				s.SearchQuery = "backpack"
			},
			wantIDs: []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := loadedCatalog(4)
			tt.mutate(&s)

			got := FilteredProducts(s)
			gotIDs := make([]int64, 0, len(got))
			for i := range got {
				gotIDs = append(gotIDs, got[i].ID)
			}
			if !reflect.DeepEqual(gotIDs, tt.wantIDs) {
				t.Errorf("filtered IDs = %v, want %v", gotIDs, tt.wantIDs)
			}
		})
	}
}

func TestFilteredProducts_MissingRatingTreatedAsZero(t *testing.T) {
	s := NewCatalogState()
	s = reduceCatalog(s, FetchSucceeded([]domain.Product{
		{ID: 1, Title: "unrated", Price: 10, Category: "a"},
		{ID: 2, Title: "rated", Price: 10, Category: "a", Rating: &domain.Rating{Rate: 4}},
	}))
	s.SelectedMinRating = 1

	got := FilteredProducts(s)
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("filtered = %+v, want only the rated product", got)
	}
}

func TestPagination(t *testing.T) {
	// 10 products, 4 per page, page 3 holds the trailing 2 items
	s := loadedCatalog(10)
	s.ItemsPerPage = 4
	s.CurrentPage = 3

	if got := TotalPages(s); got != 3 {
		t.Errorf("TotalPages = %d, want 3", got)
	}

	visible := VisibleProducts(s)
	if len(visible) != 2 {
		t.Fatalf("visible = %d items, want 2", len(visible))
	}
	if visible[0].ID != 9 || visible[1].ID != 10 {
		t.Errorf("visible IDs = [%d, %d], want [9, 10]", visible[0].ID, visible[1].ID)
	}
}

func TestPagination_EmptyResult(t *testing.T) {
	s := loadedCatalog(4)
	s.SearchQuery = "nothing matches this"

	if got := TotalPages(s); got != 0 {
		t.Errorf("TotalPages = %d, want 0", got)
	}
	if got := VisibleProducts(s); len(got) != 0 {
		t.Errorf("visible = %d items, want 0", len(got))
	}
}

func TestPagination_PageBeyondRange(t *testing.T) {
	s := loadedCatalog(4)
	s.ItemsPerPage = 4
	s.CurrentPage = 9

	// The selector itself does not reject out-of-range pages, it just
	// yields an empty window; clamping is the page-change caller's job
	if got := VisibleProducts(s); len(got) != 0 {
		t.Errorf("visible = %d items, want 0", len(got))
	}
}

func TestCartTotalsSelectors(t *testing.T) {
	s := NewCartState()
	s = reduceCart(s, AddToCart(testProduct(1, 29.99)))
	s = reduceCart(s, AddToCart(testProduct(1, 29.99)))
	s = reduceCart(s, AddToCart(testProduct(2, 5)))

	if got := CartQuantity(s); got != 3 {
		t.Errorf("CartQuantity = %d, want 3", got)
	}
	if got := CartAmount(s); !almostEqual(got, 64.98) {
		t.Errorf("CartAmount = %v, want 64.98", got)
	}
}
