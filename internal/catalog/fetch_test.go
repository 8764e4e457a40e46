package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/MorseWayne/storefront/internal/state"
)

func TestFetch_Success(t *testing.T) {
	store := state.New()
	source := &mockSource{products: sampleProducts()}

	var statuses []state.CatalogStatus
	store.Subscribe(func() {
		statuses = append(statuses, store.GetState().Catalog.Status)
	})

	Fetch(context.Background(), store, source, zap.NewNop())

	// Exactly one loading followed by exactly one terminal status
	want := []state.CatalogStatus{state.StatusLoading, state.StatusSucceeded}
	if len(statuses) != len(want) {
		t.Fatalf("observed statuses = %v, want %v", statuses, want)
	}
	for i := range want {
		if statuses[i] != want[i] {
			t.Errorf("statuses[%d] = %s, want %s", i, statuses[i], want[i])
		}
	}

	cs := store.GetState().Catalog
	if len(cs.Items) != 2 {
		t.Errorf("items = %d, want 2", len(cs.Items))
	}
	if cs.Error != "" {
		t.Errorf("Error = %q, want empty", cs.Error)
	}
}

func TestFetch_HTTPFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store := state.New()
	Fetch(context.Background(), store, NewHTTPSource(srv.URL, srv.Client()), zap.NewNop())

	cs := store.GetState().Catalog
	if cs.Status != state.StatusFailed {
		t.Errorf("Status = %s, want failed", cs.Status)
	}
	if cs.Error != "HTTP error! status: 404" {
		t.Errorf("Error = %q, want %q", cs.Error, "HTTP error! status: 404")
	}
}

func TestFetchIfIdle(t *testing.T) {
	store := state.New()
	source := &mockSource{products: sampleProducts()}
	lg := zap.NewNop()

	// Idle triggers the fetch
	if !FetchIfIdle(context.Background(), store, source, lg) {
		t.Fatalf("FetchIfIdle() = false from idle, want true")
	}
	if source.callCount() != 1 {
		t.Errorf("source calls = %d, want 1", source.callCount())
	}

	// Any non-idle status skips it
	if FetchIfIdle(context.Background(), store, source, lg) {
		t.Errorf("FetchIfIdle() = true from succeeded, want false")
	}
	if source.callCount() != 1 {
		t.Errorf("source calls = %d, want 1 after skip", source.callCount())
	}
}
