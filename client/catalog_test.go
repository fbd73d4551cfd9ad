package client_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"hometheater/client"
	"hometheater/models"
)

func catalogServer(t *testing.T, entries []models.CatalogEntry) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/movies", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(entries)
	})
	mux.HandleFunc("/api/movies/", func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Path[len("/api/movies/"):]
		for _, entry := range entries {
			if entry.ID == id {
				w.Header().Set("Content-Type", "application/json")
				json.NewEncoder(w).Encode(entry)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "movie not found"})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchCatalog(t *testing.T) {
	srv := catalogServer(t, []models.CatalogEntry{
		{ID: "Alpha", Title: "Alpha"},
		{ID: "Beta", Title: "Beta"},
	})

	fetcher := client.NewFetcher(srv.URL)
	snap, err := fetcher.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if len(snap.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(snap.Entries))
	}
	if snap.Seq == 0 {
		t.Error("expected a non-zero sequence number")
	}
}

func TestFetchCatalogSequenceIsMonotonic(t *testing.T) {
	srv := catalogServer(t, nil)
	fetcher := client.NewFetcher(srv.URL)

	first, err := fetcher.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	second, err := fetcher.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if second.Seq <= first.Seq {
		t.Errorf("expected increasing sequence numbers, got %d then %d", first.Seq, second.Seq)
	}
}

func TestFetchCatalogRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]models.CatalogEntry{{ID: "Alpha"}})
	}))
	t.Cleanup(srv.Close)

	fetcher := client.NewFetcher(srv.URL)
	snap, err := fetcher.FetchCatalog(context.Background())
	if err != nil {
		t.Fatalf("expected retries to succeed, got %v", err)
	}
	if len(snap.Entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(snap.Entries))
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestFetchCatalogGivesUpAfterRepeatedFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	fetcher := client.NewFetcher(srv.URL)
	if _, err := fetcher.FetchCatalog(context.Background()); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("expected 3 attempts, got %d", got)
	}
}

func TestFetchEntry(t *testing.T) {
	srv := catalogServer(t, []models.CatalogEntry{{ID: "Alpha", Title: "Alpha"}})
	fetcher := client.NewFetcher(srv.URL)

	entry, err := fetcher.FetchEntry(context.Background(), "Alpha")
	if err != nil {
		t.Fatalf("fetch failed: %v", err)
	}
	if entry.Title != "Alpha" {
		t.Errorf("expected Alpha, got %q", entry.Title)
	}
}

func TestFetchEntryNotFoundDoesNotRetry(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	fetcher := client.NewFetcher(srv.URL)
	if _, err := fetcher.FetchEntry(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for missing movie")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected a single attempt for 404, got %d", got)
	}
}
