// Package client fetches the movie catalog over HTTP for terminal and test
// consumers of the browsing engine.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/avast/retry-go/v4"

	"hometheater/models"
)

// Snapshot pairs a fetched catalog with the sequence number of the request
// that produced it, so the query engine can discard responses that arrive
// out of order.
type Snapshot struct {
	Seq     uint64
	Entries []models.CatalogEntry
}

// Fetcher retrieves catalog data from a running server. It is safe for
// concurrent use.
type Fetcher struct {
	baseURL string
	client  *http.Client
	seq     atomic.Uint64
}

// NewFetcher creates a fetcher against the given base URL, for example
// "http://127.0.0.1:3000".
func NewFetcher(baseURL string) *Fetcher {
	return &Fetcher{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// FetchCatalog retrieves the full movie list, retrying transient failures.
// On error the caller keeps whatever snapshot it already has; a failed
// refresh never clears the catalog.
func (f *Fetcher) FetchCatalog(ctx context.Context) (Snapshot, error) {
	seq := f.seq.Add(1)

	var entries []models.CatalogEntry
	err := f.withRetry(ctx, func() error {
		return f.getJSON(ctx, "/api/movies", &entries)
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch catalog: %w", err)
	}
	return Snapshot{Seq: seq, Entries: entries}, nil
}

// FetchEntry retrieves a single movie by id.
func (f *Fetcher) FetchEntry(ctx context.Context, id string) (models.CatalogEntry, error) {
	var entry models.CatalogEntry
	err := f.withRetry(ctx, func() error {
		return f.getJSON(ctx, "/api/movies/"+url.PathEscape(id), &entry)
	})
	if err != nil {
		return models.CatalogEntry{}, fmt.Errorf("fetch movie %q: %w", id, err)
	}
	return entry, nil
}

func (f *Fetcher) withRetry(ctx context.Context, fn retry.RetryableFunc) error {
	return retry.Do(fn,
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
	)
}

func (f *Fetcher) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path, nil)
	if err != nil {
		return retry.Unrecoverable(err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		return json.NewDecoder(resp.Body).Decode(out)
	case resp.StatusCode == http.StatusNotFound:
		// Retrying cannot make a missing movie appear.
		return retry.Unrecoverable(fmt.Errorf("%s: %s", path, resp.Status))
	default:
		return fmt.Errorf("%s: unexpected status %s", path, resp.Status)
	}
}
