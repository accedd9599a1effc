package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/penamorrosmaaaa/dashtva-sub001/internal/model"
)

// maxSheetBytes bounds a single CSV download.
const maxSheetBytes = 64 << 20

// FetchError reports a failed sheet download or parse.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetcher downloads published sheets over plain HTTP GET.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a Fetcher whose requests time out after timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// NewFetcherWithClient is used by tests to inject a transport.
func NewFetcherWithClient(client *http.Client) *Fetcher {
	return &Fetcher{client: client}
}

// Fetch downloads and parses the CSV at url.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*model.Dataset, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	ds, err := Parse(io.LimitReader(resp.Body, maxSheetBytes))
	if err != nil {
		return nil, &FetchError{URL: url, Status: resp.StatusCode, Err: err}
	}
	ds.FetchedAt = time.Now().UTC()
	return ds, nil
}
