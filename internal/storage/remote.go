package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rewired-gh/launchdash/internal/logger"
	"github.com/rewired-gh/launchdash/internal/models"
)

// maxRemoteBytes caps the downloaded dataset size
const maxRemoteBytes = 64 << 20

// Fetcher downloads a remote dataset over HTTP with retries
type Fetcher struct {
	httpClient     *http.Client
	maxRetries     int
	retryDelayBase time.Duration
}

// NewFetcher creates a new Fetcher
func NewFetcher(timeout time.Duration, maxRetries int, retryDelayBase time.Duration) *Fetcher {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase < 0 {
		retryDelayBase = time.Second
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}
}

// Fetch returns the response body of a GET to url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := f.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch dataset: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset body: %w", err)
	}
	return body, nil
}

// doRequest performs HTTP request with retry logic.
// Transport errors and 5xx responses are retried with linear backoff; other
// non-2xx responses fail immediately.
func (f *Fetcher) doRequest(ctx context.Context, url string) (*http.Response, error) {
	var lastErr error

	for i := 0; i < f.maxRetries; i++ {
		if i > 0 {
			delay := f.retryDelayBase * time.Duration(i)
			logger.Debug("Retrying dataset fetch in %v (attempt %d/%d): %v", delay, i+1, f.maxRetries, lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "text/csv, text/plain, */*")

		resp, err := f.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			resp.Body.Close()
			return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
		}

		return resp, nil
	}

	return nil, fmt.Errorf("max retries exceeded: %w", lastErr)
}

func loadRemote(ctx context.Context, src Source) ([]models.LaunchRecord, error) {
	fetcher := NewFetcher(src.Timeout, src.MaxRetries, src.RetryDelayBase)

	body, err := fetcher.Fetch(ctx, src.Path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Fetched %d bytes of dataset from %s", len(body), src.Path)

	return parseDelimited(bytes.NewReader(body), src.Delimiter)
}
