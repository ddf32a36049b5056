package loader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultHTTPTimeout bounds a fetch when no client is configured.
const DefaultHTTPTimeout = 30 * time.Second

// httpLoaderBackend fetches images over HTTP(S).
type httpLoaderBackend struct {
	client *http.Client
}

var _ loaderBackend = &httpLoaderBackend{}

func newHTTPLoaderBackend(client *http.Client) *httpLoaderBackend {
	if client == nil {
		client = &http.Client{Timeout: DefaultHTTPTimeout}
	}
	return &httpLoaderBackend{client: client}
}

func (b *httpLoaderBackend) Open(ctx context.Context, location string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", location, err)
	}
	resp, err := b.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", location, resp.Status)
	}
	return resp.Body, nil
}
