package audio

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPLoader fetches sound assets over HTTP. Question audio URIs are
// site-relative paths, resolved against BaseURL.
type HTTPLoader struct {
	BaseURL string
	Client  *http.Client

	// MaxBytes bounds the fetched asset size; zero means the default 8 MiB.
	MaxBytes int64
}

const defaultMaxAssetBytes = 8 << 20

// NewHTTPLoader builds a loader with a sensibly bounded client.
func NewHTTPLoader(baseURL string) *HTTPLoader {
	return &HTTPLoader{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *HTTPLoader) Load(ctx context.Context, uri string) ([]byte, error) {
	url := uri
	if strings.HasPrefix(uri, "/") {
		url = strings.TrimSuffix(l.BaseURL, "/") + uri
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build asset request: %w", err)
	}

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch asset %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch asset %s: unexpected status %d", url, resp.StatusCode)
	}

	limit := l.MaxBytes
	if limit <= 0 {
		limit = defaultMaxAssetBytes
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read asset %s: %w", url, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("fetch asset %s: empty body", url)
	}
	return data, nil
}
