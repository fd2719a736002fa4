package mimetype

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	detailsURL  = "https://file-extension.p.rapidapi.com/details"
	detailsHost = "file-extension.p.rapidapi.com"
)

// Client resolves extension classifications through a remote catalogue
// and memoizes every answer for the lifetime of the process. The cache
// is unbounded and never evicted.
type Client struct {
	http   *http.Client
	url    string
	apiKey string
	logger *slog.Logger

	mu    sync.RWMutex
	cache map[string]json.RawMessage

	// fill serializes cache misses so concurrent identical misses
	// collapse into one outbound call.
	fill sync.Mutex
}

func NewClient(apiKey string) *Client {
	return &Client{
		http:   &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
		url:    detailsURL,
		apiKey: apiKey,
		logger: slog.Default(),
		cache:  make(map[string]json.RawMessage),
	}
}

// TypeByExt returns the classification document for the extension,
// after at most one outbound round trip per extension process-wide.
func (c *Client) TypeByExt(ctx context.Context, ext string) (json.RawMessage, error) {
	c.mu.RLock()
	value, found := c.cache[ext]
	c.mu.RUnlock()
	if found {
		return value, nil
	}

	c.fill.Lock()
	defer c.fill.Unlock()

	// Another miss may have filled the entry while waiting on the gate.
	c.mu.RLock()
	value, found = c.cache[ext]
	c.mu.RUnlock()
	if found {
		return value, nil
	}

	value, err := c.lookup(ctx, ext)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[ext] = value
	c.mu.Unlock()

	return value, nil
}

// MimeByExt extracts the mime field of the remote classification,
// short-circuiting through the local table and falling back to it when
// the catalogue is unreachable or silent.
func (c *Client) MimeByExt(ctx context.Context, ext string) string {
	if value, found := lookup(ext); found {
		return value
	}

	document, err := c.TypeByExt(ctx, ext)
	if err != nil {
		c.logger.Warn("remote classification failed", "extension", ext, "error", err)
		return ByExt(ext)
	}

	var payload struct {
		Mime string `json:"mime"`
	}
	if err := json.Unmarshal(document, &payload); err != nil || payload.Mime == "" {
		return ByExt(ext)
	}

	return payload.Mime
}

func (c *Client) lookup(ctx context.Context, ext string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, err
	}

	query := req.URL.Query()
	query.Set("extension", ext)
	req.URL.RawQuery = query.Encode()

	req.Header.Set("x-rapidapi-host", detailsHost)
	req.Header.Set("x-rapidapi-key", c.apiKey)

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mimetype: lookup %q: %w", ext, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("mimetype: lookup %q: unexpected status %d", ext, res.StatusCode)
	}

	var value json.RawMessage
	if err := json.NewDecoder(res.Body).Decode(&value); err != nil {
		return nil, fmt.Errorf("mimetype: decode %q: %w", ext, err)
	}

	return value, nil
}
