package registry

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	sm "github.com/semprofile/mapper"
	"github.com/semprofile/mapper/document"
)

const (
	// DefaultTimeout for description fetches.
	DefaultTimeout = 30 * time.Second

	// maxDescriptionSize caps a fetched description at 16MB.
	maxDescriptionSize = 16 * 1024 * 1024
)

// Client fetches API descriptions over HTTP. With a cache directory
// configured, fetched descriptions are written to disk and reused on
// later calls, so a host can work offline once primed.
type Client struct {
	httpClient *http.Client
	userAgent  string
	cacheDir   string
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithClientTimeout sets the HTTP timeout.
func WithClientTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithUserAgent sets the User-Agent header on fetches.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCacheDir enables the on-disk description cache.
func WithCacheDir(dir string) ClientOption {
	return func(c *Client) {
		c.cacheDir = dir
	}
}

// NewClient creates a description client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		userAgent: "semprofile-mapper/" + sm.Version,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Description fetches and parses the description at url. A 404 from the
// server maps to sm.ErrNotFound so chains can fall through.
func (c *Client) Description(ctx context.Context, url string) (*document.Document, error) {
	if data, ok := c.readCached(url); ok {
		if doc, err := document.Load(data); err == nil {
			return doc, nil
		}
		// A corrupt cache entry falls through to a refetch.
	}

	data, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	doc, err := document.Load(data)
	if err != nil {
		return nil, fmt.Errorf("description at %s: %w", url, err)
	}

	c.writeCached(url, data)
	return doc, nil
}

// fetch downloads the raw description bytes.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	req.Header.Set("Accept", "application/json, application/yaml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch description: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("description %s: %w", url, sm.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("description %s: status %d", url, resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDescriptionSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read description: %w", err)
	}
	return data, nil
}

// cachePath returns the on-disk location for a URL, or "" when the disk
// cache is disabled.
func (c *Client) cachePath(url string) string {
	if c.cacheDir == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(url))
	return filepath.Join(c.cacheDir, hex.EncodeToString(sum[:16])+".desc")
}

func (c *Client) readCached(url string) ([]byte, bool) {
	path := c.cachePath(url)
	if path == "" {
		return nil, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}
	return data, true
}

// writeCached stores a fetched description. Cache write failures are
// ignored; the description was already obtained.
func (c *Client) writeCached(url string, data []byte) {
	path := c.cachePath(url)
	if path == "" {
		return
	}
	if err := os.MkdirAll(c.cacheDir, 0o755); err != nil {
		return
	}
	_ = os.WriteFile(path, data, 0o644)
}

// ClearCache removes all cached descriptions.
func (c *Client) ClearCache() error {
	if c.cacheDir == "" {
		return nil
	}
	return os.RemoveAll(c.cacheDir)
}

// CacheDir returns the cache directory path.
func (c *Client) CacheDir() string {
	return c.cacheDir
}
