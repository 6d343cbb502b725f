// Package fetch implements the Fetcher interface.
// Notes are read from the local filesystem, or fetched over HTTP when the
// location is an http(s) URL. Remote fetches retry transient failures.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/LaffeyOvO/notesnook/core"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultRetryMax  = 3
	defaultUserAgent = "notepipe/1.0"
)

var _ core.Fetcher = (*Fetcher)(nil)

// Fetcher loads note markup from a path or URL.
type Fetcher struct {
	client *retryablehttp.Client
}

// Option configures a Fetcher.
type Option func(*retryablehttp.Client)

// WithRetryMax sets how many times a failed remote fetch is retried.
func WithRetryMax(n int) Option {
	return func(c *retryablehttp.Client) {
		c.RetryMax = n
	}
}

// WithRetryWait bounds the backoff between retries.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(c *retryablehttp.Client) {
		c.RetryWaitMin = minWait
		c.RetryWaitMax = maxWait
	}
}

// WithLogger sets the logger for retry attempts.
func WithLogger(l *slog.Logger) Option {
	return func(c *retryablehttp.Client) {
		if l != nil {
			c.Logger = l
		}
	}
}

// New creates a Fetcher with a sensible timeout and retry policy.
func New(opts ...Option) *Fetcher {
	cl := retryablehttp.NewClient()
	cl.RetryMax = defaultRetryMax
	cl.HTTPClient.Timeout = defaultTimeout
	cl.Logger = slog.Default()
	for _, opt := range opts {
		opt(cl)
	}
	return &Fetcher{client: cl}
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Fetch retrieves the markup stored at location.
func (f *Fetcher) Fetch(ctx context.Context, location string) (*core.FetchResult, error) {
	if !IsRemote(location) {
		data, err := os.ReadFile(location)
		if err != nil {
			return nil, fmt.Errorf("reading note %s: %w", location, err)
		}
		return &core.FetchResult{Location: location, HTML: string(data)}, nil
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, location)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	return &core.FetchResult{
		Location:   location,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
