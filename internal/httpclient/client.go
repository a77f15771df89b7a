// Package httpclient performs cached JSON GET requests against the public REST APIs.
package httpclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/julianstephens/noor/internal/cache"
	"github.com/julianstephens/noor/internal/constants"
	"github.com/julianstephens/noor/internal/logger"
)

// maxBodyBytes bounds a single response; a full surah with translation is well under this.
const maxBodyBytes = 8 << 20

// StatusError is returned for non-200 HTTP responses.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.StatusCode)
}

type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
	// limiter paces network requests; cache hits are not counted
	limiter *rate.Limiter
}

// New creates a client for baseURL. A nil cache disables caching.
func New(baseURL string, timeout time.Duration, c cache.Cache) *Client {
	if c == nil {
		c = cache.Nop{}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		cache:   c,
		limiter: rate.NewLimiter(rate.Limit(constants.APIRequestsPerSecond), constants.APIRequestBurst),
	}
}

func (c *Client) URL(path string) string {
	return c.baseURL + "/" + strings.TrimLeft(path, "/")
}

// GetJSON fetches path and decodes it into out. Successful bodies are cached for ttl;
// a zero ttl bypasses the cache. There are no retries.
func (c *Client) GetJSON(ctx context.Context, path string, ttl time.Duration, out any) error {
	return c.getJSON(ctx, path, ttl, true, out)
}

// RefreshJSON is GetJSON without the cache lookup: it always hits the network and replaces the cached body.
func (c *Client) RefreshJSON(ctx context.Context, path string, ttl time.Duration, out any) error {
	return c.getJSON(ctx, path, ttl, false, out)
}

func (c *Client) getJSON(ctx context.Context, path string, ttl time.Duration, useCached bool, out any) error {
	url := c.URL(path)

	if ttl > 0 && useCached {
		if body, ok := c.cache.Get(ctx, url); ok {
			if err := json.Unmarshal(body, out); err == nil {
				logger.Debug("Cache hit", "url", url)
				return nil
			}
			logger.Warn("Ignoring undecodable cached response", "url", url)
		}
	}

	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("GET %s: failed to decode response: %w", url, err)
	}
	if ttl > 0 {
		c.cache.Set(ctx, url, body, ttl)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer resp.Body.Close()

	logger.Debug("HTTP request", "url", url, "status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("GET %s: failed to read body: %w", url, err)
	}
	return body, nil
}
