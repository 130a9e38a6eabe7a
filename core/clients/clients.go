package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	DefaultMaxRetries = 3

	initialBackoff = 1 * time.Second
	maxBackoff     = 30 * time.Second
)

// StatusError is a non-retryable upstream HTTP error.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}

func retryable(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests || statusCode >= http.StatusInternalServerError
}

// RetryingClient is the HTTP transport shared by the catalog adapters:
// exponential backoff on rate-limit and server errors, capped attempts,
// verbatim Authorization passthrough.
type RetryingClient struct {
	HTTPClient *http.Client
	MaxRetries int
	// Authorization is sent as-is when non-empty. The credential is supplied
	// by the caller and never interpreted here.
	Authorization string
	// Backoff overrides the initial retry backoff.
	Backoff time.Duration
}

func (c *RetryingClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *RetryingClient) maxRetries() int {
	if c.MaxRetries > 0 {
		return c.MaxRetries
	}
	return DefaultMaxRetries
}

// GetJSON performs a GET and decodes the JSON body into out. The response
// headers are returned so callers can read pagination links.
func (c *RetryingClient) GetJSON(ctx context.Context, url string, out any) (http.Header, error) {
	backoff := c.Backoff
	if backoff <= 0 {
		backoff = initialBackoff
	}
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries(); attempt++ {
		if attempt > 0 {
			log.Debug().Str("url", url).Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying upstream request")
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > maxBackoff {
				backoff = maxBackoff
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		if c.Authorization != "" {
			req.Header.Set("Authorization", c.Authorization)
		}

		resp, err := c.httpClient().Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = err
			continue
		}

		if resp.StatusCode == http.StatusOK {
			if err := json.Unmarshal(body, out); err != nil {
				return nil, fmt.Errorf("failed to decode response from %s: %w", url, err)
			}
			return resp.Header, nil
		}

		if !retryable(resp.StatusCode) {
			return nil, &StatusError{StatusCode: resp.StatusCode, URL: url}
		}
		lastErr = &StatusError{StatusCode: resp.StatusCode, URL: url}
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", c.maxRetries()+1, lastErr)
}
