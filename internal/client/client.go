// Package client is a typed HTTP client for the postboard API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Config configures the client
type Config struct {
	// BaseURL of the API, e.g. http://localhost:3000
	BaseURL string
	// Timeout bounds a single attempt
	Timeout time.Duration
	// MaxRetries is the number of extra attempts for idempotent requests
	MaxRetries int
	// RetryBackoff is the base delay, doubled on every attempt
	RetryBackoff time.Duration
	// MaxRetryAfter caps how long a 429 Retry-After is honored
	MaxRetryAfter time.Duration
	// HTTPClient overrides the transport, mainly for tests
	HTTPClient *http.Client
	// UserAgent is sent with every request
	UserAgent string
}

// DefaultConfig returns the default client configuration
func DefaultConfig() Config {
	return Config{
		BaseURL:       "http://localhost:3000",
		Timeout:       10 * time.Second,
		MaxRetries:    3,
		RetryBackoff:  500 * time.Millisecond,
		MaxRetryAfter: 10 * time.Second,
		UserAgent:     "postctl",
	}
}

// APIError is a non-2xx answer from the API, or a transport failure with Status 0
type APIError struct {
	Status     int
	StatusText string
	Message    string
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status == 0 {
		return "network error: " + e.Message
	}
	return fmt.Sprintf("api error (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a 404 from the API
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to the postboard HTTP API
type Client struct {
	config     Config
	httpClient *http.Client
	sleep      func(ctx context.Context, d time.Duration) error
}

// New creates a client. Zero fields in cfg take their defaults.
func New(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = def.RetryBackoff
	}
	if cfg.MaxRetryAfter <= 0 {
		cfg.MaxRetryAfter = def.MaxRetryAfter
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Client{
		config:     cfg,
		httpClient: httpClient,
		sleep:      sleepContext,
	}
}

// do sends a request and decodes a JSON answer into out when out is non-nil.
// GET, PUT, PATCH and DELETE are retried on transport errors, 5xx and 429.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	attempts := 1
	if method != http.MethodPost {
		attempts += c.config.MaxRetries
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoff(attempt, lastErr)); err != nil {
				return err
			}
		}

		retry, err := c.attempt(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			return plain(err)
		}
	}

	return plain(lastErr)
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out any) (retry bool, err error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, c.config.BaseURL+path, reader)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.config.UserAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, &APIError{StatusText: "Network Error", Message: fmt.Sprintf("%s %s: %v", method, path, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return false, nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("failed to decode response: %w", err)
		}
		return false, nil
	}

	apiErr := &APIError{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Message:    fmt.Sprintf("%s %s failed", method, path),
	}

	var errBody struct {
		Message string `json:"message"`
	}
	if json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&errBody) == nil && errBody.Message != "" {
		apiErr.Message = errBody.Message
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return true, &retryAfterError{APIError: apiErr, after: parseRetryAfter(resp.Header.Get("Retry-After"))}
	}

	return resp.StatusCode >= 500, apiErr
}

// backoff returns the delay before attempt, honoring a 429 Retry-After
func (c *Client) backoff(attempt int, lastErr error) time.Duration {
	var ra *retryAfterError
	if errors.As(lastErr, &ra) && ra.after > 0 {
		return min(ra.after, c.config.MaxRetryAfter)
	}
	return time.Duration(1<<(attempt-1)) * c.config.RetryBackoff
}

type retryAfterError struct {
	*APIError
	after time.Duration
}

func (e *retryAfterError) Unwrap() error { return e.APIError }

// plain strips retry bookkeeping so callers see a bare *APIError
func plain(err error) error {
	if ra, ok := err.(*retryAfterError); ok {
		return ra.APIError
	}
	return err
}

func parseRetryAfter(h string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
