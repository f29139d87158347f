// Package httpx provides the generic JSON HTTP client the remote repository
// is built on: per-request timeout, exponential backoff retry, and structured
// errors carrying the HTTP status.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultAttempts = 3
	userAgent       = "Cinelog/1.0"
)

// Config holds client construction options. Zero values fall back to the
// package defaults.
type Config struct {
	BaseURL       string
	Timeout       time.Duration
	RetryAttempts int
	Headers       map[string]string
}

// Response is the structured result of a successful (2xx) request.
type Response struct {
	Status     int
	StatusText string
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return nil
	}
	return json.Unmarshal(r.Body, v)
}

// Error is returned for any non-2xx response. Body holds the parsed JSON
// body when the server sent JSON, otherwise the raw text.
type Error struct {
	Status     int
	StatusText string
	Body       any
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d %s", e.Status, e.StatusText)
}

// IsStatus reports whether err is an *Error with the given HTTP status.
func IsStatus(err error, status int) bool {
	var he *Error
	return errors.As(err, &he) && he.Status == status
}

// Client is a thin JSON client over net/http. Methods are safe for
// concurrent use.
type Client struct {
	baseURL  string
	timeout  time.Duration
	attempts int
	headers  map[string]string
	http     *http.Client
	logger   *slog.Logger

	// backoffBase scales the 2^attempt backoff; one second in production.
	backoffBase time.Duration
}

// NewClient creates a client for the given base URL.
func NewClient(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	attempts := cfg.RetryAttempts
	if attempts <= 0 {
		attempts = defaultAttempts
	}
	return &Client{
		baseURL:     cfg.BaseURL,
		timeout:     timeout,
		attempts:    attempts,
		headers:     cfg.Headers,
		http:        &http.Client{},
		logger:      logger,
		backoffBase: time.Second,
	}
}

func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *Client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.do(ctx, http.MethodDelete, path, nil)
}

// do executes the request, retrying with 2^attempt seconds of backoff on
// network failures and 5xx responses. Cancellations, per-attempt timeouts
// and 4xx responses are never retried.
func (c *Client) do(ctx context.Context, method, path string, body any) (*Response, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr error
	for attempt := 0; attempt < c.attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<attempt) * c.backoffBase
			c.logger.Debug("retrying request", "method", method, "path", path, "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		resp, err := c.attempt(ctx, method, path, payload)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if !retryable(err) {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) attempt(ctx context.Context, method, path string, payload []byte) (*Response, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(reqCtx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("request", "method", method, "url", c.baseURL+path)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "path", path, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newError(resp.StatusCode, respBody)
	}

	return &Response{
		Status:     resp.StatusCode,
		StatusText: http.StatusText(resp.StatusCode),
		Header:     resp.Header,
		Body:       respBody,
	}, nil
}

func newError(status int, body []byte) *Error {
	e := &Error{Status: status, StatusText: http.StatusText(status)}
	var parsed any
	if json.Unmarshal(body, &parsed) == nil {
		e.Body = parsed
	} else {
		e.Body = string(body)
	}
	return e
}

// retryable reports whether the failure is worth another attempt: network
// errors and server-side statuses only. An attempt aborted by its own
// timeout surfaces as a context deadline through the transport and is left
// alone on purpose.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var he *Error
	if errors.As(err, &he) {
		return he.Status >= 500
	}
	return true
}
