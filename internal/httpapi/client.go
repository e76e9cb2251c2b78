// Package httpapi implements the outbound HTTP tool: allowlisted,
// rate limited, with bounded retries on transient failures.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// ErrHostNotAllowed marks a request to a host outside the allowlist.
var ErrHostNotAllowed = errors.New("host not allowed")

// Statuses worth retrying; everything else fails immediately.
var retryStatuses = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// Client issues HTTP requests on behalf of tool calls.
type Client struct {
	// Allowed reports whether a hostname may be contacted.
	Allowed func(host string) bool
	// Limiter throttles outbound requests when set.
	Limiter *rate.Limiter
	// MaxRetries limits retry attempts after the first request.
	MaxRetries int
	// Backoff is the base delay between attempts; attempt n waits
	// n times this long.
	Backoff time.Duration
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64
	// DefaultTimeout applies when the caller supplies none.
	DefaultTimeout time.Duration
	// Logger records request outcomes.
	Logger *slog.Logger

	// Transport overrides the HTTP transport in tests.
	Transport http.RoundTripper
}

// Response is the wire-shaped result handed back to the agent.
type Response struct {
	// Status is the HTTP status code.
	Status int `json:"status"`
	// Data is the decoded JSON body, or {"text": ...} for non-JSON.
	Data any `json:"data"`
	// Headers carries the first value of each response header.
	Headers map[string]string `json:"headers"`
}

// Request performs an HTTP request. For GET and HEAD, params become
// query parameters; for other methods they are sent as a JSON body.
// Responses with status >= 400 after retries are errors.
func (c *Client) Request(ctx context.Context, rawURL, method string, params map[string]any, headers map[string]string, timeout time.Duration) (*Response, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if c.Allowed != nil && !c.Allowed(parsed.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrHostNotAllowed, parsed.Hostname())
	}

	method = strings.ToUpper(strings.TrimSpace(method))
	if method == "" {
		method = http.MethodGet
	}

	var body []byte
	requestURL := rawURL
	if method == http.MethodGet || method == http.MethodHead {
		if len(params) > 0 {
			query := parsed.Query()
			for key, value := range params {
				if value == nil {
					continue
				}
				query.Set(key, fmt.Sprint(value))
			}
			parsed.RawQuery = query.Encode()
			requestURL = parsed.String()
		}
	} else if params != nil {
		body, err = json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	if timeout <= 0 {
		timeout = c.DefaultTimeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var lastErr error
	attempts := c.MaxRetries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			if c.Logger != nil {
				c.Logger.Warn("retrying request", "url", rawURL, "attempt", attempt, "error", lastErr)
			}
			select {
			case <-time.After(c.Backoff * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
			}
		}

		resp, err := c.attempt(ctx, method, requestURL, body, headers)
		if err != nil {
			lastErr = err
			continue
		}
		if retryStatuses[resp.Status] && attempt < attempts-1 {
			lastErr = fmt.Errorf("status %d", resp.Status)
			continue
		}
		if resp.Status >= 400 {
			return nil, fmt.Errorf("http request failed: status %d", resp.Status)
		}
		if c.Logger != nil {
			c.Logger.Info("http request done", "method", method, "url", rawURL, "status", resp.Status)
		}
		return resp, nil
	}
	return nil, fmt.Errorf("network request failed: %w", lastErr)
}

func (c *Client) attempt(ctx context.Context, method, requestURL string, body []byte, headers map[string]string) (*Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Transport: c.Transport}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	limit := c.MaxBodyBytes
	if limit <= 0 {
		limit = 1 << 20
	}
	raw, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var data any
	if err := json.Unmarshal(raw, &data); err != nil {
		data = map[string]any{"text": string(raw)}
	}

	flat := make(map[string]string, len(resp.Header))
	for key := range resp.Header {
		flat[key] = resp.Header.Get(key)
	}

	return &Response{Status: resp.StatusCode, Data: data, Headers: flat}, nil
}
