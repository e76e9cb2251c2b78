package processing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/pgkeogh/weather-mcp-atomic/internal/extract"
	"github.com/pgkeogh/weather-mcp-atomic/internal/httpapi"
	"github.com/pgkeogh/weather-mcp-atomic/internal/secrets"
)

// CompletionClient sends chat-completion prompts to an OpenAI-style
// endpoint, fetching and memoizing the API key through the secret
// service.
type CompletionClient struct {
	// HTTP performs the outbound request.
	HTTP *httpapi.Client
	// Secrets supplies the API key.
	Secrets *secrets.Service
	// Endpoint is the chat-completions URL.
	Endpoint string
	// KeySecret names the allowlisted secret holding the API key.
	KeySecret string
	// DefaultModel applies when a call names no model.
	DefaultModel string
	// Timeout bounds the completion request.
	Timeout time.Duration
	// Logger records completion requests.
	Logger *slog.Logger

	mu  sync.Mutex
	key string
}

// Complete generates a completion for prompt and returns the text.
func (c *CompletionClient) Complete(ctx context.Context, prompt, model string, maxTokens int, temperature float64) (string, error) {
	key, err := c.apiKey(ctx)
	if err != nil {
		return "", fmt.Errorf("ai service unavailable: %w", err)
	}

	if model == "" {
		model = c.DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 1000
	}

	payload := map[string]any{
		"model": model,
		"messages": []any{
			map[string]any{"role": "user", "content": prompt},
		},
		"max_tokens":  maxTokens,
		"temperature": temperature,
	}
	headers := map[string]string{
		"Authorization": "Bearer " + key,
	}

	if c.Logger != nil {
		c.Logger.Info("completion request", "model", model, "max_tokens", maxTokens)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	resp, err := c.HTTP.Request(ctx, c.Endpoint, "POST", payload, headers, timeout)
	if err != nil {
		return "", fmt.Errorf("ai service unavailable: %w", err)
	}

	raw, err := extract.Resolve(resp.Data, "choices.0.message.content")
	if err != nil {
		return "", fmt.Errorf("unexpected completion response: %w", err)
	}
	text, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("unexpected completion response: content is %T", raw)
	}
	return strings.TrimSpace(text), nil
}

func (c *CompletionClient) apiKey(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.key != "" {
		return c.key, nil
	}
	key, err := c.Secrets.Get(ctx, c.KeySecret)
	if err != nil {
		return "", err
	}
	c.key = key
	return key, nil
}
