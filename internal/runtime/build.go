// Package runtime assembles the MCP server: it wires every atomic
// tool to its backing component and wraps each call with logging,
// redaction, and audit events.
package runtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pgkeogh/weather-mcp-atomic/internal/audit"
	"github.com/pgkeogh/weather-mcp-atomic/internal/cache"
	"github.com/pgkeogh/weather-mcp-atomic/internal/extract"
	"github.com/pgkeogh/weather-mcp-atomic/internal/httpapi"
	"github.com/pgkeogh/weather-mcp-atomic/internal/policy"
	"github.com/pgkeogh/weather-mcp-atomic/internal/processing"
	"github.com/pgkeogh/weather-mcp-atomic/internal/secrets"
	"github.com/pgkeogh/weather-mcp-atomic/internal/security"
	"github.com/pgkeogh/weather-mcp-atomic/internal/timeutil"
)

// ServerName identifies this MCP server to clients.
const ServerName = "weather-atomic-server"

// ServerVersion is reported in the MCP handshake.
const ServerVersion = "1.0.0"

// Builder constructs the MCP server from its components.
type Builder struct {
	// Logger is used for structured logging.
	Logger *slog.Logger
	// Audit records tool events.
	Audit audit.Logger
	// Policy supplies allowlists and tuning.
	Policy *policy.Policy
	// Cache is the shared TTL store behind the cache tools.
	Cache *cache.Store
	// Secrets retrieves allowlisted secrets.
	Secrets *secrets.Service
	// HTTP performs outbound requests for the http tools.
	HTTP *httpapi.Client
	// Completion generates AI completions.
	Completion *processing.CompletionClient
	// Extract resolves dotted field paths.
	Extract extract.Extractor
}

// Build creates the MCP server with all tools, the workflow guide
// prompt, and the path syntax resource registered.
func (b Builder) Build() (*mcp.Server, error) {
	if b.Cache == nil {
		return nil, fmt.Errorf("cache store is required")
	}
	if b.Policy == nil {
		return nil, fmt.Errorf("policy is required")
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, nil)

	b.addInfrastructureTools(server)
	b.addHTTPTools(server)
	b.addProcessingTools(server)
	b.addWeatherTools(server)
	b.addPrompts(server)
	b.addResources(server)

	return server, nil
}

// register wraps a tool handler with correlation IDs, redacted
// argument logging, and audit events.
func register[In, Out any](b Builder, server *mcp.Server, tool *mcp.Tool, fn func(context.Context, In) (Out, error)) {
	mcp.AddTool(server, tool, func(ctx context.Context, _ *mcp.CallToolRequest, input In) (*mcp.CallToolResult, Out, error) {
		var zero Out
		corr := newCorrelationID()

		if b.Logger != nil {
			b.Logger.Info("tool call",
				"tool", tool.Name,
				"correlation_id", corr,
				"args", security.RedactArguments(argsMap(input)),
			)
		}
		if b.Audit != nil {
			b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolCall, Tool: tool.Name, CorrelationID: corr})
		}

		out, err := fn(ctx, input)
		if err != nil {
			if b.Logger != nil {
				b.Logger.Error("tool failed", "tool", tool.Name, "correlation_id", corr, "error", err)
			}
			if b.Audit != nil {
				b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolError, Tool: tool.Name, CorrelationID: corr, Detail: err.Error()})
			}
			return nil, zero, err
		}

		if b.Audit != nil {
			b.Audit.Record(ctx, audit.Event{Type: audit.TypeToolOK, Tool: tool.Name, CorrelationID: corr})
		}
		return nil, out, nil
	})
}

// argsMap flattens a typed input into a map for redacted logging.
func argsMap(input any) map[string]any {
	data, err := json.Marshal(input)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	return out
}

func newCorrelationID() string {
	return fmt.Sprintf("corr-%d", time.Now().UTC().UnixNano())
}

func (b Builder) defaultCacheTTL() time.Duration {
	return timeutil.ParseDurationOrDefault(b.Policy.Cache.DefaultTTL, 5*time.Minute)
}

func (b Builder) defaultHTTPTimeout() time.Duration {
	return timeutil.ParseDurationOrDefault(b.Policy.HTTP.DefaultTimeout, 30*time.Second)
}

func boolPtr(v bool) *bool { return &v }

func readOnly(title string) *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		Title:          title,
	}
}
