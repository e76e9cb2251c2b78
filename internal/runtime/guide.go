package runtime

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const workflowGuide = `Weather workflow using atomic tools.

These tools are deliberately small. Compose them instead of looking
for a single do-everything tool.

Typical current-weather workflow:
1. validate_location to check and standardize the location string.
2. get_cached_data with key "weather_<location>"; return the cached
   result when found.
3. parse_coordinates to resolve the location to latitude/longitude.
4. get_secret with secret_name "OWM-API-KEY".
5. build_api_url with the provider base URL, endpoint "weather", and
   params including lat, lon, and appid.
6. http_request with the built URL.
7. validate_api_response with required_fields such as
   ["main.temp", "weather", "name"].
8. extract_data_fields to pull the fields you need, for example
   {"temperature": "main.temp", "condition": "weather.0.description"}.
9. calculate_weather_metrics for heat index, wind chill, and comfort.
10. format_data with format_type "weather_current".
11. cache_data to store the result for subsequent calls.

For AI-driven insights, add generate_weather_prompt followed by
ai_completion. For forecast math across time steps, use
calculate_metrics with operations like average, max, and min.

Focus area: %s`

// addPrompts registers the workflow guide prompt that teaches
// clients how to compose the atomic tools.
func (b Builder) addPrompts(server *mcp.Server) {
	server.AddPrompt(&mcp.Prompt{
		Name:        "atomic_tools_workflow_guide",
		Description: "Guide for composing the atomic tools into weather workflows.",
		Arguments: []*mcp.PromptArgument{
			{Name: "focus", Description: "Workflow aspect to emphasize, such as caching or forecasts."},
		},
	}, func(_ context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		focus := "general usage"
		if req.Params != nil && req.Params.Arguments["focus"] != "" {
			focus = req.Params.Arguments["focus"]
		}
		return &mcp.GetPromptResult{
			Description: "Atomic tools workflow guide",
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: fmt.Sprintf(workflowGuide, focus)},
				},
			},
		}, nil
	})
}

const pathSyntaxDoc = `Dotted path syntax for extract_data_fields and
validate_api_response.

A path is a sequence of segments separated by ".". Each segment is
applied to the value produced by the previous one:

  - A segment made only of the digits 0-9 indexes a list. "weather.0"
    selects the first element of the "weather" list. Out-of-range
    indexes resolve to null.
  - Any other segment looks up a key in an object. Lookups on
    non-objects resolve to null.
  - Signed forms like "-1" or "+1" are treated as object keys, not
    indexes.

Because digit-only segments always index lists, object keys that are
themselves digit-only cannot be addressed.

Examples against {"main": {"temp": 15.5}, "weather": [{"description": "clear"}]}:

  main.temp              -> 15.5
  weather.0.description  -> "clear"
  weather.5.description  -> null
  main.pressure          -> null

extract_data_fields never fails: every requested output name is
present in the result, with null for paths that did not resolve.`

func (b Builder) addResources(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		Name:        "path-syntax",
		URI:         "weather-atomic://docs/path-syntax",
		Description: "Reference for the dotted path syntax used by the extraction tools.",
		MIMEType:    "text/plain",
	}, func(_ context.Context, _ *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{URI: "weather-atomic://docs/path-syntax", MIMEType: "text/plain", Text: pathSyntaxDoc},
			},
		}, nil
	})
}
