package runtime

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pgkeogh/weather-mcp-atomic/internal/httpapi"
	"github.com/pgkeogh/weather-mcp-atomic/internal/processing"
	"github.com/pgkeogh/weather-mcp-atomic/internal/timeutil"
	"github.com/pgkeogh/weather-mcp-atomic/internal/weather"
)

// Infrastructure tools: secrets and the shared cache.

type getSecretInput struct {
	// SecretName is the allowlisted secret to retrieve.
	SecretName string `json:"secret_name"`
	// VaultName optionally selects a vault; the default backend
	// ignores it.
	VaultName string `json:"vault_name,omitempty"`
}

type getSecretOutput struct {
	Value string `json:"value"`
}

type cacheDataInput struct {
	Key string `json:"key"`
	// Data must be JSON-serializable.
	Data map[string]any `json:"data"`
	// TTLSeconds defaults to the policy's cache TTL. Zero and
	// negative values produce an entry that is already expired.
	TTLSeconds *int `json:"ttl_seconds,omitempty"`
}

type cacheDataOutput struct {
	Cached bool `json:"cached"`
}

type getCachedDataInput struct {
	Key string `json:"key"`
}

type getCachedDataOutput struct {
	Data  any  `json:"data"`
	Found bool `json:"found"`
}

type clearCacheInput struct {
	// Pattern removes keys containing it as a substring; empty
	// clears everything.
	Pattern string `json:"pattern,omitempty"`
}

type clearCacheOutput struct {
	Cleared int `json:"cleared"`
}

func (b Builder) addInfrastructureTools(server *mcp.Server) {
	register(b, server, &mcp.Tool{
		Name:        "get_secret",
		Description: "Retrieve an allowlisted secret from the vault.",
		Annotations: readOnly("Get secret"),
	}, func(ctx context.Context, in getSecretInput) (getSecretOutput, error) {
		value, err := b.Secrets.Get(ctx, in.SecretName)
		if err != nil {
			return getSecretOutput{}, err
		}
		return getSecretOutput{Value: value}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "cache_data",
		Description: "Cache data with expiration for performance optimization.",
		Annotations: &mcp.ToolAnnotations{Title: "Cache data", IdempotentHint: true},
	}, func(_ context.Context, in cacheDataInput) (cacheDataOutput, error) {
		ttl := b.defaultCacheTTL()
		if in.TTLSeconds != nil {
			ttl = timeutil.Seconds(*in.TTLSeconds)
		}
		return cacheDataOutput{Cached: b.Cache.Put(in.Key, in.Data, ttl)}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "get_cached_data",
		Description: "Retrieve cached data if available and not expired.",
		Annotations: readOnly("Get cached data"),
	}, func(_ context.Context, in getCachedDataInput) (getCachedDataOutput, error) {
		value, ok := b.Cache.Get(in.Key)
		return getCachedDataOutput{Data: value, Found: ok}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Clear cache entries, optionally by key substring.",
		Annotations: &mcp.ToolAnnotations{Title: "Clear cache", DestructiveHint: boolPtr(true)},
	}, func(_ context.Context, in clearCacheInput) (clearCacheOutput, error) {
		return clearCacheOutput{Cleared: b.Cache.Clear(in.Pattern)}, nil
	})
}

// HTTP and API tools.

type httpRequestInput struct {
	URL    string `json:"url"`
	Method string `json:"method,omitempty"`
	// Params become query parameters for GET and a JSON body
	// otherwise.
	Params  map[string]any    `json:"params,omitempty"`
	Headers map[string]string `json:"headers,omitempty"`
	// TimeoutSeconds defaults to the policy's HTTP timeout.
	TimeoutSeconds *int `json:"timeout_seconds,omitempty"`
}

type buildAPIURLInput struct {
	BaseURL  string         `json:"base_url"`
	Endpoint string         `json:"endpoint"`
	Params   map[string]any `json:"params,omitempty"`
}

type buildAPIURLOutput struct {
	URL string `json:"url"`
}

type validateAPIResponseInput struct {
	ResponseData   map[string]any `json:"response_data"`
	RequiredFields []string       `json:"required_fields"`
	ResponseType   string         `json:"response_type,omitempty"`
}

func (b Builder) addHTTPTools(server *mcp.Server) {
	register(b, server, &mcp.Tool{
		Name:        "http_request",
		Description: "Make an HTTP request to an allowlisted host, with retries on transient failures.",
		Annotations: &mcp.ToolAnnotations{Title: "HTTP request", OpenWorldHint: boolPtr(true)},
	}, func(ctx context.Context, in httpRequestInput) (httpapi.Response, error) {
		timeout := b.defaultHTTPTimeout()
		if in.TimeoutSeconds != nil {
			timeout = timeutil.Seconds(*in.TimeoutSeconds)
		}
		resp, err := b.HTTP.Request(ctx, in.URL, in.Method, in.Params, in.Headers, timeout)
		if err != nil {
			return httpapi.Response{}, err
		}
		return *resp, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "build_api_url",
		Description: "Build a properly formatted API URL with encoded parameters.",
		Annotations: readOnly("Build API URL"),
	}, func(_ context.Context, in buildAPIURLInput) (buildAPIURLOutput, error) {
		full, err := httpapi.BuildURL(in.BaseURL, in.Endpoint, in.Params)
		if err != nil {
			return buildAPIURLOutput{}, err
		}
		return buildAPIURLOutput{URL: full}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "validate_api_response",
		Description: "Validate API response structure and required fields.",
		Annotations: readOnly("Validate API response"),
	}, func(_ context.Context, in validateAPIResponseInput) (httpapi.Validation, error) {
		return httpapi.ValidateResponse(in.ResponseData, in.RequiredFields, in.ResponseType), nil
	})
}

// Processing tools: completion, formatting, extraction, metrics.

type aiCompletionInput struct {
	Prompt      string  `json:"prompt"`
	Model       string  `json:"model,omitempty"`
	MaxTokens   int     `json:"max_tokens,omitempty"`
	Temperature float64 `json:"temperature,omitempty"`
}

type aiCompletionOutput struct {
	Text string `json:"text"`
}

type formatDataInput struct {
	Data any `json:"data"`
	// FormatType is one of json, table, summary, detailed,
	// weather_current, weather_forecast.
	FormatType string `json:"format_type"`
	Template   string `json:"template,omitempty"`
}

type formatDataOutput struct {
	Text string `json:"text"`
}

type extractDataFieldsInput struct {
	SourceData map[string]any `json:"source_data"`
	// FieldMapping maps output names to dotted source paths, for
	// example {"temp": "main.temp", "condition": "weather.0.description"}.
	// Digit-only segments always index sequences, so digit-only map
	// keys cannot be addressed.
	FieldMapping map[string]string `json:"field_mapping"`
}

type calculateMetricsInput struct {
	InputData    map[string]any           `json:"input_data"`
	Calculations []processing.Calculation `json:"calculations"`
}

func (b Builder) addProcessingTools(server *mcp.Server) {
	register(b, server, &mcp.Tool{
		Name:        "ai_completion",
		Description: "Generate an AI completion for a prompt.",
		Annotations: &mcp.ToolAnnotations{Title: "AI completion", OpenWorldHint: boolPtr(true)},
	}, func(ctx context.Context, in aiCompletionInput) (aiCompletionOutput, error) {
		temperature := in.Temperature
		if temperature == 0 {
			temperature = 0.7
		}
		text, err := b.Completion.Complete(ctx, in.Prompt, in.Model, in.MaxTokens, temperature)
		if err != nil {
			return aiCompletionOutput{}, err
		}
		return aiCompletionOutput{Text: text}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "format_data",
		Description: "Format data as human-readable text using a named formatter or custom template.",
		Annotations: readOnly("Format data"),
	}, func(_ context.Context, in formatDataInput) (formatDataOutput, error) {
		return formatDataOutput{Text: processing.FormatData(in.Data, in.FormatType, in.Template)}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "extract_data_fields",
		Description: "Extract and rename fields from nested data via dotted paths; unresolved paths yield null.",
		Annotations: readOnly("Extract data fields"),
	}, func(_ context.Context, in extractDataFieldsInput) (map[string]any, error) {
		return b.Extract.Fields(in.SourceData, in.FieldMapping), nil
	})

	register(b, server, &mcp.Tool{
		Name:        "calculate_metrics",
		Description: "Perform named calculations (subtract, add, average, max, min) over input fields.",
		Annotations: readOnly("Calculate metrics"),
	}, func(_ context.Context, in calculateMetricsInput) (map[string]any, error) {
		return processing.CalculateMetrics(in.InputData, in.Calculations, b.Logger), nil
	})
}

// Weather domain tools.

type parseCoordinatesInput struct {
	Location string `json:"location"`
}

type weatherMetricsInput struct {
	Temperature   float64 `json:"temperature"`
	Humidity      int     `json:"humidity"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection *int    `json:"wind_direction,omitempty"`
}

type weatherPromptInput struct {
	CurrentWeather map[string]any `json:"current_weather"`
	ForecastData   []any          `json:"forecast_data,omitempty"`
	// InsightType is one of general, clothing, activities, travel,
	// health.
	InsightType string `json:"insight_type,omitempty"`
}

type weatherPromptOutput struct {
	Prompt string `json:"prompt"`
}

type validateLocationInput struct {
	Location string `json:"location"`
}

func (b Builder) addWeatherTools(server *mcp.Server) {
	register(b, server, &mcp.Tool{
		Name:        "parse_coordinates",
		Description: "Convert a location string to geographic coordinates.",
		Annotations: readOnly("Parse coordinates"),
	}, func(_ context.Context, in parseCoordinatesInput) (weather.Coordinates, error) {
		return weather.ParseCoordinates(in.Location)
	})

	register(b, server, &mcp.Tool{
		Name:        "calculate_weather_metrics",
		Description: "Calculate derived weather metrics: heat index, wind chill, comfort level, wind direction.",
		Annotations: readOnly("Calculate weather metrics"),
	}, func(_ context.Context, in weatherMetricsInput) (weather.Metrics, error) {
		return weather.CalculateMetrics(in.Temperature, in.Humidity, in.WindSpeed, in.WindDirection), nil
	})

	register(b, server, &mcp.Tool{
		Name:        "generate_weather_prompt",
		Description: "Generate a specialized prompt for weather AI analysis.",
		Annotations: readOnly("Generate weather prompt"),
	}, func(_ context.Context, in weatherPromptInput) (weatherPromptOutput, error) {
		insight := in.InsightType
		if insight == "" {
			insight = weather.InsightGeneral
		}
		return weatherPromptOutput{Prompt: weather.GeneratePrompt(in.CurrentWeather, in.ForecastData, insight)}, nil
	})

	register(b, server, &mcp.Tool{
		Name:        "validate_location",
		Description: "Validate and standardize a location string.",
		Annotations: readOnly("Validate location"),
	}, func(_ context.Context, in validateLocationInput) (weather.LocationValidation, error) {
		return weather.ValidateLocation(in.Location), nil
	})
}
