package policy

// Policy is the top-level YAML security and tuning policy.
type Policy struct {
	// AllowedSecrets names the secrets callers may retrieve. No
	// wildcard access: anything not listed is denied.
	AllowedSecrets []string `yaml:"allowed_secrets"`
	// AllowedHosts lists hostnames the HTTP tool may contact.
	AllowedHosts []string `yaml:"allowed_hosts"`
	// HTTP tunes the outbound HTTP client.
	HTTP HTTPPolicy `yaml:"http"`
	// Cache sets cache TTL defaults.
	Cache CachePolicy `yaml:"cache"`
	// Completion configures the AI completion backend.
	Completion CompletionPolicy `yaml:"completion"`
}

// HTTPPolicy tunes the outbound HTTP client.
type HTTPPolicy struct {
	// MaxRetries limits retry attempts after the first request.
	MaxRetries int `yaml:"max_retries"`
	// RetryBackoff is the base delay between attempts.
	RetryBackoff string `yaml:"retry_backoff"`
	// RatePerMinute caps outbound requests per minute (0 disables).
	RatePerMinute int `yaml:"rate_per_minute"`
	// MaxBodyBytes caps how much of a response body is read.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`
	// DefaultTimeout applies when a tool call supplies none.
	DefaultTimeout string `yaml:"default_timeout"`
}

// CachePolicy sets cache TTL defaults.
type CachePolicy struct {
	// DefaultTTL applies when cache_data supplies no ttl_seconds.
	DefaultTTL string `yaml:"default_ttl"`
	// SecretTTL controls how long retrieved secrets are cached.
	SecretTTL string `yaml:"secret_ttl"`
}

// CompletionPolicy configures the AI completion backend.
type CompletionPolicy struct {
	// Endpoint is the chat-completions URL.
	Endpoint string `yaml:"endpoint"`
	// DefaultModel applies when a tool call names no model.
	DefaultModel string `yaml:"default_model"`
	// SecretName is the allowlisted secret holding the API key.
	SecretName string `yaml:"secret_name"`
}
