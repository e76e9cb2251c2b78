package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config stores environment-driven settings for the server.
type Config struct {
	// LogLevel sets the logger level.
	LogLevel string `env:"WEATHER_MCP_LOG_LEVEL" envDefault:"info"`
	// Transport selects the server transport ("stdio" or "http").
	Transport string `env:"WEATHER_MCP_TRANSPORT" envDefault:"stdio"`
	// Listen is the HTTP listen address.
	Listen string `env:"WEATHER_MCP_LISTEN" envDefault:":8080"`
	// Path is the MCP HTTP endpoint path.
	Path string `env:"WEATHER_MCP_PATH" envDefault:"/mcp"`
	// PolicyPath points at the YAML policy file; empty selects the
	// embedded default policy.
	PolicyPath string `env:"WEATHER_MCP_POLICY"`
	// SecretPrefix prefixes environment variables the secret provider
	// reads from.
	SecretPrefix string `env:"WEATHER_MCP_SECRET_PREFIX" envDefault:"WEATHER_MCP_SECRET_"`
	// ShutdownTimeout controls graceful shutdown duration.
	ShutdownTimeout time.Duration `env:"WEATHER_MCP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses environment variables into Config.
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
