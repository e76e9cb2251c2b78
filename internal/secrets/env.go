package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// EnvProvider resolves secrets from environment variables. The vault
// name "OWM-API-KEY" maps to the variable "<Prefix>OWM_API_KEY".
type EnvProvider struct {
	// Prefix is prepended to the mapped variable name.
	Prefix string
}

// Get looks the secret up in the environment.
func (p EnvProvider) Get(_ context.Context, name string) (string, error) {
	key := p.Prefix + strings.ReplaceAll(strings.ToUpper(name), "-", "_")
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return "", fmt.Errorf("environment variable %s is not set", key)
	}
	return value, nil
}
