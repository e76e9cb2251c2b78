// Package secrets retrieves named secrets through a pluggable
// provider, enforcing the policy allowlist in front of it.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pgkeogh/weather-mcp-atomic/internal/cache"
)

// ErrAccessDenied marks a request for a secret that is not on the
// allowlist, as opposed to a backend retrieval failure.
var ErrAccessDenied = errors.New("access denied")

// Provider fetches a secret value from a backend vault.
type Provider interface {
	// Get returns the secret value for name.
	Get(ctx context.Context, name string) (string, error)
}

// Service wraps a Provider with allowlisting and read-through caching.
// Retrieved values are cached in the shared store so agents can call
// get_secret freely.
type Service struct {
	// Provider is the backing vault.
	Provider Provider
	// Allowed reports whether a secret name may be retrieved.
	Allowed func(name string) bool
	// Cache, when set, holds retrieved values for TTL.
	Cache *cache.Store
	// TTL controls how long cached secrets live.
	TTL time.Duration
	// Logger records retrievals and denials.
	Logger *slog.Logger
}

// Get retrieves a secret by name. Names not on the allowlist fail
// with ErrAccessDenied; backend failures are wrapped as retrieval
// errors.
func (s *Service) Get(ctx context.Context, name string) (string, error) {
	if s.Allowed != nil && !s.Allowed(name) {
		if s.Logger != nil {
			s.Logger.Warn("secret access denied", "secret_name", name)
		}
		return "", fmt.Errorf("secret %s: %w", name, ErrAccessDenied)
	}

	cacheKey := "secret_" + name
	if s.Cache != nil {
		if value, ok := s.Cache.Get(cacheKey); ok {
			if text, isString := value.(string); isString {
				return text, nil
			}
		}
	}

	value, err := s.Provider.Get(ctx, name)
	if err != nil {
		if s.Logger != nil {
			s.Logger.Error("secret retrieval failed", "secret_name", name, "error", err)
		}
		return "", fmt.Errorf("secret retrieval failed: %s: %w", name, err)
	}
	if s.Logger != nil {
		s.Logger.Info("secret retrieved", "secret_name", name)
	}

	if s.Cache != nil {
		s.Cache.Put(cacheKey, value, s.TTL)
	}
	return value, nil
}
