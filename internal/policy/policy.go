// Package policy loads the YAML allowlist and tuning policy that
// gates what the tools may reach.
package policy

import (
	"fmt"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"
)

// Load parses YAML bytes into Policy and validates it.
func Load(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Load(data, &p, yaml.WithKnownFields()); err != nil {
		return nil, fmt.Errorf("parse policy: %w", err)
	}
	if err := Validate(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate applies defaults and verifies required fields.
func Validate(p *Policy) error {
	if p == nil {
		return fmt.Errorf("policy is nil")
	}
	if len(p.AllowedHosts) == 0 {
		return fmt.Errorf("allowed_hosts is required")
	}
	for i, host := range p.AllowedHosts {
		if strings.TrimSpace(host) == "" {
			return fmt.Errorf("allowed_hosts[%d] is empty", i)
		}
	}
	for i, name := range p.AllowedSecrets {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("allowed_secrets[%d] is empty", i)
		}
	}

	if p.HTTP.MaxRetries < 0 {
		return fmt.Errorf("http.max_retries must be >= 0")
	}
	if p.HTTP.MaxRetries == 0 {
		p.HTTP.MaxRetries = 3
	}
	if p.HTTP.RetryBackoff == "" {
		p.HTTP.RetryBackoff = "1s"
	}
	if _, err := time.ParseDuration(p.HTTP.RetryBackoff); err != nil {
		return fmt.Errorf("http.retry_backoff is invalid: %w", err)
	}
	if p.HTTP.RatePerMinute < 0 {
		return fmt.Errorf("http.rate_per_minute must be >= 0")
	}
	if p.HTTP.MaxBodyBytes <= 0 {
		p.HTTP.MaxBodyBytes = 1 << 20
	}
	if p.HTTP.DefaultTimeout == "" {
		p.HTTP.DefaultTimeout = "30s"
	}
	if _, err := time.ParseDuration(p.HTTP.DefaultTimeout); err != nil {
		return fmt.Errorf("http.default_timeout is invalid: %w", err)
	}

	if p.Cache.DefaultTTL == "" {
		p.Cache.DefaultTTL = "5m"
	}
	if _, err := time.ParseDuration(p.Cache.DefaultTTL); err != nil {
		return fmt.Errorf("cache.default_ttl is invalid: %w", err)
	}
	if p.Cache.SecretTTL == "" {
		p.Cache.SecretTTL = "10m"
	}
	if _, err := time.ParseDuration(p.Cache.SecretTTL); err != nil {
		return fmt.Errorf("cache.secret_ttl is invalid: %w", err)
	}

	if p.Completion.Endpoint == "" {
		p.Completion.Endpoint = "https://api.openai.com/v1/chat/completions"
	}
	if p.Completion.DefaultModel == "" {
		p.Completion.DefaultModel = "gpt-4o-mini"
	}
	if p.Completion.SecretName == "" {
		p.Completion.SecretName = "OPENAI-API-KEY"
	}

	return nil
}

// SecretAllowed reports whether name is on the secret allowlist.
func (p *Policy) SecretAllowed(name string) bool {
	for _, allowed := range p.AllowedSecrets {
		if allowed == name {
			return true
		}
	}
	return false
}

// HostAllowed reports whether host (without port) is on the host
// allowlist. Matching is exact and case-insensitive.
func (p *Policy) HostAllowed(host string) bool {
	for _, allowed := range p.AllowedHosts {
		if strings.EqualFold(allowed, host) {
			return true
		}
	}
	return false
}
