package runtime

import (
	"testing"

	"github.com/pgkeogh/weather-mcp-atomic/internal/cache"
	"github.com/pgkeogh/weather-mcp-atomic/internal/httpapi"
	"github.com/pgkeogh/weather-mcp-atomic/internal/policy"
	"github.com/pgkeogh/weather-mcp-atomic/internal/processing"
	"github.com/pgkeogh/weather-mcp-atomic/internal/secrets"
)

func testPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	p := &policy.Policy{
		AllowedSecrets: []string{"OWM-API-KEY"},
		AllowedHosts:   []string{"api.openweathermap.org"},
	}
	if err := policy.Validate(p); err != nil {
		t.Fatalf("validate policy: %v", err)
	}
	return p
}

func TestBuildRequiresCacheAndPolicy(t *testing.T) {
	if _, err := (Builder{Policy: testPolicy(t)}).Build(); err == nil {
		t.Fatal("expected error without cache")
	}
	if _, err := (Builder{Cache: cache.New(nil)}).Build(); err == nil {
		t.Fatal("expected error without policy")
	}
}

func TestBuildRegistersServer(t *testing.T) {
	pol := testPolicy(t)
	store := cache.New(nil)
	b := Builder{
		Policy:  pol,
		Cache:   store,
		Secrets: &secrets.Service{Provider: secrets.EnvProvider{}, Allowed: pol.SecretAllowed},
		HTTP:    &httpapi.Client{Allowed: pol.HostAllowed},
		Completion: &processing.CompletionClient{
			Endpoint: pol.Completion.Endpoint,
		},
	}
	server, err := b.Build()
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if server == nil {
		t.Fatal("expected a server")
	}
}

func TestArgsMapFlattensInput(t *testing.T) {
	ttl := 60
	m := argsMap(cacheDataInput{
		Key:        "weather_paris",
		Data:       map[string]any{"temp": 15.5},
		TTLSeconds: &ttl,
	})
	if m["key"] != "weather_paris" {
		t.Fatalf("key = %v", m["key"])
	}
	if m["ttl_seconds"] != float64(60) {
		t.Fatalf("ttl_seconds = %v", m["ttl_seconds"])
	}
	if _, ok := m["data"].(map[string]any); !ok {
		t.Fatalf("data = %T", m["data"])
	}
}

func TestArgsMapNonStruct(t *testing.T) {
	if m := argsMap(func() {}); m != nil {
		t.Fatalf("expected nil, got %v", m)
	}
}
