package secrets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgkeogh/weather-mcp-atomic/internal/cache"
)

type staticProvider struct {
	values map[string]string
	calls  int
}

func (p *staticProvider) Get(_ context.Context, name string) (string, error) {
	p.calls++
	value, ok := p.values[name]
	if !ok {
		return "", errors.New("no such secret")
	}
	return value, nil
}

func TestServiceGet(t *testing.T) {
	t.Parallel()

	provider := &staticProvider{values: map[string]string{"OWM-API-KEY": "abc123"}}
	svc := &Service{
		Provider: provider,
		Allowed:  func(name string) bool { return name == "OWM-API-KEY" },
	}

	got, err := svc.Get(context.Background(), "OWM-API-KEY")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "abc123" {
		t.Fatalf("got %q", got)
	}
}

func TestServiceDeniesUnlistedSecret(t *testing.T) {
	t.Parallel()

	provider := &staticProvider{values: map[string]string{"OTHER": "x"}}
	svc := &Service{
		Provider: provider,
		Allowed:  func(string) bool { return false },
	}

	_, err := svc.Get(context.Background(), "OTHER")
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("want ErrAccessDenied, got %v", err)
	}
	if provider.calls != 0 {
		t.Fatal("provider must not be consulted for denied names")
	}
}

func TestServiceRetrievalFailureIsNotAccessDenied(t *testing.T) {
	t.Parallel()

	svc := &Service{
		Provider: &staticProvider{},
		Allowed:  func(string) bool { return true },
	}

	_, err := svc.Get(context.Background(), "MISSING")
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, ErrAccessDenied) {
		t.Fatal("backend failure must not look like a denial")
	}
}

func TestServiceCachesValues(t *testing.T) {
	t.Parallel()

	provider := &staticProvider{values: map[string]string{"OWM-API-KEY": "abc123"}}
	svc := &Service{
		Provider: provider,
		Allowed:  func(string) bool { return true },
		Cache:    cache.New(nil),
		TTL:      time.Minute,
	}

	for i := 0; i < 3; i++ {
		if _, err := svc.Get(context.Background(), "OWM-API-KEY"); err != nil {
			t.Fatalf("Get: %v", err)
		}
	}
	if provider.calls != 1 {
		t.Fatalf("expected one backend call, got %d", provider.calls)
	}
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("TEST_SECRET_OWM_API_KEY", "from-env")

	provider := EnvProvider{Prefix: "TEST_SECRET_"}
	got, err := provider.Get(context.Background(), "OWM-API-KEY")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != "from-env" {
		t.Fatalf("got %q", got)
	}

	if _, err := provider.Get(context.Background(), "NOT-SET"); err == nil {
		t.Fatal("expected error for unset variable")
	}
}
