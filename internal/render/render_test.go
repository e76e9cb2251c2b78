package render

import (
	"strings"
	"testing"
)

func TestBytes_EnvSubstitution(t *testing.T) {
	t.Setenv("RENDER_TEST_HOST", "api.example.com")

	out, err := Bytes("test", []byte("allowed_hosts:\n  - {{ env \"RENDER_TEST_HOST\" }}\n"))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !strings.Contains(string(out), "api.example.com") {
		t.Fatalf("env value not substituted: %q", out)
	}
}

func TestBytes_MissingEnvFails(t *testing.T) {
	t.Parallel()

	_, err := Bytes("test", []byte("key: {{ env \"RENDER_TEST_DEFINITELY_UNSET\" }}\n"))
	if err == nil {
		t.Fatal("expected error for unset env var")
	}
	if !strings.Contains(err.Error(), "RENDER_TEST_DEFINITELY_UNSET") {
		t.Fatalf("error should name the missing variable: %v", err)
	}
}

func TestBytes_EnvOrFallback(t *testing.T) {
	t.Parallel()

	out, err := Bytes("test", []byte("ttl: {{ envOr \"RENDER_TEST_ALSO_UNSET\" \"5m\" }}\n"))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if !strings.Contains(string(out), "5m") {
		t.Fatalf("fallback not applied: %q", out)
	}
}

func TestBytes_PlainPassThrough(t *testing.T) {
	t.Parallel()

	in := "allowed_hosts:\n  - httpbin.org\n"
	out, err := Bytes("", []byte(in))
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	if string(out) != in {
		t.Fatalf("template-free input changed: %q", out)
	}
}
