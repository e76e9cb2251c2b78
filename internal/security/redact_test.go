package security

import "testing"

func TestRedactArguments(t *testing.T) {
	t.Parallel()

	got := RedactArguments(map[string]any{
		"secret_name": "OWM-API-KEY",
		"api_key":     "hunter2",
		"appid":       "hunter2",
		"location":    "Paris",
		"Authorization": "Bearer abc",
	})

	if got["secret_name"] != "OWM-API-KEY" {
		t.Errorf("secret_name should not be redacted: %v", got["secret_name"])
	}
	if got["api_key"] != "***" {
		t.Errorf("api_key not redacted: %v", got["api_key"])
	}
	if got["appid"] != "***" {
		t.Errorf("appid not redacted: %v", got["appid"])
	}
	if got["Authorization"] != "***" {
		t.Errorf("Authorization not redacted: %v", got["Authorization"])
	}
	if got["location"] != "Paris" {
		t.Errorf("location should pass through: %v", got["location"])
	}
}

func TestRedactArgumentsNil(t *testing.T) {
	t.Parallel()

	if got := RedactArguments(nil); got != nil {
		t.Fatalf("expected nil, got %#v", got)
	}
}
