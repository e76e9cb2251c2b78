package httpapi

import (
	"strings"
	"testing"
)

func TestBuildURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     string
		endpoint string
		params   map[string]any
		want     string
		wantErr  bool
	}{
		{
			name:     "plain join",
			base:     "https://api.openweathermap.org/data/2.5",
			endpoint: "weather",
			want:     "https://api.openweathermap.org/data/2.5/weather",
		},
		{
			name:     "slash normalization",
			base:     "https://api.openweathermap.org/data/2.5/",
			endpoint: "/weather",
			want:     "https://api.openweathermap.org/data/2.5/weather",
		},
		{
			name:     "params encoded",
			base:     "https://api.openweathermap.org/data/2.5",
			endpoint: "weather",
			params:   map[string]any{"q": "New York", "units": "metric"},
			want:     "https://api.openweathermap.org/data/2.5/weather?q=New+York&units=metric",
		},
		{
			name:     "nil params skipped",
			base:     "https://httpbin.org",
			endpoint: "get",
			params:   map[string]any{"a": "1", "b": nil},
			want:     "https://httpbin.org/get?a=1",
		},
		{
			name:     "numeric params",
			base:     "https://httpbin.org",
			endpoint: "get",
			params:   map[string]any{"lat": 48.85},
			want:     "https://httpbin.org/get?lat=48.85",
		},
		{
			name:    "empty base",
			base:    "  ",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildURL(tt.base, tt.endpoint, tt.params)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("BuildURL: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestBuildURL_EmptyEndpoint(t *testing.T) {
	t.Parallel()

	got, err := BuildURL("https://httpbin.org/", "", nil)
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if strings.HasSuffix(got, "//") {
		t.Fatalf("doubled slash in %q", got)
	}
}
