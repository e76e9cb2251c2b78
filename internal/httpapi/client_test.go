package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"sync/atomic"
	"testing"
	"time"
)

func allowAll(string) bool { return true }

func testClient(t *testing.T, allowed func(string) bool) *Client {
	t.Helper()
	return &Client{
		Allowed:        allowed,
		MaxRetries:     2,
		Backoff:        time.Millisecond,
		DefaultTimeout: 5 * time.Second,
	}
}

func TestRequest_JSONResponse(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Paris" {
			t.Errorf("query param q=%q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"main":{"temp":20.5},"name":"Paris"}`))
	}))
	defer srv.Close()

	resp, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "GET",
		map[string]any{"q": "Paris", "skip": nil}, nil, 0)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("Status=%d", resp.Status)
	}
	want := map[string]any{"main": map[string]any{"temp": 20.5}, "name": "Paris"}
	if !reflect.DeepEqual(resp.Data, want) {
		t.Fatalf("Data=%#v", resp.Data)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Fatalf("Headers=%v", resp.Headers)
	}
}

func TestRequest_NonJSONBodyWrapped(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("plain text"))
	}))
	defer srv.Close()

	resp, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "GET", nil, nil, 0)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	want := map[string]any{"text": "plain text"}
	if !reflect.DeepEqual(resp.Data, want) {
		t.Fatalf("Data=%#v", resp.Data)
	}
}

func TestRequest_PostSendsJSONBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method=%s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type=%q", ct)
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	_, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "POST",
		map[string]any{"model": "gpt-4o-mini"}, map[string]string{"Authorization": "Bearer x"}, 0)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
}

func TestRequest_HostAllowlist(t *testing.T) {
	t.Parallel()

	c := testClient(t, func(host string) bool { return host == "api.openweathermap.org" })
	_, err := c.Request(context.Background(), "https://evil.example.com/x", "GET", nil, nil, 0)
	if !errors.Is(err, ErrHostNotAllowed) {
		t.Fatalf("want ErrHostNotAllowed, got %v", err)
	}
}

func TestRequest_RetriesTransientStatus(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	resp, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "GET", nil, nil, 0)
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("Status=%d", resp.Status)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRequest_ClientErrorNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "GET", nil, nil, 0)
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("4xx must not be retried, got %d attempts", got)
	}
}

func TestRequest_RetriesExhausted(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(t, allowAll).Request(context.Background(), srv.URL, "GET", nil, nil, 0)
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRequest_AllowlistCheckedBeforeDial(t *testing.T) {
	t.Parallel()

	// The URL never resolves; the allowlist must reject it first.
	c := testClient(t, func(string) bool { return false })
	u := &url.URL{Scheme: "https", Host: "does-not-exist.invalid", Path: "/"}
	start := time.Now()
	_, err := c.Request(context.Background(), u.String(), "GET", nil, nil, 0)
	if !errors.Is(err, ErrHostNotAllowed) {
		t.Fatalf("want ErrHostNotAllowed, got %v", err)
	}
	if time.Since(start) > time.Second {
		t.Fatal("allowlist rejection should not attempt the network")
	}
}
