package reader_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"webmark/internal/config"
	"webmark/internal/logging"
	"webmark/internal/services"
	"webmark/internal/services/reader"
)

func remoteConfig(baseURL, searchURL string) *config.Config {
	cfg := config.Default()
	cfg.Reader.Backend = "remote"
	cfg.Reader.APIKey = "test-key"
	cfg.Reader.BaseURL = baseURL
	cfg.Reader.SearchURL = searchURL
	cfg.Reader.TimeoutSeconds = 5
	return &cfg
}

func TestExtractContentReturnsBody(t *testing.T) {
	var gotAuth, gotTarget string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotTarget = r.URL.String()
		w.Write([]byte("# Extracted\n\nbody text"))
	}))
	defer server.Close()

	client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
	content, err := client.ExtractContent(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("ExtractContent returned error: %v", err)
	}
	if content != "# Extracted\n\nbody text" {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if !strings.Contains(gotTarget, "example.com/article") {
		t.Fatalf("target url not forwarded: %q", gotTarget)
	}
}

func TestExtractContentRequiresAPIKey(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	cfg := remoteConfig(server.URL, server.URL)
	cfg.Reader.APIKey = ""
	client := reader.NewFromConfig(cfg, logging.NewNop())

	_, err := client.ExtractContent(context.Background(), "https://example.com/article")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request without a key, got %d", calls)
	}
}

func TestExtractContentStatusMapping(t *testing.T) {
	cases := []struct {
		status int
		marker error
	}{
		{http.StatusUnauthorized, services.ErrAuth},
		{http.StatusTooManyRequests, services.ErrRateLimited},
		{http.StatusInternalServerError, services.ErrUnavailable},
		{http.StatusBadGateway, services.ErrUnavailable},
		{http.StatusNotFound, services.ErrUnexpectedStatus},
	}
	for _, tc := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "remote failure detail", tc.status)
		}))

		client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
		_, err := client.ExtractContent(context.Background(), "https://example.com/article")
		server.Close()

		if !errors.Is(err, tc.marker) {
			t.Fatalf("status %d: expected marker %v, got %v", tc.status, tc.marker, err)
		}
		var statusErr *services.StatusError
		if !errors.As(err, &statusErr) || statusErr.StatusCode != tc.status {
			t.Fatalf("status %d: status detail missing from %v", tc.status, err)
		}
	}
}

func TestExtractContentEmptyBodyIsNotAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("   \n"))
	}))
	defer server.Close()

	client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
	content, err := client.ExtractContent(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("expected empty body to degrade, got error %v", err)
	}
	if content != "" {
		t.Fatalf("expected empty content, got %q", content)
	}
}

func TestExtractContentRejectsBadURLs(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
	for _, raw := range []string{"", "notaurl", "ftp://example.com/x", "example.com/no-scheme"} {
		_, err := client.ExtractContent(context.Background(), raw)
		if !errors.Is(err, services.ErrValidation) {
			t.Fatalf("url %q: expected validation error, got %v", raw, err)
		}
	}
	if calls != 0 {
		t.Fatalf("expected no requests for invalid urls, got %d", calls)
	}
}

func TestSearchRelatedReturnsTrimmedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("\nrelated links\n"))
	}))
	defer server.Close()

	client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
	if got := client.SearchRelated(context.Background(), "https://example.com/article"); got != "related links" {
		t.Fatalf("unexpected search result: %q", got)
	}
}

func TestSearchRelatedDegradesOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := reader.NewFromConfig(remoteConfig(server.URL, server.URL), logging.NewNop())
	if got := client.SearchRelated(context.Background(), "https://example.com/article"); got != "" {
		t.Fatalf("expected empty result on failure, got %q", got)
	}
	if got := client.SearchRelated(context.Background(), "not a url"); got != "" {
		t.Fatalf("expected empty result for invalid url, got %q", got)
	}
}

func TestSearchRelatedWithoutKeyReturnsEmpty(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	cfg := remoteConfig(server.URL, server.URL)
	cfg.Reader.APIKey = ""
	client := reader.NewFromConfig(cfg, logging.NewNop())

	if got := client.SearchRelated(context.Background(), "https://example.com/article"); got != "" {
		t.Fatalf("expected empty result without key, got %q", got)
	}
	if calls != 0 {
		t.Fatalf("expected no request without a key, got %d", calls)
	}
}
