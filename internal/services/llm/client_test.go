package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webmark/internal/services"
	"webmark/internal/services/llm"
)

const recordText = "title: Go Concurrency Patterns\n" +
	"url: https://example.com/talks/concurrency\n" +
	"description: A walkthrough of pipeline and cancellation patterns.\n" +
	"tags:\n  - go\n  - concurrency\n"

func completionPayload(content string) map[string]any {
	return map[string]any{
		"choices": []any{
			map[string]any{
				"message": map[string]any{
					"content": content,
				},
			},
		},
	}
}

func TestGenerateStructuredInfoReturnsPayload(t *testing.T) {
	var authHeader, model string
	var temperature float64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		authHeader = r.Header.Get("Authorization")
		var req struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		model = req.Model
		temperature = req.Temperature
		if err := json.NewEncoder(w).Encode(completionPayload(recordText)); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"})
	text, err := client.GenerateStructuredInfo(context.Background(), "https://example.com/talks/concurrency", "page content", "")
	if err != nil {
		t.Fatalf("GenerateStructuredInfo returned error: %v", err)
	}
	if !strings.Contains(text, "title: Go Concurrency Patterns") {
		t.Fatalf("expected title line in payload, got %q", text)
	}
	if authHeader != "Bearer test-key" {
		t.Fatalf("expected bearer auth header, got %q", authHeader)
	}
	if model != "demo-model" {
		t.Fatalf("expected model demo-model, got %q", model)
	}
	if temperature != 0 {
		t.Fatalf("expected temperature 0, got %v", temperature)
	}
}

func TestGenerateStructuredInfoUnwrapsFencedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fenced := "Here is the document you asked for:\n```yaml\n" + recordText + "```\n"
		if err := json.NewEncoder(w).Encode(completionPayload(fenced)); err != nil {
			t.Errorf("encode response: %v", err)
		}
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"})
	text, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if err != nil {
		t.Fatalf("GenerateStructuredInfo returned error: %v", err)
	}
	if strings.Contains(text, "```") {
		t.Fatalf("expected fence to be stripped, got %q", text)
	}
	if strings.Contains(text, "Here is the document") {
		t.Fatalf("expected leading prose to be dropped, got %q", text)
	}
	if !strings.Contains(text, "url: https://example.com/talks/concurrency") {
		t.Fatalf("expected url line in payload, got %q", text)
	}
}

func TestGenerateStructuredInfoRequiresAPIKey(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{BaseURL: server.URL, Model: "demo-model"})
	_, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected no request without an api key, got %d", calls)
	}
}

func TestGenerateStructuredInfoMapsStatusCodes(t *testing.T) {
	cases := []struct {
		name   string
		status int
		want   error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, want: services.ErrAuth},
		{name: "bad request", status: http.StatusBadRequest, want: services.ErrBadRequest},
		{name: "teapot", status: http.StatusTeapot, want: services.ErrUnexpectedStatus},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "nope"})
			}))
			defer server.Close()

			client := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"})
			_, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestGenerateStructuredInfoRetriesOnHTTP429(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "rate limited"})
			return
		}
		_ = json.NewEncoder(w).Encode(completionPayload(recordText))
	}))
	defer server.Close()

	var slept []time.Duration
	client := llm.NewClient(
		llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"},
		llm.WithSleeper(func(d time.Duration) { slept = append(slept, d) }),
		llm.WithRetryBackoff(0, 10*time.Second),
		llm.WithRetryMaxAttempts(5),
	)
	text, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if err != nil {
		t.Fatalf("GenerateStructuredInfo returned error: %v", err)
	}
	if !strings.Contains(text, "title:") {
		t.Fatalf("expected payload after retry, got %q", text)
	}
	if calls != 2 {
		t.Fatalf("expected 2 calls, got %d", calls)
	}
	if len(slept) != 1 || slept[0] != time.Second {
		t.Fatalf("expected single sleep of 1s honoring Retry-After, got %v", slept)
	}
}

func TestGenerateStructuredInfoServerErrorExhaustsRetries(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := llm.NewClient(
		llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"},
		llm.WithSleeper(func(time.Duration) {}),
		llm.WithRetryBackoff(0, 0),
		llm.WithRetryMaxAttempts(3),
	)
	_, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if !errors.Is(err, services.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
}

func TestGenerateStructuredInfoRejectsProseResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(completionPayload("I was unable to access that page."))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"})
	_, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), "unable to access") {
		t.Fatalf("expected error to carry a response snippet, got %v", err)
	}
}

func TestGenerateStructuredInfoEmptyCompletionFails(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(completionPayload(""))
	}))
	defer server.Close()

	client := llm.NewClient(
		llm.Config{APIKey: "test-key", BaseURL: server.URL, Model: "demo-model"},
		llm.WithSleeper(func(time.Duration) {}),
		llm.WithRetryBackoff(0, 0),
		llm.WithRetryMaxAttempts(2),
	)
	_, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", "content", "")
	if !errors.Is(err, services.ErrUnexpectedStatus) {
		t.Fatalf("expected unexpected-status error, got %v", err)
	}
	if !strings.Contains(err.Error(), "response_snippet=") {
		t.Fatalf("expected error to include response snippet, got %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected empty completions to be retried, got %d calls", calls)
	}
}

func TestGenerateStructuredInfoTruncatesLongInputs(t *testing.T) {
	var prompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) == 1 {
			prompt = req.Messages[0].Content
		}
		_ = json.NewEncoder(w).Encode(completionPayload(recordText))
	}))
	defer server.Close()

	client := llm.NewClient(llm.Config{
		APIKey:         "test-key",
		BaseURL:        server.URL,
		Model:          "demo-model",
		PromptTemplate: "page {{.URL}}\n{{.Content}}\n{{.Search}}",
	})
	content := strings.Repeat("a", 6000)
	search := strings.Repeat("b", 3000)
	if _, err := client.GenerateStructuredInfo(context.Background(), "https://example.com", content, search); err != nil {
		t.Fatalf("GenerateStructuredInfo returned error: %v", err)
	}
	if !strings.Contains(prompt, strings.Repeat("a", 5000)+"...") {
		t.Fatal("expected page content cut at 5000 runes with ellipsis")
	}
	if strings.Contains(prompt, strings.Repeat("a", 5001)) {
		t.Fatal("expected page content not to exceed 5000 runes")
	}
	if !strings.Contains(prompt, strings.Repeat("b", 2000)+"...") {
		t.Fatal("expected search text cut at 2000 runes with ellipsis")
	}
	if strings.Contains(prompt, strings.Repeat("b", 2001)) {
		t.Fatal("expected search text not to exceed 2000 runes")
	}
}

func TestRenderPromptFallsBackToDefaultTemplate(t *testing.T) {
	prompt, err := llm.RenderPrompt("", llm.PromptData{
		URL:     "https://example.com/post",
		Content: "the article body",
		Search:  "related result",
	})
	if err != nil {
		t.Fatalf("RenderPrompt returned error: %v", err)
	}
	for _, want := range []string{"https://example.com/post", "the article body", "related result", "tags"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("expected prompt to contain %q, got:\n%s", want, prompt)
		}
	}
}

func TestRenderPromptOmitsSearchSectionWhenEmpty(t *testing.T) {
	prompt, err := llm.RenderPrompt("", llm.PromptData{URL: "https://example.com", Content: "body"})
	if err != nil {
		t.Fatalf("RenderPrompt returned error: %v", err)
	}
	if strings.Contains(prompt, "web search") {
		t.Fatalf("expected search section to be omitted, got:\n%s", prompt)
	}
}

func TestRenderPromptRejectsInvalidTemplate(t *testing.T) {
	_, err := llm.RenderPrompt("{{.Unclosed", llm.PromptData{URL: "https://example.com"})
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestExtractRecordTextRequiresFieldMarkers(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		wantErr bool
	}{
		{name: "bare document", raw: recordText},
		{name: "fenced document", raw: "```yaml\n" + recordText + "```"},
		{name: "missing url", raw: "title: Something\ndescription: text\n", wantErr: true},
		{name: "empty", raw: "   \n", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := llm.ExtractRecordText(tc.raw)
			if tc.wantErr {
				if !errors.Is(err, services.ErrValidation) {
					t.Fatalf("expected validation error, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractRecordText returned error: %v", err)
			}
			if !strings.Contains(text, "title: Go Concurrency Patterns") {
				t.Fatalf("expected title line, got %q", text)
			}
		})
	}
}
