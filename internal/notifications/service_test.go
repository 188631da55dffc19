package notifications_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"webmark/internal/config"
	"webmark/internal/notifications"
)

func TestNewServiceReturnsNoopWhenTopicMissing(t *testing.T) {
	cfg := config.Default()
	cfg.Notifications.NtfyTopic = ""
	svc := notifications.NewService(&cfg)
	if err := svc.BatchStarted(context.Background(), 3); err != nil {
		t.Fatalf("expected noop notifier to return nil, got %v", err)
	}
}

func TestNtfyServiceFormatsPayloads(t *testing.T) {
	tests := []struct {
		name           string
		publish        func(svc notifications.Service) error
		expectTitle    string
		expectMessage  string
		expectTags     string
		expectPriority string
	}{
		{
			name: "batch started",
			publish: func(svc notifications.Service) error {
				return svc.BatchStarted(context.Background(), 3)
			},
			expectTitle:   "Webmark - Batch Started",
			expectMessage: "Processing 3 bookmarks",
			expectTags:    "webmark,batch,started",
		},
		{
			name: "single item batch",
			publish: func(svc notifications.Service) error {
				return svc.BatchStarted(context.Background(), 1)
			},
			expectTitle:   "Webmark - Batch Started",
			expectMessage: "Processing 1 bookmark",
			expectTags:    "webmark,batch,started",
		},
		{
			name: "clean completion",
			publish: func(svc notifications.Service) error {
				return svc.BatchCompleted(context.Background(), 4, 0, 90*time.Second)
			},
			expectTitle:   "Webmark - Batch Complete",
			expectMessage: "✅ 4 bookmarks saved in 1m30s",
			expectTags:    "webmark,batch,completed",
		},
		{
			name: "completion with failures",
			publish: func(svc notifications.Service) error {
				return svc.BatchCompleted(context.Background(), 2, 1, 45*time.Second)
			},
			expectTitle:   "Webmark - Batch Complete (with errors)",
			expectMessage: "2 saved, 1 failed in 45s",
			expectTags:    "webmark,batch,completed",
		},
		{
			name: "item failed",
			publish: func(svc notifications.Service) error {
				return svc.ItemFailed(context.Background(), "https://example.com/broken", errors.New("rate limited"))
			},
			expectTitle:    "Webmark - Item Failed",
			expectMessage:  "❌ Failed: https://example.com/broken\nrate limited",
			expectTags:     "webmark,item,failed",
			expectPriority: "high",
		},
		{
			name: "test notification",
			publish: func(svc notifications.Service) error {
				return svc.TestNotification(context.Background())
			},
			expectTitle:    "Webmark - Test",
			expectMessage:  "Notification system test",
			expectTags:     "webmark,test",
			expectPriority: "low",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var captured struct {
				title    string
				tags     string
				priority string
				body     string
			}

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPost {
					t.Errorf("unexpected method: %s", r.Method)
				}
				captured.title = r.Header.Get("Title")
				captured.tags = r.Header.Get("Tags")
				captured.priority = r.Header.Get("Priority")
				body, err := io.ReadAll(r.Body)
				if err != nil {
					t.Errorf("read body: %v", err)
				}
				captured.body = string(body)
				_ = r.Body.Close()
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			cfg := config.Default()
			cfg.Notifications.NtfyTopic = server.URL
			cfg.Notifications.RequestTimeout = 5

			svc := notifications.NewService(&cfg)
			if err := tc.publish(svc); err != nil {
				t.Fatalf("notification returned error: %v", err)
			}

			if captured.title != tc.expectTitle {
				t.Fatalf("expected title %q, got %q", tc.expectTitle, captured.title)
			}
			if captured.body != tc.expectMessage {
				t.Fatalf("expected message %q, got %q", tc.expectMessage, captured.body)
			}
			if captured.tags != tc.expectTags {
				t.Fatalf("expected tags %q, got %q", tc.expectTags, captured.tags)
			}
			if captured.priority != tc.expectPriority {
				t.Fatalf("expected priority %q, got %q", tc.expectPriority, captured.priority)
			}
		})
	}
}

func TestNtfyServiceReportsServerRejection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte("topic is protected"))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Notifications.NtfyTopic = server.URL

	svc := notifications.NewService(&cfg)
	err := svc.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected notification")
	}
	if !strings.Contains(err.Error(), "403") || !strings.Contains(err.Error(), "topic is protected") {
		t.Fatalf("expected status and body in error, got %v", err)
	}
}
