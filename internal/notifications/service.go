package notifications

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"webmark/internal/config"
)

const userAgent = "Webmark/0.1.0"

// Service defines the notification surface exposed to workflow components.
type Service interface {
	BatchStarted(ctx context.Context, count int) error
	BatchCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error
	ItemFailed(ctx context.Context, url string, cause error) error
	TestNotification(ctx context.Context) error
}

// NewService builds a notification service backed by ntfy when configured.
// When no ntfy topic is configured, a noop implementation is returned.
func NewService(cfg *config.Config) Service {
	topic := strings.TrimSpace(cfg.Notifications.NtfyTopic)
	if topic == "" {
		return noopService{}
	}

	timeout := time.Duration(cfg.Notifications.RequestTimeout) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	client := &http.Client{Timeout: timeout}
	return &ntfyService{
		endpoint: topic,
		client:   client,
	}
}

type payload struct {
	title    string
	message  string
	tags     []string
	priority string
}

type ntfyService struct {
	endpoint string
	client   *http.Client
}

func (n *ntfyService) BatchStarted(ctx context.Context, count int) error {
	noun := "bookmarks"
	if count == 1 {
		noun = "bookmark"
	}
	data := payload{
		title:   "Webmark - Batch Started",
		message: fmt.Sprintf("Processing %d %s", count, noun),
		tags:    []string{"webmark", "batch", "started"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) BatchCompleted(ctx context.Context, succeeded, failed int, duration time.Duration) error {
	duration = duration.Round(time.Second)
	if duration < 0 {
		duration = 0
	}
	durationText := duration.String()
	if duration == 0 {
		durationText = "0s"
	}

	var title string
	var message string
	if failed == 0 {
		title = "Webmark - Batch Complete"
		message = fmt.Sprintf("✅ %d bookmarks saved in %s", succeeded, durationText)
	} else {
		title = "Webmark - Batch Complete (with errors)"
		message = fmt.Sprintf("%d saved, %d failed in %s", succeeded, failed, durationText)
	}

	data := payload{
		title:   title,
		message: message,
		tags:    []string{"webmark", "batch", "completed"},
	}
	return n.send(ctx, data)
}

func (n *ntfyService) ItemFailed(ctx context.Context, url string, cause error) error {
	var builder strings.Builder
	builder.WriteString("❌ Failed")
	if url = strings.TrimSpace(url); url != "" {
		builder.WriteString(": ")
		builder.WriteString(url)
	}
	builder.WriteString("\n")
	if cause != nil {
		builder.WriteString(strings.TrimSpace(cause.Error()))
	} else {
		builder.WriteString("unknown error")
	}

	data := payload{
		title:    "Webmark - Item Failed",
		message:  builder.String(),
		tags:     []string{"webmark", "item", "failed"},
		priority: "high",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) TestNotification(ctx context.Context) error {
	data := payload{
		title:    "Webmark - Test",
		message:  "Notification system test",
		tags:     []string{"webmark", "test"},
		priority: "low",
	}
	return n.send(ctx, data)
}

func (n *ntfyService) send(ctx context.Context, data payload) error {
	if n == nil || n.client == nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(data.message))
	if err != nil {
		return fmt.Errorf("build ntfy request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	if data.title != "" {
		req.Header.Set("Title", data.title)
	}
	if len(data.tags) > 0 {
		req.Header.Set("Tags", strings.Join(data.tags, ","))
	}
	if data.priority != "" && data.priority != "default" {
		req.Header.Set("Priority", data.priority)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("send ntfy notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("ntfy returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

type noopService struct{}

func (noopService) BatchStarted(context.Context, int) error                       { return nil }
func (noopService) BatchCompleted(context.Context, int, int, time.Duration) error { return nil }
func (noopService) ItemFailed(context.Context, string, error) error               { return nil }
func (noopService) TestNotification(context.Context) error                        { return nil }
