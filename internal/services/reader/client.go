package reader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"webmark/internal/config"
	"webmark/internal/logging"
	"webmark/internal/services"
)

const (
	defaultHTTPTimeout = 60 * time.Second
	maxBodyBytes       = 10 << 20
)

// Client extracts readable page content and searches for related material.
// ExtractContent failures carry the shared error taxonomy. SearchRelated is
// best-effort: every failure degrades to an empty string, which is why the
// method returns no error.
type Client interface {
	ExtractContent(ctx context.Context, rawURL string) (string, error)
	SearchRelated(ctx context.Context, rawURL string) string
}

// Option customizes client construction.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient overrides the default HTTP client (useful for tests).
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		if client != nil {
			o.httpClient = client
		}
	}
}

// NewFromConfig returns the client matching the configured reader backend.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	httpClient := o.httpClient
	if httpClient == nil {
		timeout := defaultHTTPTimeout
		if cfg.Reader.TimeoutSeconds > 0 {
			timeout = time.Duration(cfg.Reader.TimeoutSeconds) * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	componentLogger := logging.NewComponentLogger(logger, "reader")
	remote := &remoteClient{
		apiKey:     cfg.Reader.APIKey,
		baseURL:    strings.TrimRight(cfg.Reader.BaseURL, "/"),
		searchURL:  strings.TrimRight(cfg.Reader.SearchURL, "/"),
		httpClient: httpClient,
		logger:     componentLogger,
	}
	if cfg.Reader.Backend == "local" {
		return &localClient{
			httpClient: httpClient,
			search:     remote,
			logger:     componentLogger,
		}
	}
	return remote
}

// remoteClient talks to a Jina-style reader service: GET {base}/{url} returns
// the extracted page text, GET {search}/{url} returns related material.
type remoteClient struct {
	apiKey     string
	baseURL    string
	searchURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

func (c *remoteClient) ExtractContent(ctx context.Context, rawURL string) (string, error) {
	if err := ValidateURL(rawURL); err != nil {
		return "", err
	}
	if c.apiKey == "" {
		return "", services.Wrap(services.ErrConfiguration, "reader", "extract", "api key required", nil)
	}
	body, err := c.fetch(ctx, c.baseURL, rawURL, "extract")
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(body) == "" {
		c.logger.WarnContext(ctx, "extraction returned empty content", logging.String(logging.FieldURL, rawURL))
		return "", nil
	}
	return body, nil
}

func (c *remoteClient) SearchRelated(ctx context.Context, rawURL string) string {
	if err := ValidateURL(rawURL); err != nil {
		c.logger.WarnContext(ctx, "related search skipped", logging.String(logging.FieldURL, rawURL), logging.Error(err))
		return ""
	}
	if c.apiKey == "" {
		c.logger.WarnContext(ctx, "related search skipped: api key required", logging.String(logging.FieldURL, rawURL))
		return ""
	}
	body, err := c.fetch(ctx, c.searchURL, rawURL, "search")
	if err != nil {
		c.logger.WarnContext(ctx, "related search degraded to empty result",
			logging.String(logging.FieldURL, rawURL),
			logging.String("kind", services.FailureKind(err)),
			logging.Error(err))
		return ""
	}
	return strings.TrimSpace(body)
}

func (c *remoteClient) fetch(ctx context.Context, endpoint, rawURL, operation string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/"+rawURL, nil)
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "reader", operation, "build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "text/plain")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", services.Wrap(services.ErrCancelled, "reader", operation, "request aborted", err)
		}
		return "", services.Wrap(services.ErrUnavailable, "reader", operation, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", services.Wrap(services.ErrUnavailable, "reader", operation, "read response", err)
	}
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", statusFailure(resp, body, operation)
	}
	return string(body), nil
}

// statusFailure maps a non-2xx response onto the shared taxonomy.
func statusFailure(resp *http.Response, body []byte, operation string) error {
	retryAfter, _ := services.ParseRetryAfter(resp.Header.Get("Retry-After"))
	cause := &services.StatusError{
		StatusCode: resp.StatusCode,
		Body:       services.SummarizeBody(string(body)),
		RetryAfter: retryAfter,
	}
	marker := services.ErrUnexpectedStatus
	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		marker = services.ErrAuth
	case resp.StatusCode == http.StatusTooManyRequests:
		marker = services.ErrRateLimited
	case resp.StatusCode >= http.StatusInternalServerError:
		marker = services.ErrUnavailable
	}
	return services.Wrap(marker, "reader", operation, "", cause)
}

// ValidateURL rejects anything that is not an absolute http or https URL.
func ValidateURL(rawURL string) error {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return services.Wrap(services.ErrValidation, "reader", "validate", "url required", nil)
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return services.Wrap(services.ErrValidation, "reader", "validate", fmt.Sprintf("parse url %q", trimmed), err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return services.Wrap(services.ErrValidation, "reader", "validate", fmt.Sprintf("url %q must be absolute http or https", trimmed), nil)
	}
	if parsed.Host == "" {
		return services.Wrap(services.ErrValidation, "reader", "validate", fmt.Sprintf("url %q missing host", trimmed), nil)
	}
	return nil
}
