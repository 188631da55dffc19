package screenshot

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"webmark/internal/config"
	"webmark/internal/logging"
)

const (
	defaultHTTPTimeout    = 60 * time.Second
	defaultViewportWidth  = 1280
	defaultViewportHeight = 800
	maxImageBytes         = 20 << 20
)

// Service captures a rendering of a web page as PNG bytes.
type Service interface {
	Capture(ctx context.Context, rawURL string) ([]byte, error)
}

// Option customizes service construction.
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

// NewFromConfig returns the capture service matching the configured backend.
// The remote backend reuses the reader credential and base URL because both
// talk to the same rendering service.
func NewFromConfig(cfg *config.Config, logger *slog.Logger, opts ...Option) Service {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	timeout := defaultHTTPTimeout
	if cfg.Screenshot.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Screenshot.TimeoutSeconds) * time.Second
	}
	componentLogger := logging.NewComponentLogger(logger, "screenshot")

	if cfg.Screenshot.Backend == "local" {
		width := cfg.Screenshot.ViewportWidth
		if width <= 0 {
			width = defaultViewportWidth
		}
		height := cfg.Screenshot.ViewportHeight
		if height <= 0 {
			height = defaultViewportHeight
		}
		return &localService{
			timeout:    timeout,
			width:      width,
			height:     height,
			chromePath: cfg.Screenshot.ChromePath,
			logger:     componentLogger,
		}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &remoteService{
		apiKey:     cfg.Reader.APIKey,
		baseURL:    strings.TrimRight(cfg.Reader.BaseURL, "/"),
		httpClient: httpClient,
		logger:     componentLogger,
	}
}
