package testsupport

import (
	"path/filepath"
	"testing"

	"webmark/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.NotesDir = filepath.Join(base, "notes")
	cfgVal.Paths.AttachmentsDir = filepath.Join(base, "attachments")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Reader.APIKey = "test-reader-key"
	cfgVal.Reader.TimeoutSeconds = 5
	cfgVal.LLM.APIKey = "test-llm-key"
	cfgVal.LLM.TimeoutSeconds = 5
	cfgVal.Screenshot.TimeoutSeconds = 5

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithReaderEndpoint points the reader at a test server.
func WithReaderEndpoint(baseURL, searchURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reader.BaseURL = baseURL
		b.cfg.Reader.SearchURL = searchURL
	}
}

// WithLLMEndpoint points the generation client at a test server.
func WithLLMEndpoint(baseURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.LLM.BaseURL = baseURL
	}
}

// WithoutAPIKeys clears both service credentials.
func WithoutAPIKeys() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Reader.APIKey = ""
		b.cfg.LLM.APIKey = ""
	}
}

// WithNtfyTopic enables push notifications against the given topic URL.
func WithNtfyTopic(topicURL string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Notifications.NtfyTopic = topicURL
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.NotesDir)
}
