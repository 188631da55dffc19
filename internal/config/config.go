package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	NotesDir       string `toml:"notes_dir"`
	AttachmentsDir string `toml:"attachments_dir"`
	StateDir       string `toml:"state_dir"`
	LogDir         string `toml:"log_dir"`
}

// Reader contains configuration for the content extraction and related-search
// endpoints.
type Reader struct {
	Backend        string `toml:"backend"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	SearchURL      string `toml:"search_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// LLM contains connection settings for the text-generation endpoint.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Model          string `toml:"model"`
	PromptTemplate string `toml:"prompt_template"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Screenshot contains configuration for page screenshot capture.
type Screenshot struct {
	Backend        string `toml:"backend"`
	Optional       bool   `toml:"optional"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	ViewportWidth  int    `toml:"viewport_width"`
	ViewportHeight int    `toml:"viewport_height"`
	ChromePath     string `toml:"chrome_path"`
}

// Notifications contains configuration for ntfy push notifications.
type Notifications struct {
	NtfyTopic      string `toml:"ntfy_topic"`
	RequestTimeout int    `toml:"request_timeout"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for webmark.
//
// Configuration sections by subsystem:
//   - Paths: notes, attachments, state, and log directories
//   - Reader: content extraction and related-search service
//   - LLM: text-generation connection and prompt template
//   - Screenshot: capture backend and viewport
//   - Notifications: ntfy push notification settings
//   - Logging: log format and level
type Config struct {
	Paths         Paths         `toml:"paths"`
	Reader        Reader        `toml:"reader"`
	LLM           LLM           `toml:"llm"`
	Screenshot    Screenshot    `toml:"screenshot"`
	Notifications Notifications `toml:"notifications"`
	Logging       Logging       `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/webmark/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath("~/.config/webmark/config.toml")
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("webmark.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the directories a run needs before any item starts.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.NotesDir, c.Paths.AttachmentsDir, c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the bookmark history database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.StateDir, "webmark.db")
}

// LockPath returns the location of the cross-process run lock file.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.StateDir, "webmark.lock")
}

// LogFilePath returns the location of the pipeline log file.
func (c *Config) LogFilePath() string {
	return filepath.Join(c.Paths.LogDir, "webmark.log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	sample := sampleConfig

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
