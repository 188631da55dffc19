package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeReader(); err != nil {
		return err
	}
	c.normalizeLLM()
	if err := c.normalizeScreenshot(); err != nil {
		return err
	}
	c.normalizeNotifications()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.NotesDir) == "" {
		c.Paths.NotesDir = defaultNotesDir
	}
	if c.Paths.NotesDir, err = expandPath(c.Paths.NotesDir); err != nil {
		return fmt.Errorf("paths.notes_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.AttachmentsDir) == "" {
		c.Paths.AttachmentsDir = defaultAttachmentsDir
	}
	if c.Paths.AttachmentsDir, err = expandPath(c.Paths.AttachmentsDir); err != nil {
		return fmt.Errorf("paths.attachments_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeReader() error {
	c.Reader.Backend = strings.ToLower(strings.TrimSpace(c.Reader.Backend))
	if c.Reader.Backend == "" {
		c.Reader.Backend = defaultReaderBackend
	}
	c.Reader.APIKey = strings.TrimSpace(c.Reader.APIKey)
	if c.Reader.APIKey == "" {
		if value, ok := os.LookupEnv("JINA_API_KEY"); ok {
			c.Reader.APIKey = strings.TrimSpace(value)
		}
	}
	c.Reader.BaseURL = strings.TrimRight(strings.TrimSpace(c.Reader.BaseURL), "/")
	if c.Reader.BaseURL == "" {
		c.Reader.BaseURL = defaultReaderBaseURL
	}
	c.Reader.SearchURL = strings.TrimRight(strings.TrimSpace(c.Reader.SearchURL), "/")
	if c.Reader.SearchURL == "" {
		c.Reader.SearchURL = defaultSearchBaseURL
	}
	if c.Reader.TimeoutSeconds <= 0 {
		c.Reader.TimeoutSeconds = defaultReaderTimeout
	}
	return nil
}

func (c *Config) normalizeLLM() {
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	c.LLM.BaseURL = strings.TrimRight(strings.TrimSpace(c.LLM.BaseURL), "/")
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	if c.LLM.TimeoutSeconds <= 0 {
		c.LLM.TimeoutSeconds = defaultLLMTimeout
	}
}

func (c *Config) normalizeScreenshot() error {
	c.Screenshot.Backend = strings.ToLower(strings.TrimSpace(c.Screenshot.Backend))
	if c.Screenshot.Backend == "" {
		c.Screenshot.Backend = defaultScreenshotBackend
	}
	if c.Screenshot.TimeoutSeconds <= 0 {
		c.Screenshot.TimeoutSeconds = defaultScreenshotTimeout
	}
	if c.Screenshot.ViewportWidth <= 0 {
		c.Screenshot.ViewportWidth = defaultViewportWidth
	}
	if c.Screenshot.ViewportHeight <= 0 {
		c.Screenshot.ViewportHeight = defaultViewportHeight
	}
	if strings.TrimSpace(c.Screenshot.ChromePath) != "" {
		expanded, err := expandPath(c.Screenshot.ChromePath)
		if err != nil {
			return fmt.Errorf("screenshot.chrome_path: %w", err)
		}
		c.Screenshot.ChromePath = expanded
	} else {
		c.Screenshot.ChromePath = ""
	}
	return nil
}

func (c *Config) normalizeNotifications() {
	c.Notifications.NtfyTopic = strings.TrimSpace(c.Notifications.NtfyTopic)
	if c.Notifications.RequestTimeout <= 0 {
		c.Notifications.RequestTimeout = defaultNotifyRequestTimeout
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
