package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. Service credentials are not
// required here; their absence surfaces from the client that needs them so a
// config without keys still supports the simple pipeline.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateReader(); err != nil {
		return err
	}
	if err := c.validateLLM(); err != nil {
		return err
	}
	if err := c.validateScreenshot(); err != nil {
		return err
	}
	if err := c.validateNotifications(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if c.Paths.NotesDir == "" {
		return errors.New("paths.notes_dir must be set")
	}
	if c.Paths.AttachmentsDir == "" {
		return errors.New("paths.attachments_dir must be set")
	}
	if c.Paths.StateDir == "" {
		return errors.New("paths.state_dir must be set")
	}
	return nil
}

func (c *Config) validateReader() error {
	switch c.Reader.Backend {
	case "remote", "local":
	default:
		return fmt.Errorf("reader.backend must be remote or local, got %q", c.Reader.Backend)
	}
	if c.Reader.BaseURL == "" {
		return errors.New("reader.base_url must be set")
	}
	if c.Reader.TimeoutSeconds <= 0 {
		return errors.New("reader.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLLM() error {
	if c.LLM.BaseURL == "" {
		return errors.New("llm.base_url must be set")
	}
	if c.LLM.Model == "" {
		return errors.New("llm.model must be set")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateScreenshot() error {
	switch c.Screenshot.Backend {
	case "remote", "local":
	default:
		return fmt.Errorf("screenshot.backend must be remote or local, got %q", c.Screenshot.Backend)
	}
	if c.Screenshot.TimeoutSeconds <= 0 {
		return errors.New("screenshot.timeout_seconds must be positive")
	}
	if c.Screenshot.ViewportWidth <= 0 || c.Screenshot.ViewportHeight <= 0 {
		return errors.New("screenshot viewport dimensions must be positive")
	}
	return nil
}

func (c *Config) validateNotifications() error {
	if c.Notifications.RequestTimeout <= 0 {
		return errors.New("notifications.request_timeout must be positive")
	}
	return nil
}
