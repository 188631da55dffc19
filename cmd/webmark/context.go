package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"webmark/internal/archive"
	"webmark/internal/config"
	"webmark/internal/logging"
	"webmark/internal/note"
	"webmark/internal/notifications"
	"webmark/internal/queue"
	"webmark/internal/services/llm"
	"webmark/internal/services/reader"
	"webmark/internal/services/screenshot"
	"webmark/internal/workflow"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the shared pipeline logger. It writes to the log file
// only; the terminal belongs to the progress presenter and rendered tables.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		logPath := cfg.LogFilePath()
		logger, err := logging.New(logging.Options{
			Level:            cfg.Logging.Level,
			Format:           cfg.Logging.Format,
			OutputPaths:      []string{logPath},
			ErrorOutputPaths: []string{logPath},
		})
		if err != nil {
			c.loggerErr = fmt.Errorf("init logger: %w", err)
			return
		}
		c.logger = logger
	})
	return c.logger, c.loggerErr
}

// buildEngine assembles the pipeline engine with live service clients. A
// history database problem downgrades to a warning because notes can still
// be written without it. The returned cleanup closes the history store.
func (c *commandContext) buildEngine(errOut io.Writer) (*workflow.Engine, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := c.ensureLogger()
	if err != nil {
		return nil, nil, err
	}

	var history workflow.HistoryRecorder
	cleanup := func() {}
	store, err := archive.Open(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "warn: bookmark history unavailable: %v\n", err)
		logger.Warn("open history store", logging.String(logging.FieldComponent, "cli"), logging.Error(err))
	} else {
		history = store
		cleanup = func() { store.Close() }
	}

	svc := workflow.Services{
		Reader: reader.NewFromConfig(cfg, logger),
		Generator: llm.NewClient(llm.Config{
			APIKey:         cfg.LLM.APIKey,
			BaseURL:        cfg.LLM.BaseURL,
			Model:          cfg.LLM.Model,
			PromptTemplate: cfg.LLM.PromptTemplate,
			TimeoutSeconds: cfg.LLM.TimeoutSeconds,
		}),
		Screenshots: screenshot.NewFromConfig(cfg, logger),
		Notes:       note.NewWriter(cfg.Paths.NotesDir, cfg.Paths.AttachmentsDir),
		History:     history,
		Notifier:    notifications.NewService(cfg),
	}

	coord := workflow.NewCoordinatorWithLockFile(cfg.LockPath())
	engine := workflow.NewEngine(cfg, queue.New(), coord, svc, logger)
	return engine, cleanup, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
