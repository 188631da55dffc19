package preflight

import (
	"context"

	"webmark/internal/config"
)

// Result reports the outcome of a single preflight check. A failed check with
// Warning set means the run can proceed degraded rather than not at all.
type Result struct {
	Name    string
	Passed  bool
	Warning bool
	Detail  string
}

// RunAll executes every applicable check for the given config, including the
// network reachability probes. The doctor command renders the full set.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	results := RunEssential(cfg)

	if cfg.Reader.APIKey != "" {
		results = append(results, CheckEndpoint(ctx, "Reader endpoint", cfg.Reader.BaseURL))
	}
	if cfg.LLM.APIKey != "" {
		results = append(results, CheckEndpoint(ctx, "Generation endpoint", cfg.LLM.BaseURL))
	}
	if cfg.Screenshot.Backend == "local" {
		results = append(results, CheckChromeBinary(cfg))
	}

	return results
}

// RunEssential executes the local-only checks a run depends on: directory
// access, disk space, and credential presence. No network calls.
func RunEssential(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	return []Result{
		CheckDirectoryAccess("Notes directory", cfg.Paths.NotesDir),
		CheckDirectoryAccess("Attachments directory", cfg.Paths.AttachmentsDir),
		CheckDirectoryAccess("State directory", cfg.Paths.StateDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckDiskSpace("Disk space", cfg.Paths.NotesDir),
		CheckAPIKey("Reader API key", cfg.Reader.APIKey, "content extraction will fail, related search degrades"),
		CheckAPIKey("Generation API key", cfg.LLM.APIKey, "info generation will fail"),
	}
}

// HasBlockingFailure reports whether any result failed hard.
func HasBlockingFailure(results []Result) bool {
	for _, result := range results {
		if !result.Passed && !result.Warning {
			return true
		}
	}
	return false
}
