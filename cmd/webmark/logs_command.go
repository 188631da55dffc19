package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"webmark/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lineCount int
	var follow bool

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the pipeline log file",
		Long: `Pipeline runs log to a file so the terminal can carry progress output.
Logs prints the tail of that file; --follow keeps printing new lines
until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogFilePath()

			lines, offset, err := logs.Recent(path, lineCount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(lines) == 0 && !follow {
				fmt.Fprintf(out, "No log entries yet (%s)\n", path)
				return nil
			}
			for _, line := range lines {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			followCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return logs.Follow(followCtx, path, offset, out)
		},
	}

	cmd.Flags().IntVarP(&lineCount, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	return cmd
}
