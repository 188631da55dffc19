package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"webmark/internal/archive"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recently processed bookmarks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := archive.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No bookmarks processed yet")
				return nil
			}

			table := renderTable(
				[]tableColumn{
					{title: "Finished"},
					{title: "Status"},
					{title: "Title"},
					{title: "URL"},
					{title: "Note / Error"},
				},
				buildHistoryRows(entries),
			)
			fmt.Fprintln(out, table)

			stats, err := store.Stats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%d total: %d completed, %d failed\n", stats.Total, stats.Completed, stats.Failed)
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of entries to show")
	return cmd
}
