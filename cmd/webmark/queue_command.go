package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"webmark/internal/queue"
)

func newQueueCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the in-memory work queue",
		Long: `The queue lives for one invocation: add and run fill and drain it
internally, so a standalone call normally reports an empty queue.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := ctx.ensureConfig(); err != nil {
				return err
			}
			renderQueue(cmd.OutOrStdout(), queue.New())
			return nil
		},
	}
}

func renderQueue(out io.Writer, q *queue.Queue) {
	items := q.Items()
	if len(items) == 0 {
		fmt.Fprintln(out, "Queue is empty")
		return
	}
	table := renderTable(
		[]tableColumn{
			{title: "#", alignRight: true},
			{title: "URL"},
			{title: "Mode"},
			{title: "Progress"},
		},
		buildQueueRows(items),
	)
	fmt.Fprintln(out, table)
}
