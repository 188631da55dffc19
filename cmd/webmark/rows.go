package main

import (
	"fmt"
	"strings"

	"webmark/internal/archive"
	"webmark/internal/queue"
	"webmark/internal/step"
)

const maxCellWidth = 60

func buildQueueRows(items []*queue.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for i, item := range items {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			truncateCell(item.URL),
			string(item.Mode),
			describeItemProgress(item),
		})
	}
	return rows
}

func describeItemProgress(item *queue.Item) string {
	ordering := step.Ordering(item.Mode)
	done := 0
	current := ""
	failed := false
	for _, def := range ordering {
		state, ok := item.Steps[def.ID]
		if !ok {
			continue
		}
		switch state.Status {
		case step.StatusCompleted:
			done++
		case step.StatusProcessing:
			current = def.Title
		case step.StatusFailed:
			current = def.Title
			failed = true
		}
	}
	switch {
	case failed:
		return fmt.Sprintf("failed at %s", current)
	case current != "":
		return fmt.Sprintf("%s (%d/%d)", current, done, len(ordering))
	case done == len(ordering):
		return "done"
	default:
		return fmt.Sprintf("%d/%d steps", done, len(ordering))
	}
}

func buildHistoryRows(entries []archive.Entry) [][]string {
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		detail := entry.NotePath
		if entry.Status == archive.StatusFailed {
			detail = entry.ErrorMessage
		}
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			title = "-"
		}
		rows = append(rows, []string{
			entry.CompletedAt.UTC().Format("2006-01-02 15:04"),
			formatStatusLabel(entry.Status),
			truncateCell(title),
			truncateCell(entry.URL),
			truncateCell(detail),
		})
	}
	return rows
}

func formatStatusLabel(status string) string {
	status = strings.TrimSpace(status)
	if status == "" {
		return ""
	}
	return strings.ToUpper(status[:1]) + strings.ToLower(status[1:])
}

func truncateCell(value string) string {
	value = strings.TrimSpace(value)
	runes := []rune(value)
	if len(runes) <= maxCellWidth {
		return value
	}
	return string(runes[:maxCellWidth-3]) + "..."
}
