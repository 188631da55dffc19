package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"webmark/internal/step"
)

// Entry statuses recorded for finished items.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Entry is one finished item in the bookmark history.
type Entry struct {
	ID           int64
	URL          string
	Title        string
	NotePath     string
	Status       string
	ErrorMessage string
	Mode         step.Mode
	CreatedAt    time.Time
	CompletedAt  time.Time
}

// Stats summarizes the history by outcome.
type Stats struct {
	Total     int64
	Completed int64
	Failed    int64
}

// RecordSuccess inserts a completed entry. CreatedAt should carry the time the
// item entered the queue; a zero value falls back to now.
func (s *Store) RecordSuccess(ctx context.Context, entry Entry) (int64, error) {
	entry.Status = StatusCompleted
	entry.ErrorMessage = ""
	return s.insert(ctx, entry)
}

// RecordFailure inserts a failed entry carrying the captured error text.
func (s *Store) RecordFailure(ctx context.Context, entry Entry) (int64, error) {
	entry.Status = StatusFailed
	entry.NotePath = ""
	return s.insert(ctx, entry)
}

func (s *Store) insert(ctx context.Context, entry Entry) (int64, error) {
	now := time.Now().UTC()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = now
	}
	mode := entry.Mode
	if mode == "" {
		mode = step.ModeFull
	}

	res, err := s.execWithRetry(
		ctx,
		`INSERT INTO archive_entries (
            url, title, note_path, status, error_message, mode, created_at, completed_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.URL,
		entry.Title,
		entry.NotePath,
		entry.Status,
		entry.ErrorMessage,
		string(mode),
		entry.CreatedAt.UTC().Format(time.RFC3339Nano),
		entry.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return 0, fmt.Errorf("insert history entry: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first. A limit <= 0 applies a
// default of 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, note_path, status, error_message, mode, created_at, completed_at
         FROM archive_entries ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

// Stats counts entries by outcome.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT status, COUNT(1) FROM archive_entries GROUP BY status")
	if err != nil {
		return Stats{}, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		stats.Total += count
		switch status {
		case StatusCompleted:
			stats.Completed = count
		case StatusFailed:
			stats.Failed = count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var entry Entry
	var mode, createdAt, completedAt string
	if err := rows.Scan(
		&entry.ID,
		&entry.URL,
		&entry.Title,
		&entry.NotePath,
		&entry.Status,
		&entry.ErrorMessage,
		&mode,
		&createdAt,
		&completedAt,
	); err != nil {
		return Entry{}, fmt.Errorf("scan history entry: %w", err)
	}
	entry.Mode = step.Mode(mode)
	entry.CreatedAt = parseTimestamp(createdAt)
	entry.CompletedAt = parseTimestamp(completedAt)
	return entry, nil
}

// parseTimestamp tolerates rows written by hand or by older builds.
func parseTimestamp(value string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339} {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}
