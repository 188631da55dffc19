package note

import (
	"fmt"
	"os"
	"path/filepath"

	"webmark/internal/bookmark"
	"webmark/internal/services"
)

// Writer persists notes and their screenshot attachments.
type Writer struct {
	notesDir       string
	attachmentsDir string
}

// NewWriter returns a Writer rooted at the given directories.
func NewWriter(notesDir, attachmentsDir string) *Writer {
	return &Writer{notesDir: notesDir, attachmentsDir: attachmentsDir}
}

// WriteNote persists the rendered document under the notes directory, named
// after the record's sanitized title, and returns the path written. A name
// collision gets a timestamp suffix rather than overwriting.
func (w *Writer) WriteNote(rec bookmark.Record, body string) (string, error) {
	if err := os.MkdirAll(w.notesDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrPersistence, "note", "write", "create notes directory", err)
	}
	path := EnsureUniquePath(filepath.Join(w.notesDir, w.baseName(rec)+".md"))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return "", services.Wrap(services.ErrPersistence, "note", "write", fmt.Sprintf("write note %q", path), err)
	}
	return path, nil
}

// PlaceScreenshot stores PNG bytes under the attachments directory and
// returns the file name the note should embed.
func (w *Writer) PlaceScreenshot(rec bookmark.Record, png []byte) (string, error) {
	if err := os.MkdirAll(w.attachmentsDir, 0o755); err != nil {
		return "", services.Wrap(services.ErrPersistence, "note", "screenshot", "create attachments directory", err)
	}
	path := EnsureUniquePath(filepath.Join(w.attachmentsDir, w.baseName(rec)+".png"))
	if err := os.WriteFile(path, png, 0o644); err != nil {
		return "", services.Wrap(services.ErrPersistence, "note", "screenshot", fmt.Sprintf("write screenshot %q", path), err)
	}
	return filepath.Base(path), nil
}

func (w *Writer) baseName(rec bookmark.Record) string {
	name := SanitizeFileName(rec.Title)
	if name == "" {
		name = SanitizeFileName(TitleFromURL(rec.URL))
	}
	if name == "" {
		name = "Untitled Bookmark"
	}
	return name
}
