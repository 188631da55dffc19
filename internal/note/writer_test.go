package note_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode"

	"webmark/internal/bookmark"
	"webmark/internal/note"
	"webmark/internal/services"
)

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "Hello World"},
		{"a/b\\c:d", "a_b_c_d"},
		{"What? Why!", "What_ Why_"},
		{"  spaced   out  ", "spaced out"},
		{"dots.and-dashes_ok", "dots.and-dashes_ok"},
		{"café münchen", "café münchen"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := note.SanitizeFileName(tc.in); got != tc.want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestEnsureUniquePathPassesThroughMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.md")
	if got := note.EnsureUniquePath(path); got != path {
		t.Fatalf("EnsureUniquePath(%q) = %q, want unchanged", path, got)
	}
}

func TestEnsureUniquePathSuffixesCollision(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "taken.md")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	got := note.EnsureUniquePath(path)
	if got == path {
		t.Fatal("expected a different path for an existing file")
	}
	if !strings.HasPrefix(got, filepath.Join(dir, "taken-")) {
		t.Fatalf("unexpected collision path: %q", got)
	}
	if !strings.HasSuffix(got, ".md") {
		t.Fatalf("extension not preserved: %q", got)
	}
	suffix := strings.TrimSuffix(strings.TrimPrefix(got, filepath.Join(dir, "taken-")), ".md")
	if len(suffix) != 6 {
		t.Fatalf("expected 6-digit suffix, got %q", suffix)
	}
	for _, r := range suffix {
		if !unicode.IsDigit(r) {
			t.Fatalf("suffix not numeric: %q", suffix)
		}
	}
}

func TestWriteNoteCreatesDirectoryAndFile(t *testing.T) {
	root := t.TempDir()
	w := note.NewWriter(filepath.Join(root, "notes"), filepath.Join(root, "attachments"))

	rec := sampleRecord()
	path, err := w.WriteNote(rec, "body text\n")
	if err != nil {
		t.Fatalf("WriteNote returned error: %v", err)
	}
	if filepath.Base(path) != "Example Article.md" {
		t.Fatalf("unexpected note name: %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	if string(data) != "body text\n" {
		t.Fatalf("unexpected note contents: %q", data)
	}
}

func TestWriteNoteDoesNotOverwrite(t *testing.T) {
	root := t.TempDir()
	w := note.NewWriter(filepath.Join(root, "notes"), filepath.Join(root, "attachments"))

	rec := sampleRecord()
	first, err := w.WriteNote(rec, "first")
	if err != nil {
		t.Fatalf("first WriteNote: %v", err)
	}
	second, err := w.WriteNote(rec, "second")
	if err != nil {
		t.Fatalf("second WriteNote: %v", err)
	}
	if first == second {
		t.Fatal("second note overwrote the first")
	}
	data, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("read first note: %v", err)
	}
	if string(data) != "first" {
		t.Fatalf("first note clobbered: %q", data)
	}
}

func TestWriteNoteWrapsPersistenceFailure(t *testing.T) {
	root := t.TempDir()
	blocked := filepath.Join(root, "blocked")
	if err := os.WriteFile(blocked, []byte("not a directory"), 0o644); err != nil {
		t.Fatalf("seed blocker: %v", err)
	}
	w := note.NewWriter(filepath.Join(blocked, "notes"), filepath.Join(root, "attachments"))

	_, err := w.WriteNote(sampleRecord(), "body")
	if err == nil {
		t.Fatal("expected error when notes dir cannot be created")
	}
	if !errors.Is(err, services.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestPlaceScreenshotReturnsEmbedName(t *testing.T) {
	root := t.TempDir()
	w := note.NewWriter(filepath.Join(root, "notes"), filepath.Join(root, "attachments"))

	name, err := w.PlaceScreenshot(sampleRecord(), []byte{0x89, 'P', 'N', 'G'})
	if err != nil {
		t.Fatalf("PlaceScreenshot returned error: %v", err)
	}
	if name != "Example Article.png" {
		t.Fatalf("unexpected attachment name: %q", name)
	}
	if _, err := os.Stat(filepath.Join(root, "attachments", name)); err != nil {
		t.Fatalf("attachment not written: %v", err)
	}
}

func TestWriterFallsBackToURLTitle(t *testing.T) {
	root := t.TempDir()
	w := note.NewWriter(filepath.Join(root, "notes"), filepath.Join(root, "attachments"))

	rec := bookmark.Record{URL: "https://example.com/intro-to-testing"}
	path, err := w.WriteNote(rec, "body")
	if err != nil {
		t.Fatalf("WriteNote returned error: %v", err)
	}
	if filepath.Base(path) != "Intro To Testing.md" {
		t.Fatalf("unexpected fallback name: %q", filepath.Base(path))
	}
}

func TestTitleFromURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"https://example.com/my-great-post", "My Great Post"},
		{"https://example.com/posts/intro_to_go.html", "Intro To Go"},
		{"https://example.com/", "Example Com"},
		{"https://example.com/a%20b", "A B"},
		{"", "Untitled Bookmark"},
	}
	for _, tc := range cases {
		if got := note.TitleFromURL(tc.in); got != tc.want {
			t.Fatalf("TitleFromURL(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
