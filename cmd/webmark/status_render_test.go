package main

import (
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	line := renderStatusLine("Notes directory", statusError, "access denied", false)
	expected := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Notes directory:", "[ERROR] access denied")
	if line != expected {
		t.Fatalf("expected %q, got %q", expected, line)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	line := renderStatusLine("Reader endpoint", statusOK, "reachable", true)
	if !strings.HasPrefix(line, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", line)
	}
	if !strings.HasSuffix(line, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", line)
	}
	requireContains(t, line, "[OK] reachable")
}

func TestRenderStatusLineOmitsEmptyMessage(t *testing.T) {
	line := renderStatusLine("Create note", statusOK, "", false)
	if strings.HasSuffix(line, " ") {
		t.Fatalf("trailing space after bare status: %q", line)
	}
	requireContains(t, line, "[OK]")
}

func TestRenderSectionHeader(t *testing.T) {
	lines := renderSectionHeader("Preflight", false)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "== Preflight ==" {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if lines[1] != strings.Repeat("-", len(lines[0])) {
		t.Fatalf("rule length mismatch: %q", lines[1])
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatal("expected false for non-file writer")
	}
}
