// Package step declares the static pipeline step definitions and the status
// enum their per-item state moves through.
package step

import (
	"fmt"
	"strings"
	"time"
)

// Mode selects which step ordering an item runs through.
type Mode string

const (
	// ModeFull runs content extraction, related search, info generation,
	// screenshot capture, and note creation.
	ModeFull Mode = "full"
	// ModeSimple runs only screenshot capture and note creation.
	ModeSimple Mode = "simple"
)

// ParseMode normalizes a user-supplied mode name.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "full", "":
		return ModeFull, nil
	case "simple":
		return ModeSimple, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected full or simple)", value)
	}
}

// Status tracks one step's lifecycle within a run.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// IsTerminal reports whether no further transition is allowed for this run.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Step identifiers, stable across runs and used as status-map keys.
const (
	GetWebContent  = "get-web-content"
	SearchRelated  = "search-related"
	GenerateInfo   = "generate-info"
	TakeScreenshot = "take-screenshot"
	CreateNote     = "create-note"
)

// Definition describes one pipeline step. Definitions are static; per-item
// state lives on the queue item. EstimatedDuration feeds the cosmetic
// progress estimator only and never aborts anything.
type Definition struct {
	ID                string
	Title             string
	Description       string
	EstimatedDuration time.Duration
}

var fullOrdering = []Definition{
	{
		ID:                GetWebContent,
		Title:             "Fetch content",
		Description:       "Extract readable page content",
		EstimatedDuration: 10 * time.Second,
	},
	{
		ID:                SearchRelated,
		Title:             "Search related",
		Description:       "Collect related context (best effort)",
		EstimatedDuration: 8 * time.Second,
	},
	{
		ID:                GenerateInfo,
		Title:             "Generate info",
		Description:       "Produce title, description, and tags",
		EstimatedDuration: 15 * time.Second,
	},
	{
		ID:                TakeScreenshot,
		Title:             "Take screenshot",
		Description:       "Capture a page screenshot",
		EstimatedDuration: 12 * time.Second,
	},
	{
		ID:                CreateNote,
		Title:             "Create note",
		Description:       "Write the bookmark note",
		EstimatedDuration: 2 * time.Second,
	},
}

// Ordering returns the step definitions for mode. The simple ordering is the
// suffix of the full ordering starting at the screenshot step.
func Ordering(mode Mode) []Definition {
	switch mode {
	case ModeSimple:
		return fullOrdering[3:]
	default:
		return fullOrdering
	}
}

// Lookup returns the definition with the given ID, if it exists in any
// ordering.
func Lookup(id string) (Definition, bool) {
	for _, def := range fullOrdering {
		if def.ID == id {
			return def, true
		}
	}
	return Definition{}, false
}
