package workflow

import (
	"strings"

	"webmark/internal/bookmark"
)

// InputKind classifies raw user input for pipeline dispatch.
type InputKind int

const (
	// InputURLList treats the text as newline-separated URLs.
	InputURLList InputKind = iota
	// InputYAML treats the text as a YAML bookmark document.
	InputYAML
)

// DetectInput picks the pipeline for a blob of user input. Any delimiter
// line (--- or a backtick fence) selects the YAML pipeline; everything else
// is read as a URL list.
func DetectInput(text string) InputKind {
	if bookmark.HasDocumentDelimiter(text) {
		return InputYAML
	}
	return InputURLList
}

// SplitURLs breaks newline-separated input into trimmed, non-empty URLs.
func SplitURLs(text string) []string {
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls
}
