package bookmark

import (
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"webmark/internal/services"
)

// HasDocumentDelimiter reports whether the text contains a delimiter line:
// at least three hyphens, or at least three backticks optionally followed
// by a language tag. Such a line marks the input as a YAML document rather
// than a list of URLs.
func HasDocumentDelimiter(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		if isDelimiterLine(line) {
			return true
		}
	}
	return false
}

// ExtractPayload isolates the document body from its delimiters. The body
// starts after the first delimiter line and runs to the next delimiter line
// or the end of input. Text without delimiters is returned as-is, trimmed.
func ExtractPayload(text string) string {
	lines := strings.Split(text, "\n")
	start := -1
	for i, line := range lines {
		if isDelimiterLine(line) {
			start = i
			break
		}
	}
	if start < 0 {
		return strings.TrimSpace(text)
	}
	var body []string
	for _, line := range lines[start+1:] {
		if isDelimiterLine(line) {
			break
		}
		body = append(body, line)
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}

func isDelimiterLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "---"):
		return strings.TrimLeft(trimmed, "-") == ""
	case strings.HasPrefix(trimmed, "```"):
		rest := strings.TrimSpace(strings.TrimLeft(trimmed, "`"))
		return isLanguageTag(rest)
	}
	return false
}

func isLanguageTag(value string) bool {
	for _, r := range value {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// Parse extracts the payload from raw text and decodes it into a validated
// Record. Malformed YAML and records missing a title or url are rejected
// here, before any network or file-system call happens.
func Parse(raw string) (Record, error) {
	payload := ExtractPayload(raw)
	if payload == "" {
		return Record{}, services.Wrap(services.ErrValidation, "bookmark", "parse", "empty document", nil)
	}
	var rec Record
	if err := yaml.Unmarshal([]byte(payload), &rec); err != nil {
		return Record{}, services.Wrap(services.ErrValidation, "bookmark", "parse", "malformed yaml", err)
	}
	rec.Normalize()
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}
