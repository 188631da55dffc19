package note

import (
	"net/url"
	"path"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// TitleFromURL derives a presentable title from a URL when no better one is
// available: the last path segment (or the host when the path is empty) with
// separators turned into spaces and each word title-cased.
func TitleFromURL(rawURL string) string {
	source := ""
	if parsed, err := url.Parse(strings.TrimSpace(rawURL)); err == nil {
		segment := path.Base(strings.Trim(parsed.Path, "/"))
		if segment != "" && segment != "." && segment != "/" {
			source = strings.TrimSuffix(segment, path.Ext(segment))
		}
		if source == "" {
			source = parsed.Host
		}
	}

	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range source {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.' || r == '%' || r == '+':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		return "Untitled Bookmark"
	}
	return cases.Title(language.Und).String(title)
}
