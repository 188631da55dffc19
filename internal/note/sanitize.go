package note

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"
)

// SanitizeFileName maps a title onto a filesystem-safe name: letters, digits,
// spaces, hyphens, underscores, and periods survive, everything else becomes
// an underscore. Whitespace runs collapse to single spaces and the result is
// trimmed.
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		case r == '-' || r == '_' || r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// EnsureUniquePath returns path unchanged when nothing exists there. On a
// collision it appends a 6-digit timestamp to the base name, preserving the
// extension. The check is a single stat immediately before creation; runs
// are already serialized upstream, so no lock is taken here.
func EnsureUniquePath(path string) string {
	if _, err := os.Stat(path); err != nil {
		return path
	}
	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	return base + "-" + time.Now().Format("150405") + ext
}
