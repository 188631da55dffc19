package note

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"webmark/internal/bookmark"
)

type frontMatter struct {
	Created     time.Time `yaml:"created,omitempty"`
	Title       string    `yaml:"title"`
	URL         string    `yaml:"url"`
	Description string    `yaml:"description,omitempty"`
	Tags        []string  `yaml:"tags,omitempty"`
}

// BuildDocument renders a record into the persisted note text: YAML front
// matter, the screenshot embed when one exists, then a Notes section seeded
// with the description. Output is deterministic for a given record.
func BuildDocument(rec bookmark.Record) string {
	fm := frontMatter{
		Created:     rec.CreatedAt,
		Title:       rec.Title,
		URL:         rec.URL,
		Description: rec.Description,
		Tags:        rec.Tags,
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	// Encoding the flat front-matter struct cannot fail.
	_ = enc.Encode(fm)
	_ = enc.Close()
	buf.WriteString("---\n\n")

	if rec.ScreenshotFile != "" {
		fmt.Fprintf(&buf, "![[%s]]\n\n", rec.ScreenshotFile)
	}

	buf.WriteString("## Notes\n\n")
	if desc := strings.TrimSpace(rec.Description); desc != "" {
		buf.WriteString(desc)
		buf.WriteString("\n")
	}
	return buf.String()
}
