package llm

import (
	"strings"
	"text/template"

	"webmark/internal/services"
)

const defaultPromptTemplate = `You are helping organize a personal bookmark library.

Given a web page, produce a YAML document describing it. Respond with only
the YAML document, no explanation before or after.

The document must contain exactly these fields:

title: the page title, cleaned of site-name suffixes
url: {{.URL}}
description: two or three sentences summarizing what the page covers and why
  someone might return to it
tags: a list of three to six lowercase topic tags, most specific first

Page URL: {{.URL}}

Page content:
{{.Content}}
{{if .Search}}
Related results from a web search for additional context:
{{.Search}}
{{end}}`

// PromptData carries the values substituted into the prompt template.
type PromptData struct {
	URL     string
	Content string
	Search  string
}

// RenderPrompt executes the configured template, falling back to the built-in
// one when none is set. A template that fails to parse is a configuration
// problem, not a transient request failure.
func RenderPrompt(tmpl string, data PromptData) (string, error) {
	source := strings.TrimSpace(tmpl)
	if source == "" {
		source = defaultPromptTemplate
	}
	parsed, err := template.New("prompt").Parse(source)
	if err != nil {
		return "", services.Wrap(services.ErrConfiguration, "llm", "prompt", "invalid prompt template", err)
	}
	var out strings.Builder
	if err := parsed.Execute(&out, data); err != nil {
		return "", services.Wrap(services.ErrConfiguration, "llm", "prompt", "prompt template execution failed", err)
	}
	return out.String(), nil
}
