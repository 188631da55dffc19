package llm

import (
	"strings"

	"webmark/internal/bookmark"
	"webmark/internal/services"
)

// ExtractRecordText pulls the YAML payload out of a model response. Models
// often wrap their answer in a code fence or front-matter delimiters even
// when told not to, so the response goes through the same payload extraction
// used for user-supplied documents. The result must carry the title and url
// field markers or the response is rejected outright rather than handed to
// the YAML parser to produce a confusing downstream error.
func ExtractRecordText(raw string) (string, error) {
	payload := bookmark.ExtractPayload(raw)
	if payload == "" {
		return "", services.Wrap(services.ErrValidation, "llm", "extract", "model response carried no document", nil)
	}
	if !strings.Contains(payload, "title:") || !strings.Contains(payload, "url:") {
		return "", services.Wrap(services.ErrValidation, "llm", "extract",
			"model response missing required fields (snippet="+services.SummarizeBody(payload)+")", nil)
	}
	return payload, nil
}
