package bookmark

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"webmark/internal/services"
)

// Record is the canonical bookmark shape shared by both pipelines. The URL
// pipeline assembles one from generated info; the YAML pipeline parses one
// directly from user input.
type Record struct {
	CreatedAt      time.Time `yaml:"created"`
	Title          string    `yaml:"title" validate:"required"`
	URL            string    `yaml:"url" validate:"required,url"`
	Description    string    `yaml:"description"`
	Tags           []string  `yaml:"tags"`
	ScreenshotFile string    `yaml:"-"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the record carries the minimum both pipelines need
// before any network or file-system work starts.
func (r Record) Validate() error {
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		detail := fmt.Sprintf("field %s failed %s check", strings.ToLower(first.Field()), first.Tag())
		return services.Wrap(services.ErrValidation, "bookmark", "validate", detail, nil)
	}
	return services.Wrap(services.ErrValidation, "bookmark", "validate", "invalid record", err)
}

// Normalize trims surrounding whitespace from the text fields and drops
// blank tags so downstream rendering never sees padding artifacts.
func (r *Record) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.URL = strings.TrimSpace(r.URL)
	r.Description = strings.TrimSpace(r.Description)
	tags := r.Tags[:0]
	for _, tag := range r.Tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	r.Tags = tags
}
