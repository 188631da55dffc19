// Package llm generates structured bookmark descriptions with an
// OpenAI-compatible chat completion API.
//
// The client sends page content and optional search context through a
// configurable prompt template and returns the YAML payload extracted from
// the model's reply. Rate limits, transient server errors, and empty
// completions are retried with exponential backoff; everything else maps
// onto the shared service error taxonomy.
package llm
