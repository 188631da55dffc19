// Package reader wraps the content extraction and related-search endpoints.
//
// The remote backend drives a Jina-style reader service; the local backend
// fetches pages itself and runs readability extraction in-process. Both
// present the same Client interface. ExtractContent reports failures through
// the shared services taxonomy, while SearchRelated deliberately returns no
// error: related material is garnish, so every failure mode logs a warning
// and yields an empty string instead of disturbing the pipeline.
package reader
