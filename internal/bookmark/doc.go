// Package bookmark defines the record shape shared by both capture pipelines
// and the YAML parsing that feeds the hand-written pipeline.
//
// A Record travels through the workflow engine: the URL pipeline assembles
// one from extracted content and generated info, the YAML pipeline parses
// one straight from user input. Parse keeps the delimiter-extraction
// heuristic (fenced code blocks and front-matter style `---` lines) as a
// thin pre-processing step in front of a standard YAML decode, and rejects
// records without a title or url before any network call is made.
package bookmark
