// Package logs reads the pipeline log file for the logs command.
//
// Pipeline runs write structured logs to a file so the terminal stays free
// for progress output; this package tails that file with bounded memory and
// powers follow-mode updates for `webmark logs --follow`. Callers supply a
// context so background polling shuts down cleanly when the CLI exits.
package logs
