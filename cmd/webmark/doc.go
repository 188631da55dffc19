// Package main hosts the webmark CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into pipeline
// runs, history queries, preflight diagnostics, and configuration
// scaffolding. It centralizes configuration resolution, logger setup, and
// engine wiring so subcommands can focus on user experience instead of
// plumbing. Pipeline logs go to the log file; the terminal carries the
// progress presenter and rendered tables.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
