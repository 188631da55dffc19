// Package archive keeps a SQLite-backed history of processed bookmarks.
//
// Each finished item gets one row recording its outcome, note location, and
// error text when it failed. The store is best-effort observability: callers
// log write failures and move on, a history problem never fails a run.
package archive
