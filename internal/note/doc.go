// Package note renders bookmark records into persisted markdown documents.
//
// BuildDocument is pure formatting; the Writer owns the notes and
// attachments directories and handles naming: titles are sanitized for the
// filesystem, and existing files get a timestamp suffix instead of being
// overwritten.
package note
