// Package ingest converts free-text update files into structured
// per-contact records and applies them to a collection.
//
// Input is organized as blocks separated by blank lines. A block's first
// line is the contact name; later lines are either "key: value" fields
// or bare body text. Ingestion is all-or-nothing: every block is parsed
// and validated before any mutation, so a bad file never leaves the
// store partially updated.
//
// Re-ingesting the same file appends duplicate updates. That is by
// contract: the update history is a log, not a set.
package ingest
