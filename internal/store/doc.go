// Package store persists the contact collection as a single
// human-editable YAML file.
//
// The file is the single source of truth: every invocation loads it,
// mutates in memory, and rewrites it whole. Writes go through a temp
// file in the destination directory followed by a rename, so an
// interrupted process can never leave a partial file as the canonical
// one.
//
// The top level is a mapping from contact name to contact fields, and
// the encoder preserves the collection's document order so hand edits
// and tool edits coexist.
package store
