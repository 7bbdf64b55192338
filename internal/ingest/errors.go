package ingest

import (
	"errors"
	"fmt"
)

// ParseError represents a malformed or rejected ingestion file.
//
// Parse errors abort the whole ingestion before any write, and carry
// file, block and line so the user can fix the input by hand.
type ParseError struct {
	// Code identifies the error category.
	Code ParseErrorCode

	// File is the ingestion input path ("" for in-memory input).
	File string

	// Block is the 1-based block index.
	Block int

	// Line is the 1-based line number in the input, 0 if not line-specific.
	Line int

	// Message is a human-readable description.
	Message string
}

// ParseErrorCode categorizes parse errors.
type ParseErrorCode string

const (
	// ErrCodeNoName indicates a block whose first line is not a name
	// (it parses as a key: value field).
	ErrCodeNoName ParseErrorCode = "PARSE_NO_NAME"

	// ErrCodeBadDate indicates an unparseable date/timestamp value.
	ErrCodeBadDate ParseErrorCode = "PARSE_BAD_DATE"

	// ErrCodeBadFrequency indicates an unparseable frequency value.
	ErrCodeBadFrequency ParseErrorCode = "PARSE_BAD_FREQUENCY"

	// ErrCodeSimilarName indicates a block name within edit distance 1-2
	// of an existing contact, a likely typo.
	ErrCodeSimilarName ParseErrorCode = "PARSE_SIMILAR_NAME"

	// ErrCodeUnknownContact indicates a block name that matches no
	// existing contact while creation is disabled.
	ErrCodeUnknownContact ParseErrorCode = "PARSE_UNKNOWN_CONTACT"
)

// Error implements the error interface.
func (e *ParseError) Error() string {
	loc := fmt.Sprintf("block %d", e.Block)
	if e.Line > 0 {
		loc = fmt.Sprintf("%s, line %d", loc, e.Line)
	}
	if e.File != "" {
		loc = fmt.Sprintf("%s of %s", loc, e.File)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, loc)
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
