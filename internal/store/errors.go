package store

import (
	"errors"
	"fmt"
)

// StoreError represents a load or save failure against the contact file.
//
// Store errors are fatal to the current invocation: the store is never
// partially updated, and the message carries enough context (path,
// detail) for the user to fix the file by hand.
type StoreError struct {
	// Code identifies the error category.
	Code StoreErrorCode

	// Path is the store file involved.
	Path string

	// Message is a human-readable description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// StoreErrorCode categorizes store errors.
type StoreErrorCode string

const (
	// ErrCodeNotFound indicates the store file does not exist.
	ErrCodeNotFound StoreErrorCode = "STORE_NOT_FOUND"

	// ErrCodeReadFailed indicates the store file could not be read.
	ErrCodeReadFailed StoreErrorCode = "STORE_READ_FAILED"

	// ErrCodeDecodeFailed indicates the file is not a valid contact mapping.
	ErrCodeDecodeFailed StoreErrorCode = "STORE_DECODE_FAILED"

	// ErrCodeDuplicateName indicates two contacts share a name.
	ErrCodeDuplicateName StoreErrorCode = "STORE_DUPLICATE_NAME"

	// ErrCodeBadFrequency indicates a malformed frequency string.
	ErrCodeBadFrequency StoreErrorCode = "STORE_BAD_FREQUENCY"

	// ErrCodeWriteFailed indicates the atomic rewrite failed. The prior
	// file is left intact.
	ErrCodeWriteFailed StoreErrorCode = "STORE_WRITE_FAILED"
)

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%s): %v", e.Code, e.Message, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Path)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsNotFound returns true if the error is a missing-store-file error.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNotFound
	}
	return false
}
