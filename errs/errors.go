// Package errs defines the sentinel errors shared by tossframe packages.
//
// Callers should compare with errors.Is, since most call sites wrap these
// sentinels with additional context.
package errs

import "errors"

// Expansion errors.
var (
	// ErrInvalidArgument is returned when expansion inputs have mismatched lengths,
	// a head count outside [0, trials], or a total row count that overflows int.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Table blob errors.
var (
	ErrInvalidHeaderSize  = errors.New("invalid header size")
	ErrInvalidHeaderFlags = errors.New("invalid header flags")
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrCorruptPayload     = errors.New("corrupt payload")
	ErrIDKindMismatch     = errors.New("id kind mismatch")
	ErrTextTooLong        = errors.New("text exceeds maximum length")
	ErrTooManyRows        = errors.New("too many rows")
	ErrInvalidIDEncoding  = errors.New("invalid id encoding")
	ErrInvalidCompression = errors.New("invalid compression")
)

// Run tracking errors.
var (
	ErrHashCollision = errors.New("hash collision")
	ErrEmptyKey      = errors.New("empty key")
)

// Source and store errors.
var (
	// ErrHTTPStatus is returned when a remote source answers with a non-2xx status.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrEmptySource is returned when a source holds no header row.
	ErrEmptySource = errors.New("empty source")
	// ErrNotFound is returned when a stored table does not exist.
	ErrNotFound = errors.New("not found")
)

// Regression errors.
var (
	ErrInsufficientData = errors.New("insufficient data points")
	ErrMismatchedLength = errors.New("mismatched data lengths")
)
