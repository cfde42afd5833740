// Package errors defines all exported error sentinels for the boundedrand library.
//
// This is the single source of truth for error values. The root package, the
// engine and extmul packages, and the internal tooling packages all import
// from here, so errors.Is checks work across package boundaries.
package errors

import "errors"

// Construction errors
var (
	ErrInvalidRange         = errors.New("boundedrand: invalid range (low > high)")
	ErrUnknownVariant       = errors.New("boundedrand: unknown generator variant")
	ErrUnknownStrategy      = errors.New("boundedrand: unknown multiply strategy")
	ErrIntrinsicUnavailable = errors.New("boundedrand: no double-width multiply intrinsic on this target")
	ErrUnknownEngine        = errors.New("boundedrand: unknown engine family")
	ErrNilMultiplier        = errors.New("boundedrand: multiplier function is nil")
)

// Sample file errors
var (
	ErrInvalidMagic   = errors.New("boundedrand: invalid magic number")
	ErrInvalidVersion = errors.New("boundedrand: unsupported version")
	ErrInvalidWidth   = errors.New("boundedrand: unsupported sample width")
	ErrTruncatedFile  = errors.New("boundedrand: sample file is truncated")
	ErrCorruptedFile  = errors.New("boundedrand: sample file is corrupted")
	ErrChecksumFailed = errors.New("boundedrand: sample file checksum verification failed")
	ErrWriterClosed   = errors.New("boundedrand: sample writer is closed")
	ErrWriterFull     = errors.New("boundedrand: sample writer capacity exceeded")
	ErrReaderClosed   = errors.New("boundedrand: sample reader is closed")
)

// Verification errors
var (
	ErrSequenceMismatch = errors.New("boundedrand: generator sequences diverged")
	ErrOutOfRange       = errors.New("boundedrand: sample outside of range")
	ErrNotUniform       = errors.New("boundedrand: sample distribution rejected as non-uniform")
	ErrNotReplayable    = errors.New("boundedrand: engine family cannot be replayed from a seed")
)
