// Package errs defines the sentinel errors shared across mcworld packages.
//
// Every failure class the library can report has exactly one sentinel here.
// Call sites wrap a sentinel with fmt.Errorf("%w: ...") to attach detail
// (the offending byte, the missing key, the rejected code) while keeping the
// class matchable with errors.Is.
package errs

import "errors"

// Decoder errors.
var (
	// ErrUnknownTagType indicates a type id byte outside the recognized 0-12 range.
	// Wrapped errors carry the offending byte value.
	ErrUnknownTagType = errors.New("unknown tag type id")

	// ErrInvalidUTF8 indicates a string payload that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("string payload is not valid UTF-8")

	// ErrInvalidLength indicates a structurally impossible length or count field,
	// such as a negative byte-array length or a chunk frame that cannot fit its source.
	ErrInvalidLength = errors.New("invalid length field")

	// ErrMaxDepthExceeded indicates tag nesting deeper than the decoder's configured limit.
	ErrMaxDepthExceeded = errors.New("maximum nesting depth exceeded")
)

// Accessor errors.
var (
	// ErrTypeMismatch indicates a typed accessor applied to a tag of another variant.
	ErrTypeMismatch = errors.New("tag type mismatch")

	// ErrKeyNotFound indicates a compound lookup for a key that is not present.
	// Wrapped errors carry the key.
	ErrKeyNotFound = errors.New("compound key not found")

	// ErrIndexOutOfRange indicates a list lookup outside [0, len).
	// Wrapped errors carry the index and the list length.
	ErrIndexOutOfRange = errors.New("list index out of range")
)

// Region container errors.
var (
	// ErrInvalidHeaderSize indicates a region source shorter than the fixed 8192-byte header.
	ErrInvalidHeaderSize = errors.New("invalid region header size")

	// ErrCoordOutOfRange indicates chunk coordinates outside [0, 32).
	// Wrapped errors carry the coordinate pair.
	ErrCoordOutOfRange = errors.New("chunk coordinate out of range")

	// ErrChunkNotFound indicates a load of a slot whose offset word is zero.
	ErrChunkNotFound = errors.New("chunk not present in region")

	// ErrUnsupportedCompression indicates a compression code the library does not accept.
	// Wrapped errors carry the numeric code.
	ErrUnsupportedCompression = errors.New("unsupported compression type")
)
