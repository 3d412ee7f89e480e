package dagcbor

import "fmt"

// InvalidCborMajorError is returned when a major type / additional info
// combination isn't one DAG-CBOR permits at all (reserved additional
// info values 28-30, or a bare major-7 byte with no defined meaning).
type InvalidCborMajorError struct {
	Byte byte
}

func (e *InvalidCborMajorError) Error() string {
	return fmt.Sprintf("dagcbor: invalid major type byte 0x%02x", e.Byte)
}

// IndefiniteLengthNotAllowedError is returned for any indefinite-length
// major 2/3/4/5 item (additional info 31); DAG-CBOR requires definite
// lengths everywhere.
type IndefiniteLengthNotAllowedError struct{}

func (e *IndefiniteLengthNotAllowedError) Error() string {
	return "dagcbor: indefinite-length items are not allowed"
}

// NonCanonicalError is returned when an integer, length, or tag number is
// encoded wider than its minimal form requires, or when map keys are not
// in ascending order. Non-8-byte floats get InvalidFloatWidthError instead.
type NonCanonicalError struct {
	Context string
}

func (e *NonCanonicalError) Error() string {
	return "dagcbor: non-canonical encoding: " + e.Context
}

// UnknownTagError is returned for any CBOR tag number other than 42.
type UnknownTagError struct {
	Tag uint64
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("dagcbor: unknown tag %d", e.Tag)
}

// NumberOutOfRangeError is returned when encoding an Integer node outside
// [-2^64, 2^64-1].
type NumberOutOfRangeError struct{}

func (e *NumberOutOfRangeError) Error() string {
	return "dagcbor: integer out of range [-2^64, 2^64-1]"
}

// InvalidFloatWidthError is returned when a float is encoded in anything
// but the full 8-byte IEEE-754 double form.
type InvalidFloatWidthError struct {
	Width int
}

func (e *InvalidFloatWidthError) Error() string {
	return fmt.Sprintf("dagcbor: invalid float width %d bytes, want 8", e.Width)
}

// InvalidUtf8Error is returned when a text string's bytes are not valid
// UTF-8.
type InvalidUtf8Error struct{}

func (e *InvalidUtf8Error) Error() string {
	return "dagcbor: text string is not valid UTF-8"
}

// DuplicateKeyError is returned when a map has two entries with the same
// key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return "dagcbor: duplicate map key " + e.Key
}

// TrailingBytesError is returned when Unmarshal's input has bytes left
// over after the first valid CBOR value.
type TrailingBytesError struct{}

func (e *TrailingBytesError) Error() string {
	return "dagcbor: trailing bytes after value"
}

// InvalidLinkError is returned when a tag-42 payload is malformed: not a
// byte string, empty, or missing the 0x00 multibase-identity prefix byte.
type InvalidLinkError struct {
	Reason string
}

func (e *InvalidLinkError) Error() string {
	return "dagcbor: invalid link payload: " + e.Reason
}

// RecursionLimitError is returned when decoding nests containers deeper
// than the configured MaxDepth.
type RecursionLimitError struct {
	MaxDepth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("dagcbor: nesting exceeds max depth %d", e.MaxDepth)
}

// LimitExceededError is returned when a string, byte string, list, or map
// exceeds its configured maximum length.
type LimitExceededError struct {
	What  string
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("dagcbor: %s exceeds limit %d", e.What, e.Limit)
}
