package dagjson

import "fmt"

// InvalidJsonError is returned when the input isn't syntactically valid
// JSON at all.
type InvalidJsonError struct {
	Err error
}

func (e *InvalidJsonError) Error() string { return "dagjson: invalid json: " + e.Err.Error() }
func (e *InvalidJsonError) Unwrap() error { return e.Err }

// InvalidLinkEscapeError is returned when a single-key `{"/": ...}` object
// has a value that isn't a CID text string.
type InvalidLinkEscapeError struct {
	Reason string
}

func (e *InvalidLinkEscapeError) Error() string { return "dagjson: invalid link escape: " + e.Reason }

// InvalidBytesEscapeError is returned when a `{"/": {"bytes": ...}}`
// object doesn't have exactly that shape.
type InvalidBytesEscapeError struct {
	Reason string
}

func (e *InvalidBytesEscapeError) Error() string {
	return "dagjson: invalid bytes escape: " + e.Reason
}

// InvalidBase64Error is returned when a bytes escape's payload is valid
// neither as unpadded nor as padded standard base64.
type InvalidBase64Error struct {
	Err error
}

func (e *InvalidBase64Error) Error() string { return "dagjson: invalid base64: " + e.Err.Error() }
func (e *InvalidBase64Error) Unwrap() error { return e.Err }

// DuplicateKeyError is returned when a JSON object has two entries with
// the same key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string { return "dagjson: duplicate object key " + e.Key }

// TrailingBytesError is returned when Unmarshal's input has non-whitespace
// bytes left over after the first JSON value.
type TrailingBytesError struct{}

func (e *TrailingBytesError) Error() string { return "dagjson: trailing bytes after value" }

// RecursionLimitError is returned when decoding nests containers deeper
// than the configured MaxDepth.
type RecursionLimitError struct {
	MaxDepth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("dagjson: nesting exceeds max depth %d", e.MaxDepth)
}

// LimitExceededError is returned when a string, list, or object exceeds
// its configured maximum length.
type LimitExceededError struct {
	What  string
	Limit int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("dagjson: %s exceeds limit %d", e.What, e.Limit)
}

// NumberOutOfRangeError is returned when a JSON number can't be
// represented as either an IPLD Integer or Float (malformed exponent
// overflow, etc).
type NumberOutOfRangeError struct {
	Literal string
}

func (e *NumberOutOfRangeError) Error() string {
	return "dagjson: number out of range: " + e.Literal
}
