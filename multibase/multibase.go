// Package multibase dispatches byte-sequence encoding to a tagged base
// alphabet, identified by a single prefix character on the text form.
//
// The alphabets themselves (base16, base32, base58btc, base64, ...) are an
// external collaborator, supplied by github.com/multiformats/go-multibase;
// this package adds the IPLD-flavored error taxonomy and the small set of
// bases CIDs actually use.
package multibase

import (
	"fmt"

	upstream "github.com/multiformats/go-multibase"
)

// Base identifies a multibase alphabet by its tag character.
type Base = upstream.Encoding

// Bases CID v1 and DAG-JSON commonly use.
const (
	Identity  Base = upstream.Identity
	Base16    Base = upstream.Base16
	Base32    Base = upstream.Base32
	Base58BTC Base = upstream.Base58BTC
	Base64    Base = upstream.Base64
	Base64URL Base = upstream.Base64url
)

// DefaultBase is the base the IPLD ecosystem defaults to for CID v1 text.
const DefaultBase = Base32

// UnknownBaseError is returned when a text form's tag character does not
// match any known alphabet.
type UnknownBaseError struct {
	Tag byte
}

func (e *UnknownBaseError) Error() string {
	return fmt.Sprintf("multibase: unknown base tag %q", e.Tag)
}

// InvalidCharError is returned when the payload after the tag character
// contains a byte outside the selected alphabet.
type InvalidCharError struct {
	Base Base
	Err  error
}

func (e *InvalidCharError) Error() string {
	return fmt.Sprintf("multibase: invalid character for base %q: %s", byte(e.Base), e.Err)
}

func (e *InvalidCharError) Unwrap() error { return e.Err }

// Encode prepends base's tag character to the base-encoded form of data.
func Encode(base Base, data []byte) (string, error) {
	s, err := upstream.Encode(base, data)
	if err != nil {
		return "", &UnknownBaseError{Tag: byte(base)}
	}
	return s, nil
}

// known lists every base tag this package recognizes, so an unrecognized
// tag can be reported as UnknownBaseError instead of being swallowed into
// a generic decode failure.
var known = map[byte]Base{
	byte(Identity):  Identity,
	byte(Base16):    Base16,
	byte(Base32):    Base32,
	byte(Base58BTC): Base58BTC,
	byte(Base64):    Base64,
	byte(Base64URL): Base64URL,
}

// Decode strips the leading tag character from s and decodes the rest
// under the alphabet it names.
func Decode(s string) (Base, []byte, error) {
	if len(s) == 0 {
		return 0, nil, &UnknownBaseError{}
	}
	base, ok := known[s[0]]
	if !ok {
		return 0, nil, &UnknownBaseError{Tag: s[0]}
	}
	_, data, err := upstream.Decode(s)
	if err != nil {
		return 0, nil, &InvalidCharError{Base: base, Err: err}
	}
	return base, data, nil
}
