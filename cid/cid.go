// Package cid implements Content Identifiers: a versioned wrapper over a
// codec code and a multihash, with the textual and binary forms IPLD
// blocks are addressed by.
//
// https://github.com/multiformats/cid
package cid

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/argumentcomputer/sp-ipld/multibase"
	"github.com/argumentcomputer/sp-ipld/multihash"
	"github.com/argumentcomputer/sp-ipld/varint"
)

// Well-known codec codes this package's own callers use.
const (
	CodecRaw     = 0x55
	CodecDagPB   = 0x70
	CodecDagCBOR = 0x71
	CodecDagJSON = 0x0129
)

// v0HashCode and v0HashSize are the only multihash shape a v0 CID permits:
// a raw 32-byte SHA2-256 digest.
const (
	v0HashCode = 0x12
	v0HashSize = 32
)

// Errors returned while parsing a CID. Each is a distinct type so callers
// can distinguish failure modes with errors.As.
type (
	// InvalidCidVersionError is returned when the leading version varint
	// of a v1+ CID is not a version this package understands.
	InvalidCidVersionError struct{ Version uint64 }
	// InvalidCidV0CodecError is returned by Parse when a multibase-tagged
	// string decodes to bytes starting with 0x12 (a v0-shaped multihash),
	// since v0 is only valid in its untagged base58btc text form.
	InvalidCidV0CodecError struct{}
	// InvalidCidV0MultihashError is returned when a base58btc "Qm..."
	// string does not decode to a valid 34-byte sha2-256 multihash.
	InvalidCidV0MultihashError struct{ Err error }
)

func (e *InvalidCidVersionError) Error() string {
	return fmt.Sprintf("cid: invalid version %d", e.Version)
}
func (e *InvalidCidV0CodecError) Error() string { return "cid: v0 multihash prefix with non-v0 codec" }
func (e *InvalidCidV0MultihashError) Error() string {
	return fmt.Sprintf("cid: invalid v0 multihash: %s", e.Err)
}
func (e *InvalidCidV0MultihashError) Unwrap() error { return e.Err }

// Cid is a content identifier: (version, codec, multihash).
//
// The zero value is not a valid Cid; construct one with Parse,
// ParseBytes, or NewV1.
type Cid struct {
	version uint64
	codec   uint64
	hash    multihash.Multihash
}

// NewV1 constructs a v1 CID from a codec code and a multihash.
func NewV1(codec uint64, hash multihash.Multihash) Cid {
	return Cid{version: 1, codec: codec, hash: hash}
}

// NewV0 constructs a v0 CID. hash must be a sha2-256 multihash with a
// 32-byte digest, matching the fixed shape v0 requires; the caller is
// trusted to pass one (e.g. from multihash.Sum(0x12, data)).
func NewV0(hash multihash.Multihash) Cid {
	return Cid{version: 0, codec: CodecDagPB, hash: hash}
}

// Version returns 0 or 1.
func (c Cid) Version() uint64 { return c.version }

// Codec returns the multicodec code of the data the CID addresses.
func (c Cid) Codec() uint64 { return c.codec }

// Hash returns the embedded multihash.
func (c Cid) Hash() multihash.Multihash { return c.hash }

// Equal compares by byte form.
func (c Cid) Equal(o Cid) bool {
	return bytes.Equal(c.Bytes(), o.Bytes())
}

// Less gives Cid a total order by byte form, so Cids can be sorted or used
// as a stable map iteration key.
func (c Cid) Less(o Cid) bool {
	return bytes.Compare(c.Bytes(), o.Bytes()) < 0
}

// Bytes returns the binary form: the raw multihash for v0, or
// varint(version) || varint(codec) || multihash for v1.
func (c Cid) Bytes() []byte {
	if c.version == 0 {
		return c.hash.Bytes()
	}
	buf := varint.Append(nil, c.version)
	buf = varint.Append(buf, c.codec)
	buf = append(buf, c.hash.Bytes()...)
	return buf
}

// String formats the CID in its canonical text form: base58btc of the raw
// multihash for v0 (no multibase prefix), or multibase.DefaultBase of the
// v1 byte form otherwise.
func (c Cid) String() string {
	if c.version == 0 {
		s, err := multibase.Encode(multibase.Base58BTC, c.hash.Bytes())
		if err != nil {
			panic("cid: base58btc encoding should never fail: " + err.Error())
		}
		// v0 carries no multibase tag character.
		return s[1:]
	}
	s, err := multibase.Encode(multibase.DefaultBase, c.Bytes())
	if err != nil {
		panic("cid: base32 encoding should never fail: " + err.Error())
	}
	return s
}

// ParseBytes parses a CID from its binary form. A 34-byte input starting
// with 0x12 0x20 is parsed as v0; any other input follows the
// varint(version) || varint(codec) || multihash schema.
func ParseBytes(b []byte) (Cid, error) {
	if len(b) == 34 && b[0] == v0HashCode && b[1] == v0HashSize {
		hash, err := multihash.FromBytes(b)
		if err != nil {
			return Cid{}, err
		}
		return NewV0(hash), nil
	}

	r := bytes.NewReader(b)
	version, err := varint.ReadUint64(r)
	if err != nil {
		return Cid{}, err
	}
	if version != 1 {
		return Cid{}, &InvalidCidVersionError{Version: version}
	}
	codec, err := varint.ReadUint64(r)
	if err != nil {
		return Cid{}, err
	}
	rest := b[len(b)-r.Len():]
	hash, err := multihash.FromBytes(rest)
	if err != nil {
		return Cid{}, err
	}
	return NewV1(codec, hash), nil
}

// Parse parses a CID from its text form.
//
// A 46-character string starting with "Qm" is treated as base58btc of a v0
// multihash. Otherwise the string is multibase-decoded; a 0x12 leading
// byte after decoding is rejected, since v0 can only appear in its
// base58btc textual form, never multibase-tagged.
func Parse(s string) (Cid, error) {
	if len(s) == 46 && s[0:2] == "Qm" {
		_, data, err := multibase.Decode("z" + s)
		if err != nil {
			return Cid{}, &InvalidCidV0MultihashError{Err: err}
		}
		if len(data) != 34 || data[0] != v0HashCode || data[1] != v0HashSize {
			return Cid{}, &InvalidCidV0MultihashError{Err: errors.New("not a 34-byte sha2-256 multihash")}
		}
		hash, err := multihash.FromBytes(data)
		if err != nil {
			return Cid{}, &InvalidCidV0MultihashError{Err: err}
		}
		return NewV0(hash), nil
	}

	_, data, err := multibase.Decode(s)
	if err != nil {
		return Cid{}, err
	}
	if len(data) > 0 && data[0] == v0HashCode {
		// v0 can only appear in its base58btc textual form; a
		// multibase-tagged string that looks like a v0 multihash is
		// rejected rather than silently accepted as v1.
		return Cid{}, &InvalidCidV0CodecError{}
	}
	return ParseBytes(data)
}

// MustParse calls Parse and panics on error. Intended for tests and
// constant-like initialization, not for parsing untrusted input.
func MustParse(s string) Cid {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// MarshalText fulfills encoding.TextMarshaler. It is equivalent to String.
func (c Cid) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText fulfills encoding.TextUnmarshaler. It is equivalent to Parse.
func (c *Cid) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalBinary fulfills encoding.BinaryMarshaler. It is equivalent to Bytes.
func (c Cid) MarshalBinary() ([]byte, error) {
	return c.Bytes(), nil
}

// UnmarshalBinary fulfills encoding.BinaryUnmarshaler. It is equivalent to
// ParseBytes.
func (c *Cid) UnmarshalBinary(data []byte) error {
	parsed, err := ParseBytes(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
