// Package codec defines the uniform encode/decode/references dispatch
// surface every wire codec (dagcbor, dagjson, ...) implements, plus a
// registry keyed by multicodec code so callers can look up a codec
// without importing it directly.
package codec

import (
	"fmt"

	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/ipld"
)

// Code is a multicodec code identifying a codec.
type Code uint64

// Codec is the capability to encode and decode an ipld.Node, and to
// extract the Cid links an encoded value refers to.
type Codec interface {
	// Code returns this codec's multicodec code.
	Code() Code
	// Encode returns the canonical byte encoding of n.
	Encode(n ipld.Node) ([]byte, error)
	// Decode parses data into a Node. It fails on any syntactic
	// violation; it never returns a partial value.
	Decode(data []byte) (ipld.Node, error)
	// References extends set with the Cid of every Link reachable from
	// data, without necessarily materializing the whole tree.
	References(data []byte, set map[cid.Cid]struct{}) error
}

// SkipOne is implemented by codecs that can skip a single encoded value
// without fully decoding it.
type SkipOne interface {
	// Skip advances past one encoded value and returns its byte length.
	Skip(data []byte) (int, error)
}

// DefaultReferences implements Codec.References for a codec that has no
// cheaper way to collect references than decoding the full value: decode,
// then call Node.References. Concrete codecs embed this via a decode
// closure rather than duplicating the walk.
func DefaultReferences(decode func([]byte) (ipld.Node, error), data []byte, set map[cid.Cid]struct{}) error {
	n, err := decode(data)
	if err != nil {
		return err
	}
	return n.References(set)
}

// UnsupportedCodecError is returned by Lookup when no codec is
// registered for a code.
type UnsupportedCodecError struct {
	Code Code
}

func (e *UnsupportedCodecError) Error() string {
	return fmt.Sprintf("codec: unsupported codec 0x%x", uint64(e.Code))
}

var registry = map[Code]Codec{}

// Register adds c to the registry under its own Code(). It is typically
// called from an init() in the concrete codec's package.
func Register(c Codec) {
	registry[c.Code()] = c
}

// Lookup returns the registered Codec for code, or an
// UnsupportedCodecError if none is registered.
func Lookup(code Code) (Codec, error) {
	c, ok := registry[code]
	if !ok {
		return nil, &UnsupportedCodecError{Code: code}
	}
	return c, nil
}
