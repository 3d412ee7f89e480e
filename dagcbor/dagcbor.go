// Package dagcbor implements DAG-CBOR: the restricted, deterministic
// subset of CBOR (RFC 8949 §4.2.1, Core Deterministic Encoding) that IPLD
// uses as its primary canonical wire format.
//
// Unlike a general-purpose CBOR library, this codec is hand-coded over
// bytecursor/varint rather than built on reflection: CBOR tag 42 (the CID
// link escape) must never be lost or reordered, which a reflective
// encoder keyed on Go struct shape cannot guarantee for a tagged-union
// value type like ipld.Node.
package dagcbor

import (
	"fmt"

	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/codec"
	"github.com/argumentcomputer/sp-ipld/digest"
	"github.com/argumentcomputer/sp-ipld/ipld"
	"github.com/argumentcomputer/sp-ipld/multihash"
)

// Code is the multicodec code for dag-cbor.
const Code codec.Code = 0x71

// CidTagNumber is the CBOR tag used to mark a CID payload.
const CidTagNumber = 42

func init() {
	codec.Register(Codec{})
}

// Codec is the dag-cbor Codec implementation, registered under Code.
type Codec struct{}

// Code fulfills codec.Codec.
func (Codec) Code() codec.Code { return Code }

// Encode fulfills codec.Codec.
func (Codec) Encode(n ipld.Node) ([]byte, error) { return Marshal(n) }

// Decode fulfills codec.Codec.
func (Codec) Decode(data []byte) (ipld.Node, error) { return Unmarshal(data) }

// References fulfills codec.Codec.
func (Codec) References(data []byte, set map[cid.Cid]struct{}) error {
	return codec.DefaultReferences(Unmarshal, data, set)
}

// Skip fulfills codec.SkipOne by calling SkipOne, which decodes the first
// value in full and discards it.
func (Codec) Skip(data []byte) (int, error) {
	return SkipOne(data)
}

// Marshal returns the canonical DAG-CBOR encoding of n.
func Marshal(n ipld.Node) ([]byte, error) {
	e := newEncoder()
	if err := e.encodeNode(n); err != nil {
		return nil, err
	}
	return e.cur.IntoInner(), nil
}

// Unmarshal parses data into a Node using default decode options.
// It fails with a TrailingBytesError if data contains bytes after the
// first (and only expected) CBOR value.
func Unmarshal(data []byte) (ipld.Node, error) {
	return DecOptions{}.Unmarshal(data)
}

// DecOptions bounds how much a decode will trust an input to contain,
// guarding against malicious or corrupt inputs claiming huge sizes.
type DecOptions struct {
	// MaxDepth caps nested container depth. 0 uses ipld.DefaultMaxDepth.
	MaxDepth int
	// MaxStringLen caps a single text string's byte length. 0 uses 16 MiB.
	MaxStringLen int
	// MaxBytesLen caps a single byte string's length. 0 uses 16 MiB.
	MaxBytesLen int
	// MaxListLen caps a single list's element count. 0 uses 1 Mi entries.
	MaxListLen int
	// MaxMapPairs caps a single map's entry count. 0 uses 1 Mi entries.
	MaxMapPairs int
}

const (
	defaultMaxStringLen = 16 << 20
	defaultMaxBytesLen  = 16 << 20
	defaultMaxListLen   = 1 << 20
	defaultMaxMapPairs  = 1 << 20
)

func (o DecOptions) withDefaults() DecOptions {
	if o.MaxDepth == 0 {
		o.MaxDepth = ipld.DefaultMaxDepth
	}
	if o.MaxStringLen == 0 {
		o.MaxStringLen = defaultMaxStringLen
	}
	if o.MaxBytesLen == 0 {
		o.MaxBytesLen = defaultMaxBytesLen
	}
	if o.MaxListLen == 0 {
		o.MaxListLen = defaultMaxListLen
	}
	if o.MaxMapPairs == 0 {
		o.MaxMapPairs = defaultMaxMapPairs
	}
	return o
}

// Unmarshal parses data into a Node under these options.
func (o DecOptions) Unmarshal(data []byte) (ipld.Node, error) {
	o = o.withDefaults()
	d := newDecoder(data, o)
	n, err := d.decodeValue(0)
	if err != nil {
		return ipld.Node{}, err
	}
	if d.cur.Position() != int64(d.cur.Len()) {
		return ipld.Node{}, &TrailingBytesError{}
	}
	return n, nil
}

// CID computes the dag-cbor CID for n: hash the canonical encoding of n
// with hashCode and wrap the result as a v1 CID with codec Code.
func CID(n ipld.Node, hashCode uint64) (cid.Cid, error) {
	b, err := Marshal(n)
	if err != nil {
		return cid.Cid{}, err
	}
	mh, err := multihash.Sum(hashCode, b)
	if err != nil {
		return cid.Cid{}, err
	}
	return cid.NewV1(uint64(Code), mh), nil
}

// DefaultHashCode is the hash function CID uses when the caller doesn't
// need a specific one: BLAKE2b-256, matching the reference
// implementation's dag_cbor::cid helper.
const DefaultHashCode = uint64(digest.Blake2b_256)

func unreachable(format string, args ...any) error {
	return fmt.Errorf("dagcbor: unreachable: "+format, args...)
}
