// Package dagjson implements DAG-JSON: a restricted JSON encoding of an
// IPLD value using the `{"/": ...}` link escape and the
// `{"/": {"bytes": ...}}` bytes escape, matching dagcbor's canonical
// DAG-CBOR codec but over a text wire format.
package dagjson

import (
	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/codec"
	"github.com/argumentcomputer/sp-ipld/ipld"
	"github.com/argumentcomputer/sp-ipld/multihash"
)

// Code is the multicodec code for dag-json.
const Code codec.Code = 0x0129

// LinkKey is the single JSON object key that marks a link or bytes escape.
const LinkKey = "/"

// BytesKey is the nested key under LinkKey that marks a bytes escape.
const BytesKey = "bytes"

func init() {
	codec.Register(Codec{})
}

// Codec is the dag-json Codec implementation, registered under Code.
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

// Marshal returns the DAG-JSON encoding of n.
func Marshal(n ipld.Node) ([]byte, error) {
	e := &encoder{}
	if err := e.encodeNode(n); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// Unmarshal parses data into a Node using default decode options. It
// fails with a TrailingBytesError if data contains anything beyond the
// single JSON value.
func Unmarshal(data []byte) (ipld.Node, error) {
	return DecOptions{}.Unmarshal(data)
}

// DecOptions bounds how much a decode will trust an input to contain.
type DecOptions struct {
	// MaxDepth caps nested container depth. 0 uses ipld.DefaultMaxDepth.
	MaxDepth int
	// MaxStringLen caps a single string's byte length. 0 uses 16 MiB.
	MaxStringLen int
	// MaxListLen caps a single list's element count. 0 uses 1 Mi entries.
	MaxListLen int
	// MaxMapPairs caps a single object's entry count. 0 uses 1 Mi entries.
	MaxMapPairs int
}

const (
	defaultMaxStringLen = 16 << 20
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
	d := newJSONDecoder(data, o)
	n, err := d.decodeValue(0)
	if err != nil {
		return ipld.Node{}, err
	}
	if err := d.expectEOF(); err != nil {
		return ipld.Node{}, err
	}
	return n, nil
}

// CID computes the dag-json CID for n: hash the encoding of n with
// hashCode and wrap the result as a v1 CID with codec Code.
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
