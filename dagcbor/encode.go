package dagcbor

import (
	"encoding/binary"
	"math"
	"math/big"

	"github.com/argumentcomputer/sp-ipld/bytecursor"
	"github.com/argumentcomputer/sp-ipld/ipld"
)

// major CBOR types, per RFC 8949 §3.
const (
	majorUint   = 0
	majorNegInt = 1
	majorBytes  = 2
	majorText   = 3
	majorList   = 4
	majorMap    = 5
	majorTag    = 6
	majorSimple = 7
)

var (
	maxUint64 = new(big.Int).SetUint64(^uint64(0))
	minInt65  = func() *big.Int {
		// -(2^64), the smallest value DAG-CBOR's negative-integer major
		// type can represent (encoded as -(n+1) over a uint64 n).
		n := new(big.Int).SetUint64(^uint64(0))
		n.Add(n, big.NewInt(1))
		return n.Neg(n)
	}()
)

// encoder writes the canonical DAG-CBOR encoding of a Node onto a
// bytecursor.Cursor, the same owned-buffer primitive the decoder reads
// from.
type encoder struct {
	cur *bytecursor.Cursor
}

func newEncoder() *encoder { return &encoder{cur: bytecursor.New(nil)} }

// encodeNode appends the canonical DAG-CBOR encoding of n to e.cur.
func (e *encoder) encodeNode(n ipld.Node) error {
	switch n.Kind() {
	case ipld.KindNull:
		return e.cur.WriteByte(0xf6)
	case ipld.KindBool:
		if n.Bool() {
			return e.cur.WriteByte(0xf5)
		}
		return e.cur.WriteByte(0xf4)
	case ipld.KindInt:
		return e.encodeInt(n.Int())
	case ipld.KindFloat:
		var tmp [9]byte
		tmp[0] = 0xfb
		binary.BigEndian.PutUint64(tmp[1:], math.Float64bits(n.Float()))
		e.cur.WriteAll(tmp[:])
		return nil
	case ipld.KindString:
		s := n.String()
		e.writeHead(majorText, uint64(len(s)))
		e.cur.WriteAll([]byte(s))
		return nil
	case ipld.KindBytes:
		b := n.Bytes()
		e.writeHead(majorBytes, uint64(len(b)))
		e.cur.WriteAll(b)
		return nil
	case ipld.KindList:
		items := n.List()
		e.writeHead(majorList, uint64(len(items)))
		for _, item := range items {
			if err := e.encodeNode(item); err != nil {
				return err
			}
		}
		return nil
	case ipld.KindMap:
		entries := n.Entries()
		e.writeHead(majorMap, uint64(len(entries)))
		for _, ent := range entries {
			e.writeHead(majorText, uint64(len(ent.Key)))
			e.cur.WriteAll([]byte(ent.Key))
			if err := e.encodeNode(ent.Value); err != nil {
				return err
			}
		}
		return nil
	case ipld.KindLink:
		return e.encodeLink(n)
	default:
		return unreachable("encodeNode: kind %v", n.Kind())
	}
}

// encodeInt writes v using the unsigned major type for v >= 0 and the
// negative major type (encoding -(v+1)) for v < 0, minimally widened, per
// RFC 8949's core deterministic encoding.
func (e *encoder) encodeInt(v *big.Int) error {
	if v.Sign() >= 0 {
		if v.Cmp(maxUint64) > 0 {
			return &NumberOutOfRangeError{}
		}
		e.writeHead(majorUint, v.Uint64())
		return nil
	}
	if v.Cmp(minInt65) < 0 {
		return &NumberOutOfRangeError{}
	}
	// arg = -(v+1), which fits in a uint64 since v >= -(2^64).
	arg := new(big.Int).Neg(v)
	arg.Sub(arg, big.NewInt(1))
	e.writeHead(majorNegInt, arg.Uint64())
	return nil
}

// encodeLink writes a Link as tag(42)(bytes(0x00 || cid-bytes)), the
// multibase-identity-prefixed CID payload CBOR uses to keep the byte
// string self-describing outside of CBOR too.
func (e *encoder) encodeLink(n ipld.Node) error {
	c := n.Link()
	payload := append([]byte{0x00}, c.Bytes()...)
	e.writeHead(majorTag, CidTagNumber)
	e.writeHead(majorBytes, uint64(len(payload)))
	e.cur.WriteAll(payload)
	return nil
}

// writeHead appends the minimally-widened major/argument header for
// (major, arg): arg inline for 0-23, else the smallest of 1/2/4/8
// following bytes that holds it without padding.
func (e *encoder) writeHead(major byte, arg uint64) {
	switch {
	case arg < 24:
		e.cur.WriteByte(major<<5 | byte(arg))
	case arg <= 0xff:
		e.cur.WriteAll([]byte{major<<5 | 24, byte(arg)})
	case arg <= 0xffff:
		var tmp [3]byte
		tmp[0] = major<<5 | 25
		binary.BigEndian.PutUint16(tmp[1:], uint16(arg))
		e.cur.WriteAll(tmp[:])
	case arg <= 0xffffffff:
		var tmp [5]byte
		tmp[0] = major<<5 | 26
		binary.BigEndian.PutUint32(tmp[1:], uint32(arg))
		e.cur.WriteAll(tmp[:])
	default:
		var tmp [9]byte
		tmp[0] = major<<5 | 27
		binary.BigEndian.PutUint64(tmp[1:], arg)
		e.cur.WriteAll(tmp[:])
	}
}
