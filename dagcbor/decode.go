package dagcbor

import (
	"encoding/binary"
	"io"
	"math"
	"math/big"
	"unicode/utf8"

	"github.com/argumentcomputer/sp-ipld/bytecursor"
	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/ipld"
)

// decoder reads a Node back off a bytecursor.Cursor, the read-side
// counterpart of the encoder's write cursor.
type decoder struct {
	cur  *bytecursor.Cursor
	opts DecOptions
}

func newDecoder(data []byte, opts DecOptions) *decoder {
	return &decoder{cur: bytecursor.New(data), opts: opts}
}

func (d *decoder) readByte() (byte, error) {
	b, err := d.cur.ReadByte()
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return b, err
}

func (d *decoder) readN(n int) ([]byte, error) {
	if n < 0 {
		return nil, io.ErrUnexpectedEOF
	}
	b := make([]byte, n)
	if err := d.cur.ReadExact(b); err != nil {
		return nil, err
	}
	return b, nil
}

// head is a decoded major-type/argument pair.
type head struct {
	major byte
	arg   uint64
	// simple carries the raw additional-info value for major 7, where
	// arg's minimal-width rules don't apply the same way (20/21/22/27).
	simple byte
}

// readHead reads one CBOR initial byte plus any following argument bytes,
// enforcing that the argument is encoded in its minimal width.
func (d *decoder) readHead() (head, error) {
	b, err := d.readByte()
	if err != nil {
		return head{}, err
	}
	major := b >> 5
	info := b & 0x1f

	if major == majorSimple {
		switch info {
		case 20, 21, 22: // false, true, null
			return head{major: major, simple: info}, nil
		case 27: // float64
			return head{major: major, simple: info}, nil
		case 25, 26: // half/single float: not canonical dag-cbor
			return head{}, &InvalidFloatWidthError{Width: widthFor(info)}
		case 31:
			return head{}, &IndefiniteLengthNotAllowedError{}
		default:
			return head{}, &InvalidCborMajorError{Byte: b}
		}
	}

	switch {
	case info < 24:
		return head{major: major, arg: uint64(info)}, nil
	case info == 24:
		raw, err := d.readN(1)
		if err != nil {
			return head{}, err
		}
		arg := uint64(raw[0])
		if arg < 24 {
			return head{}, &NonCanonicalError{Context: "1-byte argument could fit inline"}
		}
		return head{major: major, arg: arg}, nil
	case info == 25:
		raw, err := d.readN(2)
		if err != nil {
			return head{}, err
		}
		arg := uint64(binary.BigEndian.Uint16(raw))
		if arg <= 0xff {
			return head{}, &NonCanonicalError{Context: "2-byte argument could fit in 1 byte"}
		}
		return head{major: major, arg: arg}, nil
	case info == 26:
		raw, err := d.readN(4)
		if err != nil {
			return head{}, err
		}
		arg := uint64(binary.BigEndian.Uint32(raw))
		if arg <= 0xffff {
			return head{}, &NonCanonicalError{Context: "4-byte argument could fit in 2 bytes"}
		}
		return head{major: major, arg: arg}, nil
	case info == 27:
		raw, err := d.readN(8)
		if err != nil {
			return head{}, err
		}
		arg := binary.BigEndian.Uint64(raw)
		if arg <= 0xffffffff {
			return head{}, &NonCanonicalError{Context: "8-byte argument could fit in 4 bytes"}
		}
		return head{major: major, arg: arg}, nil
	case info == 31:
		return head{}, &IndefiniteLengthNotAllowedError{}
	default:
		return head{}, &InvalidCborMajorError{Byte: b}
	}
}

func widthFor(info byte) int {
	switch info {
	case 25:
		return 2
	case 26:
		return 4
	default:
		return 8
	}
}

// decodeValue reads one CBOR value at the given nesting depth.
func (d *decoder) decodeValue(depth int) (ipld.Node, error) {
	if depth > d.opts.MaxDepth {
		return ipld.Node{}, &RecursionLimitError{MaxDepth: d.opts.MaxDepth}
	}
	h, err := d.readHead()
	if err != nil {
		return ipld.Node{}, err
	}
	switch h.major {
	case majorUint:
		return ipld.NewUint(h.arg), nil
	case majorNegInt:
		// value = -(arg+1); arg can be up to 2^64-1, so -(arg+1) can reach
		// -(2^64), which doesn't fit an int64 or uint64 and needs big.Int.
		v := new(big.Int).SetUint64(h.arg)
		v.Add(v, big.NewInt(1))
		v.Neg(v)
		return ipld.NewBigInt(v), nil
	case majorBytes:
		return d.decodeBytes(h.arg)
	case majorText:
		return d.decodeText(h.arg)
	case majorList:
		return d.decodeList(h.arg, depth)
	case majorMap:
		return d.decodeMap(h.arg, depth)
	case majorTag:
		return d.decodeTagged(h.arg, depth)
	case majorSimple:
		return d.decodeSimple(h.simple)
	default:
		return ipld.Node{}, unreachable("decodeValue: major %d", h.major)
	}
}

func (d *decoder) decodeSimple(info byte) (ipld.Node, error) {
	switch info {
	case 20:
		return ipld.NewBool(false), nil
	case 21:
		return ipld.NewBool(true), nil
	case 22:
		return ipld.Null, nil
	case 27:
		raw, err := d.readN(8)
		if err != nil {
			return ipld.Node{}, err
		}
		bits := binary.BigEndian.Uint64(raw)
		return ipld.NewFloat(math.Float64frombits(bits)), nil
	default:
		return ipld.Node{}, unreachable("decodeSimple: info %d", info)
	}
}

func (d *decoder) decodeBytes(n uint64) (ipld.Node, error) {
	if n > uint64(d.opts.MaxBytesLen) {
		return ipld.Node{}, &LimitExceededError{What: "byte string", Limit: d.opts.MaxBytesLen}
	}
	raw, err := d.readN(int(n))
	if err != nil {
		return ipld.Node{}, err
	}
	return ipld.NewBytes(raw), nil
}

func (d *decoder) decodeText(n uint64) (ipld.Node, error) {
	if n > uint64(d.opts.MaxStringLen) {
		return ipld.Node{}, &LimitExceededError{What: "text string", Limit: d.opts.MaxStringLen}
	}
	raw, err := d.readN(int(n))
	if err != nil {
		return ipld.Node{}, err
	}
	if !utf8.Valid(raw) {
		return ipld.Node{}, &InvalidUtf8Error{}
	}
	return ipld.NewString(string(raw)), nil
}

func (d *decoder) decodeList(n uint64, depth int) (ipld.Node, error) {
	if n > uint64(d.opts.MaxListLen) {
		return ipld.Node{}, &LimitExceededError{What: "list", Limit: d.opts.MaxListLen}
	}
	items := make([]ipld.Node, 0, n)
	for i := uint64(0); i < n; i++ {
		item, err := d.decodeValue(depth + 1)
		if err != nil {
			return ipld.Node{}, err
		}
		items = append(items, item)
	}
	return ipld.NewList(items), nil
}

func (d *decoder) decodeMap(n uint64, depth int) (ipld.Node, error) {
	if n > uint64(d.opts.MaxMapPairs) {
		return ipld.Node{}, &LimitExceededError{What: "map", Limit: d.opts.MaxMapPairs}
	}
	entries := make([]ipld.Entry, 0, n)
	var prevKey string
	for i := uint64(0); i < n; i++ {
		kh, err := d.readHead()
		if err != nil {
			return ipld.Node{}, err
		}
		if kh.major != majorText {
			return ipld.Node{}, &InvalidCborMajorError{Byte: kh.major << 5}
		}
		keyNode, err := d.decodeText(kh.arg)
		if err != nil {
			return ipld.Node{}, err
		}
		key := keyNode.String()
		if i > 0 {
			switch {
			case key == prevKey:
				return ipld.Node{}, &DuplicateKeyError{Key: key}
			case key < prevKey:
				return ipld.Node{}, &NonCanonicalError{Context: "map keys not in ascending order"}
			}
		}
		prevKey = key
		val, err := d.decodeValue(depth + 1)
		if err != nil {
			return ipld.Node{}, err
		}
		entries = append(entries, ipld.Entry{Key: key, Value: val})
	}
	n2, err := ipld.NewStringMapFromEntries(entries)
	if err != nil {
		return ipld.Node{}, err
	}
	return n2, nil
}

func (d *decoder) decodeTagged(tag uint64, depth int) (ipld.Node, error) {
	if tag != CidTagNumber {
		return ipld.Node{}, &UnknownTagError{Tag: tag}
	}
	h, err := d.readHead()
	if err != nil {
		return ipld.Node{}, err
	}
	if h.major != majorBytes {
		return ipld.Node{}, &InvalidLinkError{Reason: "tag 42 payload is not a byte string"}
	}
	raw, err := d.readN(int(h.arg))
	if err != nil {
		return ipld.Node{}, err
	}
	if len(raw) == 0 || raw[0] != 0x00 {
		return ipld.Node{}, &InvalidLinkError{Reason: "missing multibase-identity 0x00 prefix"}
	}
	c, err := cid.ParseBytes(raw[1:])
	if err != nil {
		return ipld.Node{}, &InvalidLinkError{Reason: err.Error()}
	}
	return ipld.NewLink(c), nil
}
