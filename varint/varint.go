// Package varint implements the unsigned-varint encoding IPLD uses for
// multihash and CID framing: 7-bit little-endian groups with the
// continuation bit set on every byte but the last, and no zig-zag.
package varint

import (
	"errors"
	"io"

	uvarint "github.com/multiformats/go-varint"
)

// ErrOverflow is returned when a varint would require more than the
// permitted number of bytes, or its high bits don't fit in a uint64.
var ErrOverflow = errors.New("varint: overflow")

// ErrNotMinimal is returned when a varint was not encoded in its
// shortest form (a trailing zero continuation byte).
var ErrNotMinimal = errors.New("varint: not minimally encoded")

// maxLenUint64 is the most bytes a read_u64 call will consume: ceil(64/7).
const maxLenUint64 = 10

// maxLenUint8 is the most bytes a read_u8 call will consume: ceil(8/7).
const maxLenUint8 = 2

// ReadUint64 reads an unsigned varint from r, up to 10 bytes.
// It fails with ErrOverflow if the stream does not terminate in time or the
// terminating byte's high bits overflow a uint64, and with ErrNotMinimal if
// the encoding contains a trailing zero byte.
func ReadUint64(r io.ByteReader) (uint64, error) {
	return readUvarint(r, maxLenUint64)
}

// ReadUint8 is ReadUint64 restricted to a 2-byte cap, for framing fields
// (e.g. multihash size) that are never realistically written wider.
func ReadUint8(r io.ByteReader) (uint64, error) {
	return readUvarint(r, maxLenUint8)
}

func readUvarint(r io.ByteReader, capBytes int) (uint64, error) {
	var x uint64
	var s uint
	for i := 0; ; i++ {
		if i >= capBytes {
			return 0, ErrOverflow
		}
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && i != 0 {
				return 0, io.ErrUnexpectedEOF
			}
			return 0, err
		}
		if b < 0x80 {
			if b == 0 && i > 0 {
				return 0, ErrNotMinimal
			}
			if i == maxLenUint64-1 && b > 1 {
				// 10th byte: only bit 0 may be set, the rest would
				// overflow 64 bits.
				return 0, ErrOverflow
			}
			return x | uint64(b)<<s, nil
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
}

// Append appends the minimal-length varint encoding of x to buf and
// returns the extended slice.
func Append(buf []byte, x uint64) []byte {
	tmp := make([]byte, uvarint.UvarintSize(x))
	uvarint.PutUvarint(tmp, x)
	return append(buf, tmp...)
}

// Size returns the number of bytes the minimal-length varint encoding of x
// occupies.
func Size(x uint64) int {
	return uvarint.UvarintSize(x)
}
