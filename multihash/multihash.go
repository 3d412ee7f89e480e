// Package multihash implements the self-describing digest framing IPLD
// CIDs embed: a varint hash function code, a varint digest size, and the
// digest bytes themselves.
//
// https://github.com/multiformats/multihash
package multihash

import (
	"bytes"
	"fmt"
	"io"

	"github.com/argumentcomputer/sp-ipld/digest"
	"github.com/argumentcomputer/sp-ipld/varint"
)

// MaxDigestSize is the largest digest this package allocates storage for.
// It covers every hasher in the digest package, including BLAKE2b-512 and
// SHA-512. Go has no const-generic array length to parameterize this the
// way the original Rust implementation parameterizes Multihash<S>, so a
// single generous fixed width stands in for it; see DESIGN.md.
const MaxDigestSize = 64

// InvalidSizeError is returned when a digest is too large to fit in
// MaxDigestSize, too large to fit in a single byte, or a FromBytes call
// finds trailing data after the framed multihash.
type InvalidSizeError struct {
	Size int
	Msg  string
}

func (e *InvalidSizeError) Error() string {
	return fmt.Sprintf("multihash: invalid size %d: %s", e.Size, e.Msg)
}

// Multihash is a framed (code, size, digest) value with a fixed maximum
// allocated digest width.
type Multihash struct {
	code   uint64
	size   uint8
	digest [MaxDigestSize]byte
}

// Wrap frames digestBytes under code. It fails with InvalidSizeError if
// digestBytes is larger than MaxDigestSize or larger than 255 bytes (the
// largest size a single varint byte of this framing's typical use allows
// us to store in size's uint8 field).
func Wrap(code uint64, digestBytes []byte) (Multihash, error) {
	if len(digestBytes) > MaxDigestSize {
		return Multihash{}, &InvalidSizeError{Size: len(digestBytes), Msg: "exceeds max allocated digest width"}
	}
	if len(digestBytes) > 255 {
		return Multihash{}, &InvalidSizeError{Size: len(digestBytes), Msg: "exceeds 255 byte digest size limit"}
	}
	var mh Multihash
	mh.code = code
	mh.size = uint8(len(digestBytes))
	copy(mh.digest[:], digestBytes)
	return mh, nil
}

// Sum hashes data with the hasher registered for code and wraps the
// result.
func Sum(code uint64, data []byte) (Multihash, error) {
	sum, err := digest.Sum(digest.Code(code), data)
	if err != nil {
		return Multihash{}, err
	}
	return Wrap(code, sum)
}

// Code returns the multihash function code.
func (m Multihash) Code() uint64 { return m.code }

// Size returns the actual digest length (not the allocated width).
func (m Multihash) Size() uint8 { return m.size }

// Digest returns the digest bytes. The returned slice aliases m; callers
// must not assume it is safe to mutate.
func (m Multihash) Digest() []byte { return m.digest[:m.size] }

// Equal compares (code, digest[:size]) only, never the unused tail of the
// allocated buffer.
func (m Multihash) Equal(o Multihash) bool {
	return m.code == o.code && m.size == o.size && bytes.Equal(m.Digest(), o.Digest())
}

// Write emits varint(code) || varint(size) || digest[:size] to w.
func (m Multihash) Write(w io.Writer) error {
	buf := varint.Append(nil, m.code)
	buf = varint.Append(buf, uint64(m.size))
	buf = append(buf, m.Digest()...)
	_, err := w.Write(buf)
	return err
}

// Bytes returns the framed (code, size, digest) encoding.
func (m Multihash) Bytes() []byte {
	var buf bytes.Buffer
	_ = m.Write(&buf)
	return buf.Bytes()
}

type byteReader interface {
	io.Reader
	io.ByteReader
}

// Read parses a framed multihash from r. It fails with InvalidSizeError if
// the stated size exceeds MaxDigestSize or 255.
func Read(r byteReader) (Multihash, error) {
	code, err := varint.ReadUint64(r)
	if err != nil {
		return Multihash{}, err
	}
	size, err := varint.ReadUint8(r)
	if err != nil {
		return Multihash{}, err
	}
	if size > 255 {
		return Multihash{}, &InvalidSizeError{Size: int(size), Msg: "exceeds 255 byte digest size limit"}
	}
	if size > MaxDigestSize {
		return Multihash{}, &InvalidSizeError{Size: int(size), Msg: "exceeds max allocated digest width"}
	}
	var mh Multihash
	mh.code = code
	mh.size = uint8(size)
	if _, err := io.ReadFull(r, mh.digest[:size]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return Multihash{}, io.ErrUnexpectedEOF
		}
		return Multihash{}, err
	}
	return mh, nil
}

// FromBytes parses a multihash occupying the whole of b.
//
// Only inputs strictly longer than the framed multihash are rejected; a
// buffer that ends exactly where the multihash ends is valid. (The
// reference implementation this was distilled from rejects the
// exact-length case too, via an off-by-one in its length check; that
// behavior is deliberately not reproduced here. See DESIGN.md.)
func FromBytes(b []byte) (Multihash, error) {
	r := bytes.NewReader(b)
	mh, err := Read(r)
	if err != nil {
		return Multihash{}, err
	}
	if r.Len() > 0 {
		return Multihash{}, &InvalidSizeError{Size: len(b), Msg: "trailing bytes after multihash"}
	}
	return mh, nil
}
