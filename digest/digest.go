// Package digest supplies the uniform hasher contract multihash is built
// on: a multihash code paired with an updatable hasher that finalizes to a
// fixed-size digest. The concrete hash functions are external
// collaborators (stdlib crypto/sha256+sha512, golang.org/x/crypto's sha3
// and blake2b, lukechampine.com/blake3); this package only supplies the
// uniform dispatch by code.
package digest

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Code is a multihash function code, per the multicodec table.
type Code uint64

// Codes this package can compute a digest for.
const (
	Identity    Code = 0x00
	Sha2_256    Code = 0x12
	Sha2_512    Code = 0x13
	Sha3_512    Code = 0x14
	Sha3_256    Code = 0x16
	Blake2b_256 Code = 0xb220
	Blake2b_512 Code = 0xb240
	Blake3_256  Code = 0x1e
)

// UnknownCodeError is returned when no hasher is registered for a code.
type UnknownCodeError struct {
	Code Code
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("digest: unknown multihash code 0x%x", uint64(e.Code))
}

// Digest is a stateful hasher identified by its multihash code.
type Digest interface {
	// Code returns the multihash code this digest was built for.
	Code() Code
	// Update feeds more data into the running hash.
	Update(p []byte)
	// Finalize returns the digest bytes. It does not reset the hasher.
	Finalize() []byte
}

type stdDigest struct {
	code Code
	h    hash.Hash
}

func (d *stdDigest) Code() Code       { return d.code }
func (d *stdDigest) Update(p []byte)  { d.h.Write(p) }
func (d *stdDigest) Finalize() []byte { return d.h.Sum(nil) }

type identityDigest struct {
	buf []byte
}

func (d *identityDigest) Code() Code       { return Identity }
func (d *identityDigest) Update(p []byte)  { d.buf = append(d.buf, p...) }
func (d *identityDigest) Finalize() []byte { return d.buf }

// New returns a fresh Digest for code, or an UnknownCodeError if the code
// is not one this package can compute.
func New(code Code) (Digest, error) {
	switch code {
	case Identity:
		return &identityDigest{}, nil
	case Sha2_256:
		return &stdDigest{code, sha256.New()}, nil
	case Sha2_512:
		return &stdDigest{code, sha512.New()}, nil
	case Sha3_256:
		return &stdDigest{code, sha3.New256()}, nil
	case Sha3_512:
		return &stdDigest{code, sha3.New512()}, nil
	case Blake2b_256:
		h, _ := blake2b.New256(nil)
		return &stdDigest{code, h}, nil
	case Blake2b_512:
		h, _ := blake2b.New512(nil)
		return &stdDigest{code, h}, nil
	case Blake3_256:
		return &stdDigest{code, blake3.New(32, nil)}, nil
	default:
		return nil, &UnknownCodeError{Code: code}
	}
}

// Sum is a convenience wrapper that hashes data in one call.
func Sum(code Code, data []byte) ([]byte, error) {
	d, err := New(code)
	if err != nil {
		return nil, err
	}
	d.Update(data)
	return d.Finalize(), nil
}
