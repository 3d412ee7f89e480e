package cid_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/multibase"
	"github.com/argumentcomputer/sp-ipld/multihash"
)

func TestV1StringParseRoundTrip(t *testing.T) {
	mh, err := multihash.Sum(0x12, []byte("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewV1(cid.CodecDagCBOR, mh)

	s := c.String()
	if s[0] != 'b' {
		t.Fatalf("v1 text form should default to base32, got prefix %q", s[0])
	}
	back, err := cid.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if !c.Equal(back) {
		t.Fatalf("round trip mismatch: %s != %s", c, back)
	}
}

func TestV1BytesParseRoundTrip(t *testing.T) {
	mh, err := multihash.Sum(0x12, []byte("data"))
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewV1(cid.CodecRaw, mh)
	b := c.Bytes()
	back, err := cid.ParseBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Bytes(), b) {
		t.Fatalf("got %x, want %x", back.Bytes(), b)
	}
}

func TestV0StringHasNoMultibasePrefix(t *testing.T) {
	mh, err := multihash.Sum(0x12, []byte("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewV0(mh)
	s := c.String()
	if s[:2] != "Qm" {
		t.Fatalf("v0 text form should start with Qm, got %q", s)
	}
	back, err := cid.Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	if back.Version() != 0 {
		t.Fatalf("Version = %d, want 0", back.Version())
	}
	if !c.Equal(back) {
		t.Fatalf("round trip mismatch: %s != %s", c, back)
	}
}

func TestParseRejectsMultibaseTaggedV0Shape(t *testing.T) {
	mh, err := multihash.Sum(0x12, []byte("hello world"))
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewV0(mh)
	// Re-encode the same v0 multihash bytes under base32 instead of bare
	// base58btc; v0's shape is only valid in its dedicated textual form,
	// never multibase-tagged.
	tagged, err := multibase.Encode(multibase.Base32, c.Bytes())
	if err != nil {
		t.Fatal(err)
	}
	_, err = cid.Parse(tagged)
	var invalidV0 *cid.InvalidCidV0CodecError
	if !errors.As(err, &invalidV0) {
		t.Fatalf("got %v, want InvalidCidV0CodecError", err)
	}
}

func TestInvalidVersion(t *testing.T) {
	mh, err := multihash.Sum(0x12, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	c := cid.NewV1(cid.CodecRaw, mh)
	b := c.Bytes()
	b[0] = 7 // corrupt the version varint
	_, err = cid.ParseBytes(b)
	var invalidVersion *cid.InvalidCidVersionError
	if !errors.As(err, &invalidVersion) {
		t.Fatalf("got %v, want InvalidCidVersionError", err)
	}
}

func TestLessIsTotalOrder(t *testing.T) {
	mhA, _ := multihash.Sum(0x12, []byte("a"))
	mhB, _ := multihash.Sum(0x12, []byte("b"))
	a := cid.NewV1(cid.CodecRaw, mhA)
	b := cid.NewV1(cid.CodecRaw, mhB)
	if a.Less(b) == b.Less(a) {
		t.Fatal("Less should be asymmetric for distinct CIDs")
	}
}

func TestTextMarshalUnmarshal(t *testing.T) {
	mh, _ := multihash.Sum(0x12, []byte("marshal"))
	c := cid.NewV1(cid.CodecDagJSON, mh)

	text, err := c.MarshalText()
	if err != nil {
		t.Fatal(err)
	}
	var back cid.Cid
	if err := back.UnmarshalText(text); err != nil {
		t.Fatal(err)
	}
	if !c.Equal(back) {
		t.Fatalf("round trip mismatch")
	}
}
