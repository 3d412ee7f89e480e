package multibase_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/argumentcomputer/sp-ipld/multibase"
)

var encodeCases = []struct {
	name string
	base multibase.Base
	data []byte
}{
	{"identity", multibase.Identity, []byte("hello")},
	{"base16", multibase.Base16, []byte{0xde, 0xad, 0xbe, 0xef}},
	{"base32", multibase.Base32, []byte("hello world")},
	{"base58btc", multibase.Base58BTC, []byte{0x00, 0x01, 0x02, 0xff}},
	{"base64", multibase.Base64, []byte("arbitrary bytes, not padded to 3")},
	{"base64url", multibase.Base64URL, []byte{0xfb, 0xff}},
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	for _, tt := range encodeCases {
		t.Run(tt.name, func(t *testing.T) {
			s, err := multibase.Encode(tt.base, tt.data)
			if err != nil {
				t.Fatal(err)
			}
			base, data, err := multibase.Decode(s)
			if err != nil {
				t.Fatal(err)
			}
			if base != tt.base {
				t.Fatalf("got base %q, want %q", byte(base), byte(tt.base))
			}
			if !bytes.Equal(data, tt.data) {
				t.Fatalf("got %x, want %x", data, tt.data)
			}
		})
	}
}

func TestDecodeUnknownBase(t *testing.T) {
	_, _, err := multibase.Decode("?notabase")
	var unknown *multibase.UnknownBaseError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownBaseError", err)
	}
}

func TestDecodeEmptyString(t *testing.T) {
	_, _, err := multibase.Decode("")
	var unknown *multibase.UnknownBaseError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownBaseError", err)
	}
}

func TestDecodeInvalidChar(t *testing.T) {
	// 'z' is the base58btc tag; '0' and 'O' are not in its alphabet.
	_, _, err := multibase.Decode("z0OIl")
	var invalid *multibase.InvalidCharError
	if !errors.As(err, &invalid) {
		t.Fatalf("got %v, want InvalidCharError", err)
	}
}
