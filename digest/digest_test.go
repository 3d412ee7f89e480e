package digest_test

import (
	"encoding/hex"
	"errors"
	"testing"

	"github.com/argumentcomputer/sp-ipld/digest"
)

var sumCases = []struct {
	name string
	code digest.Code
	data []byte
	want string
}{
	{"sha2-256 empty", digest.Sha2_256, nil, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
	{"identity", digest.Identity, []byte("hello"), hex.EncodeToString([]byte("hello"))},
}

func TestSum(t *testing.T) {
	for _, tt := range sumCases {
		t.Run(tt.name, func(t *testing.T) {
			got, err := digest.Sum(tt.code, tt.data)
			if err != nil {
				t.Fatal(err)
			}
			if hex.EncodeToString(got) != tt.want {
				t.Fatalf("got %x, want %s", got, tt.want)
			}
		})
	}
}

func TestNewUnknownCode(t *testing.T) {
	_, err := digest.New(digest.Code(0xdeadbeef))
	var unknown *digest.UnknownCodeError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownCodeError", err)
	}
}

func TestUpdateIncremental(t *testing.T) {
	d, err := digest.New(digest.Sha2_256)
	if err != nil {
		t.Fatal(err)
	}
	d.Update([]byte("foo"))
	d.Update([]byte("bar"))
	incremental := d.Finalize()

	whole, err := digest.Sum(digest.Sha2_256, []byte("foobar"))
	if err != nil {
		t.Fatal(err)
	}
	if hex.EncodeToString(incremental) != hex.EncodeToString(whole) {
		t.Fatalf("incremental %x != whole %x", incremental, whole)
	}
}

func TestEveryKnownCode(t *testing.T) {
	codes := []digest.Code{
		digest.Identity, digest.Sha2_256, digest.Sha2_512,
		digest.Sha3_256, digest.Sha3_512, digest.Blake2b_256,
		digest.Blake2b_512, digest.Blake3_256,
	}
	for _, code := range codes {
		if _, err := digest.Sum(code, []byte("data")); err != nil {
			t.Fatalf("code 0x%x: %v", uint64(code), err)
		}
	}
}
