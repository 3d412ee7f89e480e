package ipld_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/argumentcomputer/sp-ipld/cid"
	"github.com/argumentcomputer/sp-ipld/ipld"
	"github.com/argumentcomputer/sp-ipld/multihash"
)

func mustCid(t *testing.T, data string) cid.Cid {
	t.Helper()
	mh, err := multihash.Sum(0x12, []byte(data))
	if err != nil {
		t.Fatal(err)
	}
	return cid.NewV1(cid.CodecRaw, mh)
}

func TestKindAccessorsPanicOnMismatch(t *testing.T) {
	n := ipld.NewBool(true)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic calling String() on a Bool node")
		}
	}()
	_ = n.String()
}

func TestEqualAcrossKinds(t *testing.T) {
	cases := []struct {
		name string
		a, b ipld.Node
		want bool
	}{
		{"null=null", ipld.Null, ipld.Null, true},
		{"bool same", ipld.NewBool(true), ipld.NewBool(true), true},
		{"bool diff", ipld.NewBool(true), ipld.NewBool(false), false},
		{"int same", ipld.NewInt(42), ipld.NewBigInt(big.NewInt(42)), true},
		{"string diff", ipld.NewString("a"), ipld.NewString("b"), false},
		{"bytes same", ipld.NewBytes([]byte{1, 2}), ipld.NewBytes([]byte{1, 2}), true},
		{"null!=bool", ipld.Null, ipld.NewBool(false), false},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFloatNaNEqualsItself(t *testing.T) {
	nan := ipld.NewFloat(nan())
	if !nan.Equal(nan) {
		t.Fatal("two NaN floats with the same bit pattern should compare equal")
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func TestStringMapSortedAndUnique(t *testing.T) {
	m, err := ipld.NewStringMap(map[string]ipld.Node{
		"b": ipld.NewInt(2),
		"a": ipld.NewInt(1),
		"c": ipld.NewInt(3),
	})
	if err != nil {
		t.Fatal(err)
	}
	entries := m.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key >= entries[i].Key {
			t.Fatalf("entries not in ascending order: %v", entries)
		}
	}
	v, ok := m.Get("b")
	if !ok || v.Int().Int64() != 2 {
		t.Fatalf("Get(b) = %v, %v", v, ok)
	}
}

func TestStringMapDuplicateKey(t *testing.T) {
	_, err := ipld.NewStringMapFromEntries([]ipld.Entry{
		{Key: "x", Value: ipld.NewInt(1)},
		{Key: "x", Value: ipld.NewInt(2)},
	})
	var dup *ipld.DuplicateKeyError
	if !errors.As(err, &dup) {
		t.Fatalf("got %v, want DuplicateKeyError", err)
	}
}

func TestWalkVisitsListAndMap(t *testing.T) {
	m, err := ipld.NewStringMap(map[string]ipld.Node{
		"k": ipld.NewList([]ipld.Node{ipld.NewInt(1), ipld.NewInt(2)}),
	})
	if err != nil {
		t.Fatal(err)
	}
	var kinds []ipld.Kind
	err = m.Walk(func(n ipld.Node) bool {
		kinds = append(kinds, n.Kind())
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	want := []ipld.Kind{ipld.KindMap, ipld.KindList, ipld.KindInt, ipld.KindInt}
	if len(kinds) != len(want) {
		t.Fatalf("got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("got %v, want %v", kinds, want)
		}
	}
}

func TestWalkDoesNotDescendIntoLink(t *testing.T) {
	c := mustCid(t, "leaf")
	n := ipld.NewList([]ipld.Node{ipld.NewLink(c)})
	count := 0
	err := n.Walk(func(ipld.Node) bool {
		count++
		return true
	})
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 { // the list itself, then the link leaf
		t.Fatalf("visited %d nodes, want 2", count)
	}
}

func TestWalkRecursionLimit(t *testing.T) {
	n := ipld.NewList([]ipld.Node{ipld.NewList(nil)})
	err := n.WalkDepth(1, func(ipld.Node) bool { return true })
	var limit *ipld.RecursionLimitError
	if !errors.As(err, &limit) {
		t.Fatalf("got %v, want RecursionLimitError", err)
	}
}

func TestReferencesCollectsAllLinks(t *testing.T) {
	c1 := mustCid(t, "one")
	c2 := mustCid(t, "two")
	n := ipld.NewList([]ipld.Node{ipld.NewLink(c1), ipld.NewLink(c2), ipld.NewLink(c1)})
	set := map[cid.Cid]struct{}{}
	if err := n.References(set); err != nil {
		t.Fatal(err)
	}
	if len(set) != 2 {
		t.Fatalf("got %d distinct references, want 2", len(set))
	}
}
