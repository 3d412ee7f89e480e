// Package ipld defines the IPLD data model: a recursive tagged union over
// the nine IPLD kinds, plus the pre-order traversal and link-collection
// operations every codec in this module builds on.
package ipld

import (
	"math/big"

	"github.com/argumentcomputer/sp-ipld/cid"
)

// Kind identifies which of the nine IPLD variants a Node holds.
//
// Dispatch on Kind is a switch, never an interface method call: the nine
// kinds are a closed set, and adding one is meant to be a breaking change.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
	KindList
	KindMap
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Entry is one key/value pair of a StringMap, always held in ascending
// byte-lexicographic key order.
type Entry struct {
	Key   string
	Value Node
}

// Node is an IPLD value: one of Null, Bool, Integer, Float, String, Bytes,
// List, StringMap, or Link.
//
// The zero Node is Null. Nodes are immutable once constructed; builders
// (NewList, NewStringMap, ...) copy or take ownership of what's passed in,
// matching the "decoder is the sole allocator" ownership model.
type Node struct {
	kind    Kind
	boolean bool
	integer *big.Int
	float   float64
	str     string
	bytes   []byte
	list    []Node
	entries []Entry
	link    cid.Cid
}

// Null is the unit value.
var Null = Node{kind: KindNull}

// NewBool constructs a Bool node.
func NewBool(b bool) Node { return Node{kind: KindBool, boolean: b} }

// NewInt constructs an Integer node from an int64.
func NewInt(n int64) Node { return Node{kind: KindInt, integer: big.NewInt(n)} }

// NewBigInt constructs an Integer node from an arbitrary-precision value.
// The value is copied; the caller may reuse n afterward.
func NewBigInt(n *big.Int) Node { return Node{kind: KindInt, integer: new(big.Int).Set(n)} }

// NewUint constructs an Integer node from a uint64, for values that don't
// fit in an int64 (e.g. up to 2^64-1, which DAG-CBOR permits).
func NewUint(n uint64) Node { return Node{kind: KindInt, integer: new(big.Int).SetUint64(n)} }

// NewFloat constructs a Float node.
func NewFloat(f float64) Node { return Node{kind: KindFloat, float: f} }

// NewString constructs a String node. s must be valid UTF-8; callers
// decoding untrusted bytes should validate before calling this.
func NewString(s string) Node { return Node{kind: KindString, str: s} }

// NewBytes constructs a Bytes node. b is copied.
func NewBytes(b []byte) Node {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Node{kind: KindBytes, bytes: cp}
}

// NewList constructs a List node. items is copied.
func NewList(items []Node) Node {
	cp := make([]Node, len(items))
	copy(cp, items)
	return Node{kind: KindList, list: cp}
}

// NewLink constructs a Link node.
func NewLink(c cid.Cid) Node { return Node{kind: KindLink, link: c} }

// DuplicateKeyError is returned by NewStringMap when two entries share a
// key.
type DuplicateKeyError struct {
	Key string
}

func (e *DuplicateKeyError) Error() string {
	return "ipld: duplicate map key " + e.Key
}

// NewStringMap constructs a StringMap node from key/value pairs in any
// order. Keys must be unique; the entries are stored sorted in ascending
// byte-lexicographic order, which is the canonical DAG-CBOR iteration
// order.
func NewStringMap(pairs map[string]Node) (Node, error) {
	entries := make([]Entry, 0, len(pairs))
	for k, v := range pairs {
		entries = append(entries, Entry{Key: k, Value: v})
	}
	return newSortedStringMap(entries)
}

// NewStringMapFromEntries is like NewStringMap but preserves nothing about
// the input order either; entries are re-sorted and checked for
// duplicates. It exists for callers (e.g. decoders) that already have an
// []Entry rather than a map.
func NewStringMapFromEntries(entries []Entry) (Node, error) {
	cp := make([]Entry, len(entries))
	copy(cp, entries)
	return newSortedStringMap(cp)
}

func newSortedStringMap(entries []Entry) (Node, error) {
	sortEntries(entries)
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Key == entries[i].Key {
			return Node{}, &DuplicateKeyError{Key: entries[i].Key}
		}
	}
	return Node{kind: KindMap, entries: entries}, nil
}

func sortEntries(entries []Entry) {
	// Insertion sort is fine here: maps are small in practice, and this
	// keeps the dependency-free stdlib-only sort explicit rather than
	// reaching for sort.Slice with a closure on every call.
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && entries[j-1].Key > entries[j].Key; j-- {
			entries[j-1], entries[j] = entries[j], entries[j-1]
		}
	}
}

// Kind returns which variant this Node holds.
func (n Node) Kind() Kind { return n.kind }

// IsNull reports whether n is the Null variant.
func (n Node) IsNull() bool { return n.kind == KindNull }

// Bool returns the boolean value. It panics if Kind() != KindBool.
func (n Node) Bool() bool {
	n.mustBe(KindBool)
	return n.boolean
}

// Int returns the integer value. It panics if Kind() != KindInt.
func (n Node) Int() *big.Int {
	n.mustBe(KindInt)
	return n.integer
}

// Float returns the float value. It panics if Kind() != KindFloat.
func (n Node) Float() float64 {
	n.mustBe(KindFloat)
	return n.float
}

// String returns the string value. It panics if Kind() != KindString.
func (n Node) String() string {
	n.mustBe(KindString)
	return n.str
}

// Bytes returns the byte value. It panics if Kind() != KindBytes.
func (n Node) Bytes() []byte {
	n.mustBe(KindBytes)
	return n.bytes
}

// List returns the list elements. It panics if Kind() != KindList.
func (n Node) List() []Node {
	n.mustBe(KindList)
	return n.list
}

// Entries returns the map entries in ascending key order. It panics if
// Kind() != KindMap.
func (n Node) Entries() []Entry {
	n.mustBe(KindMap)
	return n.entries
}

// Get looks up a key in a StringMap node, returning (value, true) if
// present. It panics if Kind() != KindMap.
func (n Node) Get(key string) (Node, bool) {
	n.mustBe(KindMap)
	lo, hi := 0, len(n.entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case n.entries[mid].Key == key:
			return n.entries[mid].Value, true
		case n.entries[mid].Key < key:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return Node{}, false
}

// Link returns the linked Cid. It panics if Kind() != KindLink.
func (n Node) Link() cid.Cid {
	n.mustBe(KindLink)
	return n.link
}

func (n Node) mustBe(k Kind) {
	if n.kind != k {
		panic("ipld: Node is " + n.kind.String() + ", not " + k.String())
	}
}

// Equal is structural, total equality over all nine kinds. Two Float
// values with the same bit pattern (including NaN) compare equal.
func (n Node) Equal(o Node) bool {
	if n.kind != o.kind {
		return false
	}
	switch n.kind {
	case KindNull:
		return true
	case KindBool:
		return n.boolean == o.boolean
	case KindInt:
		return n.integer.Cmp(o.integer) == 0
	case KindFloat:
		return floatBitsEqual(n.float, o.float)
	case KindString:
		return n.str == o.str
	case KindBytes:
		return bytesEqual(n.bytes, o.bytes)
	case KindList:
		if len(n.list) != len(o.list) {
			return false
		}
		for i := range n.list {
			if !n.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(n.entries) != len(o.entries) {
			return false
		}
		for i := range n.entries {
			if n.entries[i].Key != o.entries[i].Key || !n.entries[i].Value.Equal(o.entries[i].Value) {
				return false
			}
		}
		return true
	case KindLink:
		return n.link.Equal(o.link)
	default:
		return false
	}
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func floatBitsEqual(a, b float64) bool {
	return toBits(a) == toBits(b)
}
