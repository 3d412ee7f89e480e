package ipld

import (
	"fmt"

	"github.com/argumentcomputer/sp-ipld/cid"
)

// DefaultMaxDepth bounds how many nested containers Walk/References will
// descend into before giving up, per the cooperative-cancellation model:
// a long traversal can't be interrupted mid-call, so callers bound work
// with a depth limit instead.
const DefaultMaxDepth = 1024

// RecursionLimitError is returned when a traversal would exceed its
// maximum nesting depth.
type RecursionLimitError struct {
	MaxDepth int
}

func (e *RecursionLimitError) Error() string {
	return fmt.Sprintf("ipld: nesting exceeds max depth %d", e.MaxDepth)
}

// frame is one level of the explicit traversal stack: the container being
// visited and the index of its next unvisited child.
type frame struct {
	node *Node
	idx  int
}

// Walk visits n and every sub-value in pre-order: the root first, then
// List elements and StringMap values (in key order) recursively. It does
// not descend into Link values; a Link is a leaf that references another
// block, not a value it owns.
//
// visit is called once per node, including the root. If visit returns
// false, the walk stops early. Walk uses an explicit stack rather than
// recursion so traversal depth is bounded by DefaultMaxDepth instead of
// Go's call stack.
func (n Node) Walk(visit func(Node) bool) error {
	return n.WalkDepth(DefaultMaxDepth, visit)
}

// WalkDepth is Walk with an explicit maximum nesting depth.
func (n Node) WalkDepth(maxDepth int, visit func(Node) bool) error {
	if !visit(n) {
		return nil
	}
	stack := make([]frame, 0, 8)
	pushContainer := func(node Node) error {
		switch node.kind {
		case KindList, KindMap:
			if len(stack) >= maxDepth {
				return &RecursionLimitError{MaxDepth: maxDepth}
			}
			cp := node
			stack = append(stack, frame{node: &cp, idx: 0})
		}
		return nil
	}
	if err := pushContainer(n); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		var child Node
		ok := false
		switch top.node.kind {
		case KindList:
			if top.idx < len(top.node.list) {
				child = top.node.list[top.idx]
				top.idx++
				ok = true
			}
		case KindMap:
			if top.idx < len(top.node.entries) {
				child = top.node.entries[top.idx].Value
				top.idx++
				ok = true
			}
		}
		if !ok {
			stack = stack[:len(stack)-1]
			continue
		}
		if !visit(child) {
			return nil
		}
		if err := pushContainer(child); err != nil {
			return err
		}
	}
	return nil
}

// References extends set with every Link's Cid discovered by Walk(n).
func (n Node) References(set map[cid.Cid]struct{}) error {
	return n.Walk(func(v Node) bool {
		if v.kind == KindLink {
			set[v.link] = struct{}{}
		}
		return true
	})
}
