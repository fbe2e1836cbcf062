package bsp

import (
	"github.com/google/uuid"

	"github.com/matzehuels/bspgen/pkg/errors"
)

// MaxDepthLimit bounds MaxDepth. Recursion depth equals MaxDepth and a full
// tree holds 2^(MaxDepth+1)-1 nodes, so larger values are rejected by [New].
const MaxDepthLimit = 24

// SplitFunc divides a payload into exactly two child payloads.
// It must be deterministic for trees to be reproducible.
type SplitFunc[T any] func(data T) []T

// Node is a node of a binary space partition tree.
//
// A Node is either a leaf (Children is nil) or internal (Children holds
// exactly two nodes). The leaf→internal transition happens once, in Split.
// Parent is a non-owning back reference; it is nil for the root.
//
// The zero value is not usable; use [New] to create a root.
type Node[T any] struct {
	Data     T
	ID       uuid.UUID
	MaxDepth int
	Rules    SplitFunc[T]
	Parent   *Node[T]
	Children []*Node[T]
}

// New creates a root leaf holding data. It does not split; call
// [Node.Split] to build the tree.
func New[T any](data T, maxDepth int, rules SplitFunc[T]) (*Node[T], error) {
	if err := errors.ValidateDepth(maxDepth, MaxDepthLimit); err != nil {
		return nil, err
	}
	if rules == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "split function is required")
	}
	return newNode(data, maxDepth, rules, nil), nil
}

func newNode[T any](data T, maxDepth int, rules SplitFunc[T], parent *Node[T]) *Node[T] {
	return &Node[T]{
		Data:     data,
		ID:       uuid.New(),
		MaxDepth: maxDepth,
		Rules:    rules,
		Parent:   parent,
	}
}

// Split builds the subtree below n, treating n as depth 0.
// It is equivalent to SplitDepth(0).
func (n *Node[T]) Split() error {
	return n.SplitDepth(0)
}

// SplitDepth builds the subtree below n, treating n as being at depth.
//
// If depth >= MaxDepth, n stays a leaf. Otherwise Rules is applied to Data,
// two children are created in order, and each is split at depth+1 before
// SplitDepth returns. Calling it on a node that already has children does
// nothing.
//
// If Rules returns anything other than two payloads, SplitDepth fails with
// ErrCodeContractViolation. Children are attached only once both subtrees
// are complete, so on failure n is left a leaf.
func (n *Node[T]) SplitDepth(depth int) error {
	if depth >= n.MaxDepth || n.Children != nil {
		return nil
	}
	if n.Rules == nil {
		return errors.New(errors.ErrCodeInvalidInput, "node has no split function")
	}

	parts := n.Rules(n.Data)
	if len(parts) != 2 {
		return errors.New(errors.ErrCodeContractViolation,
			"split function returned %d payloads at depth %d, want 2", len(parts), depth)
	}

	children := []*Node[T]{
		newNode(parts[0], n.MaxDepth, n.Rules, n),
		newNode(parts[1], n.MaxDepth, n.Rules, n),
	}
	for _, c := range children {
		if err := c.SplitDepth(depth + 1); err != nil {
			return err
		}
	}
	n.Children = children
	return nil
}

// IsLeaf reports whether n has no children.
func (n *Node[T]) IsLeaf() bool { return n.Children == nil }

// IsRoot reports whether n has no parent.
func (n *Node[T]) IsRoot() bool { return n.Parent == nil }

// Depth returns the number of edges between n and the root.
func (n *Node[T]) Depth() int {
	d := 0
	for p := n.Parent; p != nil; p = p.Parent {
		d++
	}
	return d
}

// Root returns the root of the tree containing n.
func (n *Node[T]) Root() *Node[T] {
	r := n
	for r.Parent != nil {
		r = r.Parent
	}
	return r
}

// Leaves returns every leaf reachable from n in left-to-right order.
// A leaf returns a slice holding only itself.
func (n *Node[T]) Leaves() []*Node[T] {
	return n.appendLeaves(nil)
}

func (n *Node[T]) appendLeaves(dst []*Node[T]) []*Node[T] {
	if n.Children == nil {
		return append(dst, n)
	}
	for _, c := range n.Children {
		dst = c.appendLeaves(dst)
	}
	return dst
}

// Sibling returns the other child of n's parent.
// It fails with ErrCodePrecondition on the root.
func (n *Node[T]) Sibling() (*Node[T], error) {
	if n.Parent == nil {
		return nil, errors.New(errors.ErrCodePrecondition, "cannot get sibling of root")
	}
	for _, c := range n.Parent.Children {
		if c.ID != n.ID {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodePrecondition, "node %s is not attached to its parent", n.ID)
}

// Walk visits n and its descendants in pre-order, passing each node's depth
// relative to n. Returning false from fn skips that node's children.
func (n *Node[T]) Walk(fn func(node *Node[T], depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node[T]) walk(fn func(*Node[T], int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Len returns the number of nodes in the subtree rooted at n.
func (n *Node[T]) Len() int {
	count := 0
	n.Walk(func(*Node[T], int) bool {
		count++
		return true
	})
	return count
}

// SiblingPairs returns the child pair of every internal node below and
// including n, in pre-order. Each pair is one corridor to carve.
func (n *Node[T]) SiblingPairs() [][2]*Node[T] {
	var pairs [][2]*Node[T]
	n.Walk(func(node *Node[T], _ int) bool {
		if len(node.Children) == 2 {
			pairs = append(pairs, [2]*Node[T]{node.Children[0], node.Children[1]})
		}
		return true
	})
	return pairs
}
