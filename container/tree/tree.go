// Package tree implements the ordered containers: a Tree wrapper over
// the intrusive rbtree primitives, plus Set and Map built on it.
// Ported from korin's core/public/containers/tree.h, set.h and map.h,
// converged on the variant referenced from containers_types.h.
//
// Nodes live on the Go heap: the garbage collector must be able to see
// any pointers the generic payload carries, so korin's node-sized
// pooled allocations apply only to the byte-buffer containers here.
// See DESIGN.md.
package tree

import (
	"unsafe"

	"golang.org/x/exp/constraints"

	"github.com/sneppy/korin-new/rbtree"
)

// Compare is the ordering policy of a Tree: negative when a sorts
// before b, zero when they match, positive when a sorts after b.
type Compare[T any] func(a, b T) int

// Ordered returns the default comparison policy for any naturally
// ordered type.
func Ordered[T constraints.Ordered]() Compare[T] {
	return func(a, b T) int {
		switch {
		case a < b:
			return -1
		case a > b:
			return 1
		default:
			return 0
		}
	}
}

// node is the rbtree header followed by the payload, per the "header
// struct followed by payload" layout the tree primitives operate on.
type node[T any] struct {
	hdr   rbtree.Node
	value T
}

func nodeOf[T any](n *rbtree.Node) *node[T] { return (*node[T])(unsafe.Pointer(n)) }

// Tree is an ordered container of T, allowing duplicate keys through
// Emplace and unique keys through InsertUnique/FindOrEmplace.
type Tree[T any] struct {
	root   *rbtree.Node
	length int
	cmp    Compare[T]
}

// New constructs an empty tree ordered by cmp.
func New[T any](cmp Compare[T]) *Tree[T] {
	return &Tree[T]{cmp: cmp}
}

// Len returns the number of elements in the tree.
func (t *Tree[T]) Len() int { return t.length }

func (t *Tree[T]) cmpFor(key T) rbtree.Cmp {
	return func(n *rbtree.Node) int {
		return t.cmp(key, nodeOf[T](n).value)
	}
}

// Emplace always inserts a new element, even when an equal one already
// exists, and returns an iterator to it.
func (t *Tree[T]) Emplace(v T) Iterator[T] {
	n := &node[T]{value: v}
	t.root = rbtree.Insert(t.root, &n.hdr, t.cmpFor(v))
	t.length++
	return Iterator[T]{t: t, n: &n.hdr}
}

// InsertUnique inserts v, overwriting the payload of an existing equal
// element if there is one. Returns an iterator to the element and
// whether a new node was inserted.
func (t *Tree[T]) InsertUnique(v T) (Iterator[T], bool) {
	n := &node[T]{value: v}
	root, existing, inserted := rbtree.FindOrInsertNode(t.root, &n.hdr, t.cmpFor(v))
	t.root = root
	if inserted {
		t.length++
	} else {
		nodeOf[T](existing).value = v
	}
	return Iterator[T]{t: t, n: existing}, inserted
}

// FindOrEmplace returns an iterator to the element equal to v,
// inserting v only when no such element exists. The existing payload
// is left untouched on a match.
func (t *Tree[T]) FindOrEmplace(v T) (Iterator[T], bool) {
	n := &node[T]{value: v}
	root, existing, inserted := rbtree.FindOrInsertNode(t.root, &n.hdr, t.cmpFor(v))
	t.root = root
	if inserted {
		t.length++
	}
	return Iterator[T]{t: t, n: existing}, inserted
}

// Find returns an iterator to an element equal to key, or the end
// iterator.
func (t *Tree[T]) Find(key T) Iterator[T] {
	return Iterator[T]{t: t, n: rbtree.Find(t.root, t.cmpFor(key))}
}

// Contains reports whether an element equal to key exists.
func (t *Tree[T]) Contains(key T) bool {
	return rbtree.Find(t.root, t.cmpFor(key)) != nil
}

// Remove unlinks the element it points at and returns an iterator to
// its in-order successor. Iterators to other elements remain valid.
func (t *Tree[T]) Remove(it Iterator[T]) Iterator[T] {
	next := it.n.Next
	t.root = rbtree.Remove(it.n)
	t.length--
	return Iterator[T]{t: t, n: next}
}

// RemoveKey removes one element equal to key, reporting whether one
// existed.
func (t *Tree[T]) RemoveKey(key T) bool {
	n := rbtree.Find(t.root, t.cmpFor(key))
	if n == nil {
		return false
	}
	t.root = rbtree.Remove(n)
	t.length--
	return true
}

// Reset empties the tree.
func (t *Tree[T]) Reset() {
	t.root, t.length = nil, 0
}

// Begin returns an iterator to the smallest element.
func (t *Tree[T]) Begin() Iterator[T] {
	return Iterator[T]{t: t, n: rbtree.Min(t.root)}
}

// End returns the past-the-end iterator.
func (t *Tree[T]) End() Iterator[T] { return Iterator[T]{t: t} }

// LowerBound returns an iterator to the first element not less than
// key.
func (t *Tree[T]) LowerBound(key T) Iterator[T] {
	return Iterator[T]{t: t, n: rbtree.LowerBound(t.root, t.cmpFor(key))}
}

// UpperBound returns an iterator past the last element not greater
// than key, i.e. the first element strictly greater than key.
func (t *Tree[T]) UpperBound(key T) Iterator[T] {
	n := rbtree.UpperBound(t.root, t.cmpFor(key))
	if n == nil {
		// No element <= key: the range starts at the tree minimum.
		return Iterator[T]{t: t, n: rbtree.LowerBound(t.root, t.cmpFor(key))}
	}
	return Iterator[T]{t: t, n: n.Next}
}

// Values returns the elements in ascending order.
func (t *Tree[T]) Values() []T {
	out := make([]T, 0, t.length)
	for n := rbtree.Min(t.root); n != nil; n = n.Next {
		out = append(out, nodeOf[T](n).value)
	}
	return out
}

// Iterator points at one element of a Tree, or past the end. Tree
// iterators stay valid across arbitrary insertions and across removal
// of other elements, thanks to the in-order chain.
type Iterator[T any] struct {
	t *Tree[T]
	n *rbtree.Node
}

// Ok reports whether the iterator points at a live element.
func (it Iterator[T]) Ok() bool { return it.n != nil }

// Value returns the element the iterator points at.
func (it Iterator[T]) Value() T { return nodeOf[T](it.n).value }

// Ref returns a pointer to the element, for in-place mutation. The
// caller must not mutate the part of the element the tree orders by.
func (it Iterator[T]) Ref() *T { return &nodeOf[T](it.n).value }

// Next returns an iterator to the in-order successor.
func (it Iterator[T]) Next() Iterator[T] {
	if it.n == nil {
		return it
	}
	return Iterator[T]{t: it.t, n: it.n.Next}
}

// Prev returns an iterator to the in-order predecessor, or to the
// largest element when called on the end iterator.
func (it Iterator[T]) Prev() Iterator[T] {
	if it.n == nil {
		return Iterator[T]{t: it.t, n: rbtree.Max(it.t.root)}
	}
	return Iterator[T]{t: it.t, n: it.n.Prev}
}
