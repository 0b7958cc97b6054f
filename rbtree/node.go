// Package rbtree implements the structural half of an intrusive
// red-black tree: raw node linkage, rotations, insertion and removal
// repair, and the in-order next/prev chain that every higher-level
// ordered container in this module is built on.
//
// Ported from korin's core/public/containers/tree_node.h. The
// template there is specialized on the payload type; here the payload
// lives in whatever struct embeds a Node as its first field, and the
// tree only ever touches the Node header.
package rbtree

// Color is the color of a node in a red-black tree.
type Color bool

const (
	Red   Color = true
	Black Color = false
)

// Node is the intrusive header embedded (as the first field) in every
// tree node. It carries the binary-tree links, the in-order next/prev
// chain, and the node's color.
type Node struct {
	Parent, Left, Right *Node
	Next, Prev          *Node
	Color               Color
}

func isRed(n *Node) bool   { return n != nil && n.Color == Red }
func isBlack(n *Node) bool { return !isRed(n) }

// Root walks up from n and returns the root of the tree n belongs to.
func Root(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	return n
}

// Min returns the leftmost (minimum) node of the subtree rooted at n,
// or nil if n is nil.
func Min(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Left != nil {
		n = n.Left
	}
	return n
}

// Max returns the rightmost (maximum) node of the subtree rooted at n,
// or nil if n is nil.
func Max(n *Node) *Node {
	if n == nil {
		return nil
	}
	for n.Right != nil {
		n = n.Right
	}
	return n
}

// setLeftChild attaches other as the left child of n, threading the
// in-order chain as it goes. Mirrors BinaryNode::setLeftChild.
func setLeftChild(n, other *Node) {
	n.Left = other
	if other == nil {
		return
	}
	other.Parent = n
	other.Next = n
	other.Prev = n.Prev
	if other.Prev != nil {
		other.Prev.Next = other
	}
	n.Prev = other
}

// setRightChild attaches other as the right child of n, threading the
// in-order chain as it goes. Mirrors BinaryNode::setRightChild.
func setRightChild(n, other *Node) {
	n.Right = other
	if other == nil {
		return
	}
	other.Parent = n
	other.Prev = n
	other.Next = n.Next
	if other.Next != nil {
		other.Next.Prev = other
	}
	n.Next = other
}

func rotateLeft(pivot *Node) {
	grand := pivot.Parent
	node := pivot.Right
	child := node.Left

	pivot.Parent = node
	node.Parent = grand
	if grand != nil {
		if grand.Left == pivot {
			grand.Left = node
		} else {
			grand.Right = node
		}
	}

	node.Left = pivot
	pivot.Right = child
	if child != nil {
		child.Parent = pivot
	}
}

func rotateRight(pivot *Node) {
	grand := pivot.Parent
	node := pivot.Left
	child := node.Right

	pivot.Parent = node
	node.Parent = grand
	if grand != nil {
		if grand.Right == pivot {
			grand.Right = node
		} else {
			grand.Left = node
		}
	}

	node.Right = pivot
	pivot.Left = child
	if child != nil {
		child.Parent = pivot
	}
}
