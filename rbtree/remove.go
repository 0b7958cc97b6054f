package rbtree

// Remove unlinks n from its tree, repairs the red-black invariants and
// the in-order chain, and returns the new root (nil if the tree is now
// empty). n itself is left with zeroed links; it no longer belongs to
// any tree after this call.
//
// Mirrors the standard two-step deletion: if n has two children, swap
// its tree position (links and color) with its in-order successor so
// the node actually evicted has at most one child, then splice that
// child into the gap and run the delete repair if a Black node was
// removed.
func Remove(n *Node) *Node {
	if n.Left != nil && n.Right != nil {
		// n's structural position (parent/left/right/color) trades
		// places with its in-order successor. n's Next/Prev are left
		// untouched, so the chain-unlink below still removes the
		// right node from the in-order chain. After the swap, n's
		// structural slot is the successor's old slot, which has no
		// left child, so n now has at most one child.
		swapNodes(n, n.Next)
	}

	victim := n

	var child *Node
	if victim.Left != nil {
		child = victim.Left
	} else {
		child = victim.Right
	}

	parent := victim.Parent
	replace(victim, child)
	unlinkChain(victim)

	var root *Node
	if victim.Color == Black {
		root = repairRemoved(child, parent)
	} else {
		// Removing a Red node never breaks the Black-height invariant;
		// a Red node always has a parent, since the root is Black.
		root = Root(parent)
	}

	n.Parent, n.Left, n.Right, n.Next, n.Prev = nil, nil, nil, nil, nil
	return root
}

// swapNodes exchanges the tree position (structural links and color)
// of a and b, which must be distinct nodes with b == a.Next (i.e. b is
// a's in-order successor and therefore has no left child). Used only
// to move a two-children node out of the way of its successor before
// eviction.
func swapNodes(a, b *Node) {
	aParent, aLeft, aRight, aColor := a.Parent, a.Left, a.Right, a.Color

	// b is a's in-order successor: either a.Right (if a.Right has no
	// left child) or the leftmost descendant of a.Right.
	if aRight == b {
		// b is a's direct right child.
		a.Parent, a.Left, a.Right, a.Color = b, nil, b.Right, b.Color
		if a.Right != nil {
			a.Right.Parent = a
		}

		b.Parent, b.Left, b.Right, b.Color = aParent, aLeft, a, aColor
		if aParent != nil {
			if aParent.Left == a {
				aParent.Left = b
			} else {
				aParent.Right = b
			}
		}
		if aLeft != nil {
			aLeft.Parent = b
		}
	} else {
		bParent, bRight, bColor := b.Parent, b.Right, b.Color

		a.Parent, a.Left, a.Right, a.Color = bParent, nil, bRight, bColor
		if bParent.Left == b {
			bParent.Left = a
		} else {
			bParent.Right = a
		}
		if bRight != nil {
			bRight.Parent = a
		}

		b.Parent, b.Left, b.Right, b.Color = aParent, aLeft, aRight, aColor
		if aParent != nil {
			if aParent.Left == a {
				aParent.Left = b
			} else {
				aParent.Right = b
			}
		}
		if aLeft != nil {
			aLeft.Parent = b
		}
		if aRight != nil {
			aRight.Parent = b
		}
	}

	// The in-order chain is unaffected by swapping tree position: a
	// and b keep their own Next/Prev, they've simply traded places in
	// the binary-tree skeleton. Each still sits at the in-order slot
	// it occupied before the swap.
}

// replace splices child into victim's position in the tree, updating
// victim's parent to point at child instead.
func replace(victim, child *Node) {
	parent := victim.Parent
	if child != nil {
		child.Parent = parent
	}
	if parent == nil {
		return
	}
	if parent.Left == victim {
		parent.Left = child
	} else {
		parent.Right = child
	}
}

// unlinkChain removes victim from the in-order next/prev chain.
func unlinkChain(victim *Node) {
	if victim.Prev != nil {
		victim.Prev.Next = victim.Next
	}
	if victim.Next != nil {
		victim.Next.Prev = victim.Prev
	}
}

// repairRemoved restores the red-black invariants after a Black node
// has been evicted, replaced by child (possibly nil) under parent
// (possibly nil, if the tree is now empty). Returns the tree's new
// root.
func repairRemoved(node, parent *Node) *Node {
	for {
		if node == nil && parent == nil {
			return nil
		}
		if isRed(node) || parent == nil {
			if node != nil {
				node.Color = Black
			}
			return Root(firstNonNil(node, parent))
		}

		if parent.Left == node {
			sibling := parent.Right

			if isRed(sibling) {
				sibling.Color = Black
				parent.Color = Red
				rotateLeft(parent)
				sibling = parent.Right
			}

			if isBlack(sibling) && isBlack(sibling.Left) && isBlack(sibling.Right) {
				sibling.Color = Red
				node, parent = parent, parent.Parent
				continue
			}

			if isRed(sibling.Left) {
				sibling.Color = Red
				sibling.Left.Color = Black
				rotateRight(sibling)
				sibling = sibling.Parent
			}

			sibling.Color = parent.Color
			parent.Color = Black
			sibling.Right.Color = Black
			rotateLeft(parent)
			return Root(sibling)
		}

		sibling := parent.Left

		if isRed(sibling) {
			sibling.Color = Black
			parent.Color = Red
			rotateRight(parent)
			sibling = parent.Left
		}

		if isBlack(sibling) && isBlack(sibling.Right) && isBlack(sibling.Left) {
			sibling.Color = Red
			node, parent = parent, parent.Parent
			continue
		}

		if isRed(sibling.Right) {
			sibling.Color = Red
			sibling.Right.Color = Black
			rotateLeft(sibling)
			sibling = sibling.Parent
		}

		sibling.Color = parent.Color
		parent.Color = Black
		sibling.Left.Color = Black
		rotateRight(parent)
		return Root(sibling)
	}
}

func firstNonNil(a, b *Node) *Node {
	if a != nil {
		return a
	}
	return b
}
