package rbtree

import (
	"math"
	"sort"
	"testing"
	"unsafe"

	"github.com/cznic/mathutil"
)

type intNode struct {
	hdr Node
	v   int
}

func valOf(n *Node) int { return (*intNode)(unsafe.Pointer(n)).v }

func intCmp(key int) Cmp {
	return func(n *Node) int {
		switch v := valOf(n); {
		case key < v:
			return -1
		case key > v:
			return 1
		default:
			return 0
		}
	}
}

func insertInt(root *Node, key int) *Node {
	n := &intNode{v: key}
	return Insert(root, &n.hdr, intCmp(key))
}

// checkInvariants verifies the four structural invariants: Black
// root, no two consecutive Reds, equal Black-height on every
// root-to-nil path, and an in-order chain covering every node in
// sorted order.
func checkInvariants(t *testing.T, root *Node, want []int) {
	t.Helper()

	if root == nil {
		if len(want) != 0 {
			t.Fatalf("empty tree, want %d nodes", len(want))
		}
		return
	}
	if root.Color != Black {
		t.Fatal("root is not Black")
	}
	if root.Parent != nil {
		t.Fatal("root has a parent")
	}

	blackHeight(t, root)

	sorted := append([]int(nil), want...)
	sort.Ints(sorted)

	i := 0
	var prev *Node
	for n := Min(root); n != nil; n = n.Next {
		if i >= len(sorted) {
			t.Fatalf("chain longer than %d nodes", len(sorted))
		}
		if g, e := valOf(n), sorted[i]; g != e {
			t.Fatal(i, g, e)
		}
		if n.Prev != prev {
			t.Fatalf("node %d: broken Prev link", valOf(n))
		}
		prev = n
		i++
	}
	if i != len(sorted) {
		t.Fatal(i, len(sorted))
	}
	if g, e := Max(root), prev; g != e {
		t.Fatal("Max disagrees with chain tail")
	}
}

func blackHeight(t *testing.T, n *Node) int {
	t.Helper()
	if n == nil {
		return 1
	}
	if isRed(n) && (isRed(n.Left) || isRed(n.Right)) {
		t.Fatalf("red node %d has a red child", valOf(n))
	}
	if n.Left != nil && n.Left.Parent != n {
		t.Fatalf("node %d: left child parent link broken", valOf(n))
	}
	if n.Right != nil && n.Right.Parent != n {
		t.Fatalf("node %d: right child parent link broken", valOf(n))
	}
	l := blackHeight(t, n.Left)
	r := blackHeight(t, n.Right)
	if l != r {
		t.Fatalf("node %d: black height %d != %d", valOf(n), l, r)
	}
	if isBlack(n) {
		l++
	}
	return l
}

func TestInsertOrdered(t *testing.T) {
	var root *Node
	keys := []int{5, 2, 8, 1, 9, 3, 7, 4, 6, 0}
	for i, k := range keys {
		root = insertInt(root, k)
		checkInvariants(t, root, keys[:i+1])
	}
}

func TestInsertAscending(t *testing.T) {
	var root *Node
	var keys []int
	for k := 0; k < 256; k++ {
		root = insertInt(root, k)
		keys = append(keys, k)
	}
	checkInvariants(t, root, keys)
}

func TestInsertDescending(t *testing.T) {
	var root *Node
	var keys []int
	for k := 255; k >= 0; k-- {
		root = insertInt(root, k)
		keys = append(keys, k)
	}
	checkInvariants(t, root, keys)
}

func TestFind(t *testing.T) {
	var root *Node
	for k := 0; k < 64; k += 2 {
		root = insertInt(root, k)
	}
	for k := 0; k < 64; k++ {
		n := Find(root, intCmp(k))
		if k%2 == 0 {
			if n == nil {
				t.Fatal(k)
			}
			if g, e := valOf(n), k; g != e {
				t.Fatal(g, e)
			}
		} else if n != nil {
			t.Fatal(k, valOf(n))
		}
	}
}

func TestBounds(t *testing.T) {
	var root *Node
	for k := 0; k < 100; k += 10 {
		root = insertInt(root, k)
	}

	if g := LowerBound(root, intCmp(35)); g == nil || valOf(g) != 40 {
		t.Fatal("lower bound 35")
	}
	if g := LowerBound(root, intCmp(40)); g == nil || valOf(g) != 40 {
		t.Fatal("lower bound 40")
	}
	if g := LowerBound(root, intCmp(91)); g != nil {
		t.Fatal("lower bound past max", valOf(g))
	}
	if g := UpperBound(root, intCmp(35)); g == nil || valOf(g) != 30 {
		t.Fatal("upper bound 35")
	}
	if g := UpperBound(root, intCmp(40)); g == nil || valOf(g) != 40 {
		t.Fatal("upper bound 40")
	}
	if g := UpperBound(root, intCmp(-1)); g != nil {
		t.Fatal("upper bound before min", valOf(g))
	}
}

func TestFindOrInsertNode(t *testing.T) {
	var root *Node
	a := &intNode{v: 7}
	root, existing, inserted := FindOrInsertNode(root, &a.hdr, intCmp(7))
	if !inserted || existing != &a.hdr {
		t.Fatal("first insert")
	}

	b := &intNode{v: 7}
	root2, existing, inserted := FindOrInsertNode(root, &b.hdr, intCmp(7))
	if inserted || existing != &a.hdr || root2 != root {
		t.Fatal("duplicate insert")
	}
}

// Insert [0, 1024), then remove every other key in random order,
// verifying the invariants over the surviving keys after each
// removal.
func TestRemoveStress(t *testing.T) {
	const n = 1024

	var root *Node
	nodes := make(map[int]*Node, n)
	for k := 0; k < n; k++ {
		node := &intNode{v: k}
		root = Insert(root, &node.hdr, intCmp(k))
		nodes[k] = &node.hdr
	}

	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		t.Fatal(err)
	}
	rng.Seed(42)

	victims := make([]int, 0, n/2)
	for k := 0; k < n; k += 2 {
		victims = append(victims, k)
	}
	for i := range victims {
		j := rng.Next() % len(victims)
		victims[i], victims[j] = victims[j], victims[i]
	}

	alive := make(map[int]bool, n)
	for k := 0; k < n; k++ {
		alive[k] = true
	}

	for _, k := range victims {
		root = Remove(nodes[k])
		delete(alive, k)

		keys := make([]int, 0, len(alive))
		for k := range alive {
			keys = append(keys, k)
		}
		checkInvariants(t, root, keys)
	}
}

func TestRemoveAll(t *testing.T) {
	var root *Node
	nodes := make([]*Node, 64)
	for k := range nodes {
		node := &intNode{v: k}
		root = Insert(root, &node.hdr, intCmp(k))
		nodes[k] = &node.hdr
	}
	for k, n := range nodes {
		root = Remove(n)
		keys := make([]int, 0, len(nodes)-k-1)
		for j := k + 1; j < len(nodes); j++ {
			keys = append(keys, j)
		}
		checkInvariants(t, root, keys)
	}
	if root != nil {
		t.Fatal("tree not empty")
	}
}
