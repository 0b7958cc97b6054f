package hash

import (
	"fmt"
	"math"
	"sort"
	"testing"

	"github.com/cznic/mathutil"

	"github.com/sneppy/korin-new/hashkey"
)

// checkTable walks the shared chain and the bucket anchors, verifying
// the structural invariants: power-of-two bucket count, load factor at
// or below 3/4, every live entry reachable exactly once from the
// placeholder, and every entry homed in the bucket its hash selects.
func checkTable[T any](t *testing.T, tb *Table[T]) {
	t.Helper()

	nb := len(tb.buckets)
	if nb == 0 {
		if tb.numItems != 0 || tb.placeholder.next != nil {
			t.Fatal("entries without buckets")
		}
		return
	}
	if nb&(nb-1) != 0 {
		t.Fatalf("bucket count %d is not a power of two", nb)
	}
	if loadDen*tb.numItems > loadNum*nb {
		t.Fatalf("load factor breached: %d items in %d buckets", tb.numItems, nb)
	}

	// Walk the chain: every entry appears once, contiguous per bucket.
	count := 0
	perBucket := map[int]int{}
	for e := tb.placeholder.next; e != nil; e = e.next {
		count++
		perBucket[tb.home(e)]++
		if count > tb.numItems {
			t.Fatal("chain longer than numItems")
		}
	}
	if g, e := count, tb.numItems; g != e {
		t.Fatal(g, e)
	}

	// Every non-nil anchor's next entry belongs to that bucket; empty
	// buckets have nil anchors.
	for i, anchor := range tb.buckets {
		if anchor == nil {
			if perBucket[i] != 0 {
				t.Fatalf("bucket %d has %d entries but no anchor", i, perBucket[i])
			}
			continue
		}
		if perBucket[i] == 0 {
			t.Fatalf("bucket %d has an anchor but no entries", i)
		}
		first := anchor.next
		if first == nil || tb.home(first) != i {
			t.Fatalf("bucket %d anchor does not lead to its entries", i)
		}
		// The bucket's entries are contiguous on the chain.
		n := 0
		for e := first; e != nil && tb.home(e) == i; e = e.next {
			n++
		}
		if g, e := n, perBucket[i]; g != e {
			t.Fatal(i, g, e)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	tb := NewTable(IntPolicy[int]())

	for i := 0; i < 100; i++ {
		if !tb.Insert(i) {
			t.Fatal(i)
		}
		checkTable(t, tb)
	}
	if g, e := tb.Len(), 100; g != e {
		t.Fatal(g, e)
	}

	for i := 0; i < 100; i++ {
		it := tb.Find(i)
		if !it.Ok() {
			t.Fatal(i)
		}
		if g, e := it.Value(), i; g != e {
			t.Fatal(g, e)
		}
	}
	if tb.Find(100).Ok() {
		t.Fatal("found key never inserted")
	}

	for i := 0; i < 100; i += 2 {
		if !tb.Remove(i) {
			t.Fatal(i)
		}
		checkTable(t, tb)
	}
	for i := 0; i < 100; i++ {
		if g, e := tb.Find(i).Ok(), i%2 == 1; g != e {
			t.Fatal(i, g, e)
		}
	}
}

func TestInsertDuplicate(t *testing.T) {
	tb := NewTable(IntPolicy[int]())
	if !tb.Insert(1) {
		t.Fatal("first insert")
	}
	if tb.Insert(1) {
		t.Fatal("duplicate insert")
	}
	if g, e := tb.Len(), 1; g != e {
		t.Fatal(g, e)
	}
}

// 100 distinct string keys into an initially 16-bucket table: bucket
// count ends as the power of two keeping load at or below 3/4, and
// every key stays findable across the rehashes.
func TestRehashStrings(t *testing.T) {
	tb := NewTable(StringPolicy())

	keys := make([]string, 100)
	for i := range keys {
		keys[i] = fmt.Sprintf("key-%d", i)
		if !tb.Insert(keys[i]) {
			t.Fatal(i)
		}
	}

	if g := tb.NumBuckets(); g != 128 && g != 256 {
		t.Fatal(g)
	}
	if loadDen*tb.Len() > loadNum*tb.NumBuckets() {
		t.Fatal(tb.Len(), tb.NumBuckets())
	}
	for _, k := range keys {
		it := tb.Find(k)
		if !it.Ok() {
			t.Fatal(k)
		}
		if g, e := it.Value(), k; g != e {
			t.Fatal(g, e)
		}
	}
	checkTable(t, tb)
}

func TestIterationCoversAll(t *testing.T) {
	tb := NewTable(IntPolicy[int]())
	for i := 0; i < 50; i++ {
		tb.Insert(i * 3)
	}

	var got []int
	for it := tb.Begin(); it.Ok(); it = it.Next() {
		got = append(got, it.Value())
	}
	sort.Ints(got)

	if g, e := len(got), 50; g != e {
		t.Fatal(g, e)
	}
	for i, g := range got {
		if e := i * 3; g != e {
			t.Fatal(i, g, e)
		}
	}
}

func TestChurn(t *testing.T) {
	rng, err := mathutil.NewFC32(0, math.MaxInt32, true)
	if err != nil {
		t.Fatal(err)
	}
	rng.Seed(42)

	tb := NewTable(IntPolicy[int]())
	mirror := map[int]bool{}
	for i := 0; i < 10000; i++ {
		k := rng.Next() % 1024
		if rng.Next()%3 == 0 {
			if g, e := tb.Remove(k), mirror[k]; g != e {
				t.Fatal(i, k, g, e)
			}
			delete(mirror, k)
		} else {
			if g, e := tb.Insert(k), !mirror[k]; g != e {
				t.Fatal(i, k, g, e)
			}
			mirror[k] = true
		}

		if i%256 == 0 {
			checkTable(t, tb)
		}
	}
	checkTable(t, tb)

	if g, e := tb.Len(), len(mirror); g != e {
		t.Fatal(g, e)
	}
	for k := range mirror {
		if !tb.Contains(k) {
			t.Fatal(k)
		}
	}
}

func TestHashSetAlgebra(t *testing.T) {
	a := NewSetOf(IntPolicy[int](), 1, 3, 10)
	b := NewSetOf(IntPolicy[int](), 0, 2, 3, 9)

	check := func(s *HashSet[int], want []int) {
		t.Helper()
		got := s.Values()
		sort.Ints(got)
		if len(got) != len(want) {
			t.Fatal(got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatal(got, want)
			}
		}
	}

	check(SetUnion(a, b), []int{0, 1, 2, 3, 9, 10})
	check(SetIntersection(a, b), []int{3})
	check(SetSymDiff(a, b), []int{0, 1, 2, 9, 10})
	check(SetDifference(a, b), []int{1, 10})

	if !a.IsSubsetOf(SetUnion(a, b)) {
		t.Fatal("A not subset of A|B")
	}
	if !a.IsDisjoint(NewSetOf(IntPolicy[int](), 4, 5)) {
		t.Fatal("disjoint")
	}
	if a.IsDisjoint(b) {
		t.Fatal("sets sharing 3 reported disjoint")
	}
}

func TestHashMap(t *testing.T) {
	m := NewStringMap[int]()

	if m.InsertUnique("sneppy", 1) != true {
		t.Fatal("first insert")
	}
	if m.InsertUnique("sneppy", 2) != false {
		t.Fatal("second insert created a new entry")
	}
	if g, e := m.Len(), 1; g != e {
		t.Fatal(g, e)
	}
	if v, ok := m.Get("sneppy"); !ok || v != 2 {
		t.Fatal(v, ok)
	}

	p := m.At("hits")
	*p = 5
	if v, _ := m.Get("hits"); v != 5 {
		t.Fatal(v)
	}

	v, ok := m.RemoveAt("sneppy")
	if !ok || v != 2 {
		t.Fatal(v, ok)
	}
	if m.Contains("sneppy") {
		t.Fatal("removed key still present")
	}
	if g, e := m.Len(), 1; g != e {
		t.Fatal(g, e)
	}
}

func TestHashMapManyKeys(t *testing.T) {
	m := NewIntMap[int, int]()
	for i := 0; i < 2000; i++ {
		m.InsertUnique(i, i*i)
	}
	if g, e := m.Len(), 2000; g != e {
		t.Fatal(g, e)
	}
	if loadDen*m.Len() > loadNum*m.NumBuckets() {
		t.Fatal(m.Len(), m.NumBuckets())
	}
	for i := 0; i < 2000; i++ {
		v, ok := m.Get(i)
		if !ok {
			t.Fatal(i)
		}
		if g, e := v, i*i; g != e {
			t.Fatal(g, e)
		}
	}
}

// Colliding hashes must still resolve by key equality.
func TestCollidingHashes(t *testing.T) {
	collide := Policy[int]{
		Hash:  func(v int) hashkey.Key { return hashkey.Key(v % 4) },
		Equal: func(a, b int) bool { return a == b },
	}
	tb := NewTable(collide)

	for i := 0; i < 64; i++ {
		if !tb.Insert(i) {
			t.Fatal(i)
		}
	}
	checkTable(t, tb)
	for i := 0; i < 64; i++ {
		it := tb.Find(i)
		if !it.Ok() || it.Value() != i {
			t.Fatal(i)
		}
	}
	for i := 0; i < 64; i += 2 {
		if !tb.Remove(i) {
			t.Fatal(i)
		}
		checkTable(t, tb)
	}
	for i := 0; i < 64; i++ {
		if g, e := tb.Contains(i), i%2 == 1; g != e {
			t.Fatal(i, g, e)
		}
	}
}
