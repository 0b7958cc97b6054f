// Package hash implements a chained hash table and the
// HashSet/HashMap built on it: an open-hash table whose
// buckets share one intrusive forward list, so iterating every live
// entry costs O(n) regardless of load factor, with power-of-two
// rehashing when the 0.75 load factor is breached.
//
// Ported from korin's core/public/containers/hash_table.h. The
// shared-chain anchor convention is kept as-is: buckets[i] points at
// the node whose next is the first entry of bucket i, and a
// placeholder node embedded in the table serves as the fixed chain
// head so the first bucket needs no special case.
package hash

import (
	"github.com/sneppy/korin-new/hashkey"
)

// InitialBuckets is the bucket count of a table's first allocation.
const InitialBuckets = 16

// Load factor threshold: rehash so that numItems/numBuckets stays at
// or below loadNum/loadDen after every insertion.
const (
	loadNum = 3
	loadDen = 4
)

// Policy carries the hash and equality callables of a hashed
// container. For key-value containers Equal reaches only the key, so
// a probe holding a zero value still matches.
type Policy[T any] struct {
	Hash  func(T) hashkey.Key
	Equal func(a, b T) bool
}

// IntPolicy returns the default policy for integer elements: identity
// hash, == equality.
func IntPolicy[T hashkey.Integer]() Policy[T] {
	return Policy[T]{
		Hash:  func(v T) hashkey.Key { return hashkey.OfInt(v) },
		Equal: func(a, b T) bool { return a == b },
	}
}

// StringPolicy returns the default policy for string elements:
// Murmur64A over the character bytes, == equality.
func StringPolicy() Policy[string] {
	return Policy[string]{
		Hash:  func(s string) hashkey.Key { return hashkey.OfBytes([]byte(s)) },
		Equal: func(a, b string) bool { return a == b },
	}
}

// Float32Policy returns the default policy for 32-bit float elements:
// masked bitcast hash, == equality.
func Float32Policy() Policy[float32] {
	return Policy[float32]{
		Hash:  hashkey.OfFloat32,
		Equal: func(a, b float32) bool { return a == b },
	}
}

// Float64Policy returns the default policy for 64-bit float elements.
func Float64Policy() Policy[float64] {
	return Policy[float64]{
		Hash:  hashkey.OfFloat64,
		Equal: func(a, b float64) bool { return a == b },
	}
}

// entry is one forward-list node of the shared chain, carrying the
// user value and its precomputed (scrambled) hash key.
type entry[T any] struct {
	next  *entry[T]
	hk    hashkey.Key
	value T
}

// Table is a chained hash table of T. Construct with NewTable.
type Table[T any] struct {
	policy   Policy[T]
	buckets  []*entry[T]
	numItems int

	// placeholder anchors the shared chain: its next is the first
	// live entry of the whole table. Its hk and value are never read.
	placeholder entry[T]
}

// NewTable constructs an empty table using policy for hashing and
// equality.
func NewTable[T any](policy Policy[T]) *Table[T] {
	return &Table[T]{policy: policy}
}

// Len returns the number of live entries.
func (t *Table[T]) Len() int { return t.numItems }

// NumBuckets returns the current bucket count, zero before the first
// insertion and a power of two after.
func (t *Table[T]) NumBuckets() int { return len(t.buckets) }

func (t *Table[T]) keyOf(v T) hashkey.Key {
	return hashkey.Scramble(t.policy.Hash(v))
}

func (t *Table[T]) home(e *entry[T]) int {
	return int(e.hk & hashkey.Key(len(t.buckets)-1))
}

// pushToBucket links e into its bucket's chain segment, in front of
// the bucket's existing entries. No load-factor check; callers reserve
// first.
func (t *Table[T]) pushToBucket(e *entry[T]) {
	idx := int(e.hk & hashkey.Key(len(t.buckets)-1))
	anchor := t.buckets[idx]
	if anchor == nil {
		// Empty bucket: hook e at the head of the global chain via
		// the placeholder. The bucket that owned the displaced first
		// entry was anchored at the placeholder; e takes over as its
		// anchor.
		first := t.placeholder.next
		e.next = first
		t.placeholder.next = e
		if first != nil {
			t.buckets[t.home(first)] = e
		}
		t.buckets[idx] = &t.placeholder
		return
	}
	e.next = anchor.next
	anchor.next = e
}

// reserveOne grows the bucket array so one more entry keeps the load
// factor at or below the threshold, rehashing every entry in place by
// walking the shared chain. The global chain order is rebuilt from
// scratch.
func (t *Table[T]) reserveOne() {
	if len(t.buckets) == 0 {
		t.buckets = make([]*entry[T], InitialBuckets)
		return
	}
	if loadDen*(t.numItems+1) < loadNum*len(t.buckets) {
		return
	}

	head := t.placeholder.next
	t.buckets = make([]*entry[T], len(t.buckets)*2)
	t.placeholder.next = nil
	for e := head; e != nil; {
		next := e.next
		t.pushToBucket(e)
		e = next
	}
}

// findEntry returns the entry matching probe and its predecessor on
// the shared chain, or nil when absent.
func (t *Table[T]) findEntry(hk hashkey.Key, probe T) (e, prev *entry[T]) {
	if len(t.buckets) == 0 {
		return nil, nil
	}
	idx := int(hk & hashkey.Key(len(t.buckets)-1))
	anchor := t.buckets[idx]
	if anchor == nil {
		return nil, nil
	}
	prev = anchor
	for e := anchor.next; e != nil && t.home(e) == idx; prev, e = e, e.next {
		if e.hk == hk && t.policy.Equal(probe, e.value) {
			return e, prev
		}
	}
	return nil, nil
}

// FindOrEmplace returns an iterator to the entry equal to v, inserting
// v when no such entry exists. This is the single primitive under both
// unique insertion and default-construct-on-miss lookups.
func (t *Table[T]) FindOrEmplace(v T) (Iterator[T], bool) {
	hk := t.keyOf(v)
	if e, _ := t.findEntry(hk, v); e != nil {
		return Iterator[T]{t: t, e: e}, false
	}

	t.reserveOne()
	e := &entry[T]{hk: hk, value: v}
	t.pushToBucket(e)
	t.numItems++
	return Iterator[T]{t: t, e: e}, true
}

// Insert inserts v unless an equal entry exists, reporting whether it
// was inserted.
func (t *Table[T]) Insert(v T) bool {
	_, inserted := t.FindOrEmplace(v)
	return inserted
}

// InsertUnique inserts v, overwriting the payload of an existing equal
// entry. Reports whether a new entry was created.
func (t *Table[T]) InsertUnique(v T) bool {
	it, inserted := t.FindOrEmplace(v)
	if !inserted {
		it.e.value = v
	}
	return inserted
}

// Find returns an iterator to the entry equal to probe, or the end
// iterator.
func (t *Table[T]) Find(probe T) Iterator[T] {
	e, _ := t.findEntry(t.keyOf(probe), probe)
	return Iterator[T]{t: t, e: e}
}

// Contains reports whether an entry equal to probe exists.
func (t *Table[T]) Contains(probe T) bool {
	e, _ := t.findEntry(t.keyOf(probe), probe)
	return e != nil
}

// Remove removes the entry equal to probe, reporting whether one
// existed.
func (t *Table[T]) Remove(probe T) bool {
	e, prev := t.findEntry(t.keyOf(probe), probe)
	if e == nil {
		return false
	}
	t.removeEntry(e, prev)
	return true
}

// RemoveIt removes the entry it points at and returns an iterator to
// the next entry on the shared chain. Iterators to other entries stay
// valid.
func (t *Table[T]) RemoveIt(it Iterator[T]) Iterator[T] {
	next := it.e.next
	e, prev := t.findEntry(it.e.hk, it.e.value)
	if e != nil {
		t.removeEntry(e, prev)
	}
	return Iterator[T]{t: t, e: next}
}

// removeEntry unlinks e, whose chain predecessor is prev, keeping the
// anchor bookkeeping straight: if e anchored the next bucket, prev
// takes over; if e's own bucket is now empty, its anchor is cleared.
func (t *Table[T]) removeEntry(e, prev *entry[T]) {
	idx := t.home(e)
	prev.next = e.next

	if e.next != nil && t.home(e.next) != idx {
		t.buckets[t.home(e.next)] = prev
	}

	anchor := t.buckets[idx]
	if anchor.next == nil || t.home(anchor.next) != idx {
		t.buckets[idx] = nil
	}

	e.next = nil
	t.numItems--
}

// Reset empties the table, keeping the bucket array.
func (t *Table[T]) Reset() {
	for i := range t.buckets {
		t.buckets[i] = nil
	}
	t.placeholder.next = nil
	t.numItems = 0
}

// Values returns every live entry in chain order.
func (t *Table[T]) Values() []T {
	out := make([]T, 0, t.numItems)
	for e := t.placeholder.next; e != nil; e = e.next {
		out = append(out, e.value)
	}
	return out
}

// Iterator points at one entry of a Table, or past the end. Iterators
// stay valid across insertions that do not trigger a rehash and
// across removal of other entries.
type Iterator[T any] struct {
	t *Table[T]
	e *entry[T]
}

// Begin returns an iterator to the first entry on the shared chain.
func (t *Table[T]) Begin() Iterator[T] {
	return Iterator[T]{t: t, e: t.placeholder.next}
}

// End returns the past-the-end iterator.
func (t *Table[T]) End() Iterator[T] { return Iterator[T]{t: t} }

// Ok reports whether the iterator points at a live entry.
func (it Iterator[T]) Ok() bool { return it.e != nil }

// Value returns the entry the iterator points at.
func (it Iterator[T]) Value() T { return it.e.value }

// Ref returns a pointer to the entry's value. The caller must not
// mutate the part of the value the table hashes.
func (it Iterator[T]) Ref() *T { return &it.e.value }

// Next returns an iterator to the following entry on the shared chain.
func (it Iterator[T]) Next() Iterator[T] {
	if it.e == nil {
		return it
	}
	return Iterator[T]{t: it.t, e: it.e.next}
}
