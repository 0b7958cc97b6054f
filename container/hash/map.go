package hash

import (
	"github.com/sneppy/korin-new/container/opt"
	"github.com/sneppy/korin-new/hashkey"
)

// HashMap is an unordered key-value container storing opt.Pair entries
// whose hashing and equality reach only the key.
type HashMap[K, V any] struct {
	t *Table[opt.Pair[K, V]]
}

// NewMap constructs an empty hash map using keyPolicy for the keys.
func NewMap[K, V any](keyPolicy Policy[K]) *HashMap[K, V] {
	return &HashMap[K, V]{t: NewTable(Policy[opt.Pair[K, V]]{
		Hash:  func(p opt.Pair[K, V]) hashkey.Key { return keyPolicy.Hash(p.First) },
		Equal: func(a, b opt.Pair[K, V]) bool { return keyPolicy.Equal(a.First, b.First) },
	})}
}

// NewIntMap constructs an empty hash map over an integer key type.
func NewIntMap[K hashkey.Integer, V any]() *HashMap[K, V] {
	return NewMap[K, V](IntPolicy[K]())
}

// NewStringMap constructs an empty hash map over string keys.
func NewStringMap[V any]() *HashMap[string, V] {
	return NewMap[string, V](StringPolicy())
}

// Len returns the number of entries.
func (m *HashMap[K, V]) Len() int { return m.t.Len() }

// NumBuckets returns the table's current bucket count.
func (m *HashMap[K, V]) NumBuckets() int { return m.t.NumBuckets() }

// InsertUnique sets key to value, overwriting an existing entry.
// Reports whether a new entry was created.
func (m *HashMap[K, V]) InsertUnique(key K, value V) bool {
	return m.t.InsertUnique(opt.MakePair(key, value))
}

// Get returns the value stored under key.
func (m *HashMap[K, V]) Get(key K) (V, bool) {
	var zero V
	it := m.t.Find(opt.MakePair(key, zero))
	if !it.Ok() {
		return zero, false
	}
	return it.Value().Second, true
}

// At returns a mutable reference to the value under key, creating a
// zero-valued entry when the key is missing.
func (m *HashMap[K, V]) At(key K) *V {
	var zero V
	it, _ := m.t.FindOrEmplace(opt.MakePair(key, zero))
	return &it.Ref().Second
}

// Find returns an iterator to the entry under key, or the end
// iterator.
func (m *HashMap[K, V]) Find(key K) Iterator[opt.Pair[K, V]] {
	var zero V
	return m.t.Find(opt.MakePair(key, zero))
}

// Contains reports whether an entry exists under key.
func (m *HashMap[K, V]) Contains(key K) bool { return m.Find(key).Ok() }

// RemoveAt removes the entry under key, moving its value out. Reports
// whether an entry existed.
func (m *HashMap[K, V]) RemoveAt(key K) (V, bool) {
	var zero V
	it := m.t.Find(opt.MakePair(key, zero))
	if !it.Ok() {
		return zero, false
	}
	v := it.Value().Second
	m.t.RemoveIt(it)
	return v, true
}

// Begin returns an iterator over every entry, in chain order.
func (m *HashMap[K, V]) Begin() Iterator[opt.Pair[K, V]] { return m.t.Begin() }

// Keys returns the keys in chain order.
func (m *HashMap[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for it := m.Begin(); it.Ok(); it = it.Next() {
		out = append(out, it.Value().First)
	}
	return out
}
