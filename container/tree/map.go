package tree

import (
	"golang.org/x/exp/constraints"

	"github.com/sneppy/korin-new/container/opt"
)

// Map is an ordered key-value container storing opt.Pair nodes whose
// ordering reaches only the key, as korin's Map<K, V>.
type Map[K, V any] struct {
	t *Tree[opt.Pair[K, V]]
}

// NewMap constructs an empty map whose keys are ordered by cmp.
func NewMap[K, V any](cmp Compare[K]) *Map[K, V] {
	return &Map[K, V]{t: New(func(a, b opt.Pair[K, V]) int {
		return cmp(a.First, b.First)
	})}
}

// NewOrderedMap constructs an empty map over a naturally ordered key
// type.
func NewOrderedMap[K constraints.Ordered, V any]() *Map[K, V] {
	return NewMap[K, V](Ordered[K]())
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int { return m.t.Len() }

// InsertUnique sets key to value, overwriting an existing entry.
// Reports whether a new entry was created.
func (m *Map[K, V]) InsertUnique(key K, value V) bool {
	_, inserted := m.t.InsertUnique(opt.MakePair(key, value))
	return inserted
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	var zero V
	it := m.Find(key)
	if !it.Ok() {
		return zero, false
	}
	return it.Value().Second, true
}

// At returns a mutable reference to the value under key, creating a
// zero-valued entry when the key is missing — korin's operator[].
func (m *Map[K, V]) At(key K) *V {
	var zero V
	it, _ := m.t.FindOrEmplace(opt.MakePair(key, zero))
	return &it.Ref().Second
}

// Find returns an iterator to the entry under key, or the end
// iterator.
func (m *Map[K, V]) Find(key K) Iterator[opt.Pair[K, V]] {
	var zero V
	return m.t.Find(opt.MakePair(key, zero))
}

// Contains reports whether an entry exists under key.
func (m *Map[K, V]) Contains(key K) bool { return m.Find(key).Ok() }

// RemoveAt removes the entry under key, moving its value out. Reports
// whether an entry existed.
func (m *Map[K, V]) RemoveAt(key K) (V, bool) {
	var zero V
	it := m.Find(key)
	if !it.Ok() {
		return zero, false
	}
	v := it.Value().Second
	m.t.Remove(it)
	return v, true
}

// Remove removes the entry it points at and returns an iterator to its
// in-order successor.
func (m *Map[K, V]) Remove(it Iterator[opt.Pair[K, V]]) Iterator[opt.Pair[K, V]] {
	return m.t.Remove(it)
}

// Begin returns an iterator to the entry with the smallest key.
func (m *Map[K, V]) Begin() Iterator[opt.Pair[K, V]] { return m.t.Begin() }

// End returns the past-the-end iterator.
func (m *Map[K, V]) End() Iterator[opt.Pair[K, V]] { return m.t.End() }

// Keys returns the keys in ascending order.
func (m *Map[K, V]) Keys() []K {
	out := make([]K, 0, m.Len())
	for it := m.Begin(); it.Ok(); it = it.Next() {
		out = append(out, it.Value().First)
	}
	return out
}
