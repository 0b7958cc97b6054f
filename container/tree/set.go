package tree

import "golang.org/x/exp/constraints"

// Set is an ordered set of unique elements with the algebraic
// operations of korin's Set<T>: union, intersection, difference and
// symmetric difference, both in-place and as fresh sets.
type Set[T any] struct {
	t *Tree[T]
}

// NewSet constructs an empty set ordered by cmp.
func NewSet[T any](cmp Compare[T]) *Set[T] {
	return &Set[T]{t: New(cmp)}
}

// NewSetOf constructs a set holding the unique elements of items.
func NewSetOf[T constraints.Ordered](items ...T) *Set[T] {
	s := NewSet(Ordered[T]())
	for _, v := range items {
		s.Insert(v)
	}
	return s
}

// Len returns the number of elements.
func (s *Set[T]) Len() int { return s.t.Len() }

// Insert adds v if no equal element is present, reporting whether it
// was added.
func (s *Set[T]) Insert(v T) bool {
	_, inserted := s.t.FindOrEmplace(v)
	return inserted
}

// Remove removes the element equal to v, reporting whether one
// existed.
func (s *Set[T]) Remove(v T) bool { return s.t.RemoveKey(v) }

// Contains reports whether an element equal to v is present.
func (s *Set[T]) Contains(v T) bool { return s.t.Contains(v) }

// Find returns an iterator to the element equal to v, or the end
// iterator.
func (s *Set[T]) Find(v T) Iterator[T] { return s.t.Find(v) }

// Begin returns an iterator to the smallest element.
func (s *Set[T]) Begin() Iterator[T] { return s.t.Begin() }

// Values returns the elements in ascending order.
func (s *Set[T]) Values() []T { return s.t.Values() }

// Clone returns a copy of the set.
func (s *Set[T]) Clone() *Set[T] {
	out := NewSet(s.t.cmp)
	for it := s.t.Begin(); it.Ok(); it = it.Next() {
		out.t.Emplace(it.Value())
	}
	return out
}

// UnionWith inserts every element of other (|=).
func (s *Set[T]) UnionWith(other *Set[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		s.Insert(it.Value())
	}
}

// IntersectWith keeps only the elements also present in other (&=).
func (s *Set[T]) IntersectWith(other *Set[T]) {
	for it := s.t.Begin(); it.Ok(); {
		if !other.Contains(it.Value()) {
			it = s.t.Remove(it)
		} else {
			it = it.Next()
		}
	}
}

// SubtractWith removes every element present in other (-=).
func (s *Set[T]) SubtractWith(other *Set[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		s.Remove(it.Value())
	}
}

// SymDiffWith flips membership of every element of other (^=): shared
// elements are removed, others inserted.
func (s *Set[T]) SymDiffWith(other *Set[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		v := it.Value()
		if !s.Remove(v) {
			s.Insert(v)
		}
	}
}

// Union returns a fresh set holding every element of a or b.
func Union[T any](a, b *Set[T]) *Set[T] {
	out := a.Clone()
	out.UnionWith(b)
	return out
}

// Intersection returns a fresh set holding the elements present in
// both a and b.
func Intersection[T any](a, b *Set[T]) *Set[T] {
	out := a.Clone()
	out.IntersectWith(b)
	return out
}

// Difference returns a fresh set holding the elements of a not in b.
func Difference[T any](a, b *Set[T]) *Set[T] {
	out := a.Clone()
	out.SubtractWith(b)
	return out
}

// SymDiff returns a fresh set holding the elements in exactly one of a
// and b.
func SymDiff[T any](a, b *Set[T]) *Set[T] {
	out := a.Clone()
	out.SymDiffWith(b)
	return out
}

// IsSubsetOf reports whether every element of s is in other. Both sets
// are walked once in order, rather than calling Contains per element.
func (s *Set[T]) IsSubsetOf(other *Set[T]) bool {
	a, b := s.Begin(), other.Begin()
	for a.Ok() {
		if !b.Ok() {
			return false
		}
		switch c := s.t.cmp(a.Value(), b.Value()); {
		case c < 0:
			return false
		case c > 0:
			b = b.Next()
		default:
			a, b = a.Next(), b.Next()
		}
	}
	return true
}

// IsSupersetOf reports whether every element of other is in s.
func (s *Set[T]) IsSupersetOf(other *Set[T]) bool {
	return other.IsSubsetOf(s)
}

// IsProperSubsetOf reports whether s is a subset of other and other
// holds at least one element s does not. Subset comparison is a
// partial order: two unrelated sets answer false to both directions.
func (s *Set[T]) IsProperSubsetOf(other *Set[T]) bool {
	return s.Len() < other.Len() && s.IsSubsetOf(other)
}

// IsProperSupersetOf reports whether s is a superset of other with at
// least one extra element.
func (s *Set[T]) IsProperSupersetOf(other *Set[T]) bool {
	return other.IsProperSubsetOf(s)
}

// IsDisjoint reports whether s and other share no element. Not
// derivable from the subset predicates; a single ordered merge walk.
func (s *Set[T]) IsDisjoint(other *Set[T]) bool {
	a, b := s.Begin(), other.Begin()
	for a.Ok() && b.Ok() {
		switch c := s.t.cmp(a.Value(), b.Value()); {
		case c < 0:
			a = a.Next()
		case c > 0:
			b = b.Next()
		default:
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold exactly the same elements.
func (s *Set[T]) Equal(other *Set[T]) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}
