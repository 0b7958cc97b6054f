package hash

// HashSet is an unordered set of unique elements with the same
// algebraic operations as the ordered tree.Set, backed by a chained
// Table.
type HashSet[T any] struct {
	t *Table[T]
}

// NewSet constructs an empty hash set using policy.
func NewSet[T any](policy Policy[T]) *HashSet[T] {
	return &HashSet[T]{t: NewTable(policy)}
}

// NewSetOf constructs a hash set holding the unique elements of items.
func NewSetOf[T any](policy Policy[T], items ...T) *HashSet[T] {
	s := NewSet(policy)
	for _, v := range items {
		s.Insert(v)
	}
	return s
}

// Len returns the number of elements.
func (s *HashSet[T]) Len() int { return s.t.Len() }

// Insert adds v if absent, reporting whether it was added.
func (s *HashSet[T]) Insert(v T) bool { return s.t.Insert(v) }

// Remove removes the element equal to v, reporting whether one
// existed.
func (s *HashSet[T]) Remove(v T) bool { return s.t.Remove(v) }

// Contains reports whether an element equal to v is present.
func (s *HashSet[T]) Contains(v T) bool { return s.t.Contains(v) }

// Find returns an iterator to the element equal to v, or the end
// iterator.
func (s *HashSet[T]) Find(v T) Iterator[T] { return s.t.Find(v) }

// Begin returns an iterator over every element, in chain order.
func (s *HashSet[T]) Begin() Iterator[T] { return s.t.Begin() }

// Values returns the elements in chain order.
func (s *HashSet[T]) Values() []T { return s.t.Values() }

// Clone returns a copy of the set.
func (s *HashSet[T]) Clone() *HashSet[T] {
	out := NewSet(s.t.policy)
	for it := s.Begin(); it.Ok(); it = it.Next() {
		out.Insert(it.Value())
	}
	return out
}

// UnionWith inserts every element of other (|=).
func (s *HashSet[T]) UnionWith(other *HashSet[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		s.Insert(it.Value())
	}
}

// IntersectWith keeps only the elements also present in other (&=).
func (s *HashSet[T]) IntersectWith(other *HashSet[T]) {
	for it := s.Begin(); it.Ok(); {
		if !other.Contains(it.Value()) {
			it = s.t.RemoveIt(it)
		} else {
			it = it.Next()
		}
	}
}

// SubtractWith removes every element present in other (-=).
func (s *HashSet[T]) SubtractWith(other *HashSet[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		s.Remove(it.Value())
	}
}

// SymDiffWith flips membership of every element of other (^=).
func (s *HashSet[T]) SymDiffWith(other *HashSet[T]) {
	for it := other.Begin(); it.Ok(); it = it.Next() {
		v := it.Value()
		if !s.Remove(v) {
			s.Insert(v)
		}
	}
}

// SetUnion returns a fresh set holding every element of a or b.
func SetUnion[T any](a, b *HashSet[T]) *HashSet[T] {
	out := a.Clone()
	out.UnionWith(b)
	return out
}

// SetIntersection returns a fresh set holding the elements present in
// both a and b.
func SetIntersection[T any](a, b *HashSet[T]) *HashSet[T] {
	out := a.Clone()
	out.IntersectWith(b)
	return out
}

// SetDifference returns a fresh set holding the elements of a not in
// b.
func SetDifference[T any](a, b *HashSet[T]) *HashSet[T] {
	out := a.Clone()
	out.SubtractWith(b)
	return out
}

// SetSymDiff returns a fresh set holding the elements in exactly one
// of a and b.
func SetSymDiff[T any](a, b *HashSet[T]) *HashSet[T] {
	out := a.Clone()
	out.SymDiffWith(b)
	return out
}

// IsSubsetOf reports whether every element of s is in other.
func (s *HashSet[T]) IsSubsetOf(other *HashSet[T]) bool {
	if s.Len() > other.Len() {
		return false
	}
	for it := s.Begin(); it.Ok(); it = it.Next() {
		if !other.Contains(it.Value()) {
			return false
		}
	}
	return true
}

// IsSupersetOf reports whether every element of other is in s.
func (s *HashSet[T]) IsSupersetOf(other *HashSet[T]) bool {
	return other.IsSubsetOf(s)
}

// IsDisjoint reports whether s and other share no element.
func (s *HashSet[T]) IsDisjoint(other *HashSet[T]) bool {
	small, big := s, other
	if small.Len() > big.Len() {
		small, big = big, small
	}
	for it := small.Begin(); it.Ok(); it = it.Next() {
		if big.Contains(it.Value()) {
			return false
		}
	}
	return true
}

// Equal reports whether s and other hold exactly the same elements.
func (s *HashSet[T]) Equal(other *HashSet[T]) bool {
	return s.Len() == other.Len() && s.IsSubsetOf(other)
}
