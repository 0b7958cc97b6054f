// Package opt implements the small value utilities: Optional[T],
// Pair[K, V] and fixed-arity tuples. Ported from korin's
// core/public/containers/{optional.h,pair.h,tuple.h}; Go has no
// assignment-operator overloading and no variadic generic type
// parameters, so the C++ Optional's construct/destruct/overwrite
// operators become explicit Set/Reset methods, and the C++ variadic
// Tuple<T...> converges on a small family of fixed-arity Tuple2/3/4
// structs rather than an open-ended template.
package opt

// Optional holds either a T or nothing: storage for a T paired with
// an initialized flag, so assignment can tell construct from
// overwrite from destruct apart.
type Optional[T any] struct {
	value T
	has   bool
}

// Some constructs an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, has: true}
}

// None constructs an empty Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSome reports whether the Optional holds a value.
func (o Optional[T]) IsSome() bool { return o.has }

// IsNone reports whether the Optional is empty.
func (o Optional[T]) IsNone() bool { return !o.has }

// Get returns the held value and true, or the zero value and false if
// empty.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.has
}

// GetOr returns the held value, or fallback if the Optional is empty.
func (o Optional[T]) GetOr(fallback T) T {
	if o.has {
		return o.value
	}
	return fallback
}

// Set overwrites (or constructs) the held value.
func (o *Optional[T]) Set(v T) {
	o.value = v
	o.has = true
}

// Reset destructs the held value, leaving the Optional empty.
func (o *Optional[T]) Reset() {
	var zero T
	o.value = zero
	o.has = false
}

// Pair is a heterogeneous two-element record with named accessors, as
// korin's Pair<K, V>. Equality is defined on both components.
type Pair[K, V any] struct {
	First  K
	Second V
}

// MakePair constructs a Pair from its two components.
func MakePair[K, V any](k K, v V) Pair[K, V] {
	return Pair[K, V]{First: k, Second: v}
}

// GetKey returns the first (key) component.
func (p Pair[K, V]) GetKey() K { return p.First }

// GetVal returns the second (value) component.
func (p Pair[K, V]) GetVal() V { return p.Second }

// Equal compares two pairs by comparing both components with the
// given equality callables.
func Equal[K, V any](a, b Pair[K, V], keyEq func(K, K) bool, valEq func(V, V) bool) bool {
	return keyEq(a.First, b.First) && valEq(a.Second, b.Second)
}

// Tuple2 is a fixed-arity, two-element heterogeneous record, standing
// in for Tuple<T0, T1>. Get0/Get1 are the by-index accessors; Go's
// lack of variadic type parameters means there is no general Get<T>()
// by-type accessor, so the formatter (container/str) unpacks tuples
// positionally instead of by type, the mechanical consequence of this
// convergence.
type Tuple2[T0, T1 any] struct {
	V0 T0
	V1 T1
}

func MakeTuple2[T0, T1 any](v0 T0, v1 T1) Tuple2[T0, T1] {
	return Tuple2[T0, T1]{V0: v0, V1: v1}
}

func (t Tuple2[T0, T1]) Get0() T0 { return t.V0 }
func (t Tuple2[T0, T1]) Get1() T1 { return t.V1 }

// Tuple3 is a fixed-arity, three-element heterogeneous record.
type Tuple3[T0, T1, T2 any] struct {
	V0 T0
	V1 T1
	V2 T2
}

func MakeTuple3[T0, T1, T2 any](v0 T0, v1 T1, v2 T2) Tuple3[T0, T1, T2] {
	return Tuple3[T0, T1, T2]{V0: v0, V1: v1, V2: v2}
}

func (t Tuple3[T0, T1, T2]) Get0() T0 { return t.V0 }
func (t Tuple3[T0, T1, T2]) Get1() T1 { return t.V1 }
func (t Tuple3[T0, T1, T2]) Get2() T2 { return t.V2 }

// Tuple4 is a fixed-arity, four-element heterogeneous record.
type Tuple4[T0, T1, T2, T3 any] struct {
	V0 T0
	V1 T1
	V2 T2
	V3 T3
}

func MakeTuple4[T0, T1, T2, T3 any](v0 T0, v1 T1, v2 T2, v3 T3) Tuple4[T0, T1, T2, T3] {
	return Tuple4[T0, T1, T2, T3]{V0: v0, V1: v1, V2: v2, V3: v3}
}

func (t Tuple4[T0, T1, T2, T3]) Get0() T0 { return t.V0 }
func (t Tuple4[T0, T1, T2, T3]) Get1() T1 { return t.V1 }
func (t Tuple4[T0, T1, T2, T3]) Get2() T2 { return t.V2 }
func (t Tuple4[T0, T1, T2, T3]) Get3() T3 { return t.V3 }
