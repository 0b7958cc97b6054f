// Package array implements a contiguous (buffer, capacity, length)
// dynamic array with power-of-two growth, backed by buffer-sized
// aligned allocations drawn from alloc.Allocator rather than the Go
// runtime's own slice growth — the array owns and grows its backing
// store exactly the way korin's Array<T> does, through
// MallocObject/FreeObject.
//
// Ported from korin's core/public/containers/array.h, converged on
// the growth-based reserve variant referenced from containers_types.h
// rather than the earlier slack-based one.
//
// The backing store lives outside the Go heap, so T must not contain
// Go pointers: the collector cannot scan allocator-owned buffers.
// Pointerful payloads belong in the node containers (list, tree,
// hash), whose nodes the collector does see.
package array

import (
	"unsafe"

	"github.com/cznic/mathutil"
	"github.com/sneppy/korin-new/alloc"
)

// MinCapacity is the smallest non-zero capacity an Array ever holds,
// korin's ARRAY_MIN_CAPACITY.
const MinCapacity = 4

// Array is a contiguous, power-of-two-growth dynamic array. Its zero
// value is an empty array ready to use, drawing from alloc.Global()
// on first growth.
type Array[T any] struct {
	Alloc    alloc.Allocator
	buf      []byte
	length   int
	capacity int
}

func elemSize[T any]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}

func nextPow2(n int) int {
	if n <= 0 {
		return 0
	}
	if n == 1 {
		return 1
	}
	return 1 << uint(mathutil.BitLen(n-1))
}

func growthCapacity(required int) int {
	c := nextPow2(required)
	if c < MinCapacity {
		c = MinCapacity
	}
	return c
}

func (a *Array[T]) allocator() alloc.Allocator {
	if a.Alloc == nil {
		a.Alloc = alloc.Global()
	}
	return a.Alloc
}

// New constructs an empty array.
func New[T any]() *Array[T] {
	return &Array[T]{}
}

// NewWithCapacity constructs an empty array that can hold at least n
// elements without reallocating.
func NewWithCapacity[T any](n int) *Array[T] {
	a := &Array[T]{}
	if n > 0 {
		a.reserve(growthCapacity(n))
	}
	return a
}

// NewFromSlice constructs an array carrying a copy of items.
func NewFromSlice[T any](items []T) *Array[T] {
	a := NewWithCapacity[T](len(items))
	a.Append(items...)
	return a
}

// NewRepeat constructs an array of n copies of v.
func NewRepeat[T any](v T, n int) *Array[T] {
	a := NewWithCapacity[T](n)
	for i := 0; i < n; i++ {
		a.Append(v)
	}
	return a
}

// Len returns the number of elements currently stored.
func (a *Array[T]) Len() int { return a.length }

// Cap returns the current capacity. It is always zero or a power of
// two that is at least MinCapacity.
func (a *Array[T]) Cap() int { return a.capacity }

func (a *Array[T]) items() []T {
	if a.capacity == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&a.buf[0])), a.capacity)
}

// Items returns the live slice view of the array's elements, of
// length Len(). It aliases the array's backing store: mutating
// elements through it mutates the array; growing or shrinking the
// array invalidates it. Ranging over it forward or by descending
// index is the iterator surface of this container.
func (a *Array[T]) Items() []T {
	return a.items()[:a.length]
}

// At returns the element at index.
func (a *Array[T]) At(index int) T {
	assertInBounds(index, a.length)
	return a.items()[index]
}

// Set overwrites the element at index.
func (a *Array[T]) Set(index int, v T) {
	assertInBounds(index, a.length)
	a.items()[index] = v
}

func (a *Array[T]) reserve(newCap int) {
	if newCap <= a.capacity {
		return
	}

	sz := elemSize[T]()
	newBuf, err := a.allocator().Malloc(newCap*sz, alignOf[T]())
	if err != nil || newBuf == nil {
		panic(alloc.ErrOutOfMemory)
	}

	if a.capacity > 0 {
		copy(newBuf, a.buf[:a.length*sz])
		_ = a.allocator().Free(a.buf)
	}

	a.buf = newBuf
	a.capacity = newCap
}

func alignOf[T any]() int {
	var zero T
	align := int(unsafe.Alignof(zero))
	if align < alloc.MinAlignment {
		align = alloc.MinAlignment
	}
	return align
}

// shrinkIfNeeded halves capacity while the length still fits in a
// quarter of it, stopping at MinCapacity.
func (a *Array[T]) shrinkIfNeeded() {
	for a.capacity > MinCapacity && a.length*4 <= a.capacity {
		newCap := a.capacity / 2
		sz := elemSize[T]()

		newBuf, err := a.allocator().Malloc(newCap*sz, alignOf[T]())
		if err != nil || newBuf == nil {
			return // keep the larger buffer rather than fail a shrink
		}
		copy(newBuf, a.buf[:a.length*sz])
		_ = a.allocator().Free(a.buf)

		a.buf = newBuf
		a.capacity = newCap
	}
}

// Append adds items to the end of the array, growing to the smallest
// power of two capacity that fits.
func (a *Array[T]) Append(items ...T) {
	if len(items) == 0 {
		return
	}
	a.reserve(growthCapacity(a.length + len(items)))
	copy(a.items()[a.length:], items)
	a.length += len(items)
}

// Insert splices items into the array starting at index, shifting
// existing elements at and after index to the right.
func (a *Array[T]) Insert(index int, items ...T) {
	assertInBounds(index, a.length+1)
	if len(items) == 0 {
		return
	}

	a.reserve(growthCapacity(a.length + len(items)))
	dst := a.items()
	moveItems(dst[index+len(items):a.length+len(items)], dst[index:a.length])
	copy(dst[index:], items)
	a.length += len(items)
}

// moveItems copies src into dst, moving backward (from the tail) when
// the destination overlaps and sits after the source.
func moveItems[T any](dst, src []T) {
	if len(src) == 0 {
		return
	}
	if len(dst) > 0 && len(src) > 0 {
		dstAddr := uintptr(unsafe.Pointer(&dst[0]))
		srcAddr := uintptr(unsafe.Pointer(&src[0]))
		if dstAddr > srcAddr {
			for i := len(src) - 1; i >= 0; i-- {
				dst[i] = src[i]
			}
			return
		}
	}
	copy(dst, src)
}

// Pop removes and returns the last element.
func (a *Array[T]) Pop() (T, bool) {
	var zero T
	if a.length == 0 {
		return zero, false
	}
	v := a.items()[a.length-1]
	a.items()[a.length-1] = zero
	a.length--
	a.shrinkIfNeeded()
	return v, true
}

// RemoveAt removes count elements starting at index.
func (a *Array[T]) RemoveAt(index, count int) {
	if count <= 0 {
		return
	}
	assertInBounds(index, a.length)
	assertInBounds(index+count-1, a.length)

	dst := a.items()
	moveItems(dst[index:a.length-count], dst[index+count:a.length])

	var zero T
	for i := a.length - count; i < a.length; i++ {
		dst[i] = zero
	}

	a.length -= count
	a.shrinkIfNeeded()
}

// Remove removes the half-open range [begin, end).
func (a *Array[T]) Remove(begin, end int) {
	if end <= begin {
		return
	}
	a.RemoveAt(begin, end-begin)
}

// Clone returns a new array carrying a copy of a's elements.
func (a *Array[T]) Clone() *Array[T] {
	return a.Slice(0, a.length)
}

// Concat appends a copy of other's elements to a.
func (a *Array[T]) Concat(other *Array[T]) {
	a.Append(other.Items()...)
}

// Slice returns a new array carrying a copy of the half-open range
// [begin, end).
func (a *Array[T]) Slice(begin, end int) *Array[T] {
	if end < begin {
		end = begin
	}
	out := NewWithCapacity[T](end - begin)
	out.Append(a.items()[begin:end]...)
	return out
}

// Close releases the array's backing buffer. The array is empty and
// ready to reuse after Close returns.
func (a *Array[T]) Close() error {
	if a.capacity == 0 {
		return nil
	}
	err := a.allocator().Free(a.buf)
	a.buf, a.capacity, a.length = nil, 0, 0
	return err
}
