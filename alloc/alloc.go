// Package alloc provides the allocator layer: an Allocator interface,
// a page-backed aligned raw allocator, and a pooled slab allocator that
// indexes its pools by buffer address through an rbtree.Node tree so
// that Free can locate the owning pool in logarithmic time.
//
// Ported from korin's core/public/hal/{malloc.h,malloc_ansi.h,
// malloc_pool.h}, in the low-level unsafe.Pointer idiom of
// cznic/memory: allocations are handed out as []byte
// slices carved out of OS-mapped pages. In-line metadata lives in the
// mapped memory itself: the Windows raw allocator keeps a base-address
// word just ahead of the returned slice, and each pooled block keeps
// its free-list link in a pointer slot just after the slice. Pool
// headers are ordinary Go structs, indexed by the rbtree.
package alloc

import "errors"

// ErrOutOfMemory is returned when the backing OS allocation for a new
// page or pool buffer fails. No partial state is left registered: a
// pool whose buffer allocation failed is never linked into the index
// tree or free list.
var ErrOutOfMemory = errors.New("alloc: out of memory")

// ErrNotOwned is signalled by the pooled allocator's Free when given a
// pointer whose owning pool cannot be found in the index tree. This is
// a caller bug, mirroring korin's "not found in pool tree" assertion
// in MallocPooled::free, but since the tree descent happens anyway the
// miss is reported in every build flavor rather than debug only.
var ErrNotOwned = errors.New("alloc: pointer not owned by this allocator")

// Allocator is the global dispatch surface every container in this
// module allocates through. A concrete allocator must support
// aligned allocation, freeing by the exact slice it returned, and
// (optionally, debug builds only) reporting bytes currently in use.
type Allocator interface {
	// Malloc returns a slice of size bytes whose backing address is a
	// multiple of alignment, or (nil, ErrOutOfMemory) on exhaustion.
	// alignment must be a power of two and at least the pointer size;
	// violating this is a caller bug (see debug_on.go).
	Malloc(size, alignment int) ([]byte, error)

	// Free releases a slice previously returned by Malloc on this
	// same Allocator. Freeing a slice not owned by this allocator, or
	// double-freeing, is a caller bug and is not required to be
	// detected outside debug builds.
	Free(b []byte) error

	// UsedMemory reports the number of bytes currently allocated.
	// Outside debug builds it may always return zero.
	UsedMemory() int
}

// MinAlignment is the minimum alignment accepted by any Allocator in
// this package: the platform pointer size, korin's MIN_ALIGNMENT.
const MinAlignment = 8

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// align2Up rounds n up to the nearest multiple of align, which must
// be a power of two. Same bit trick as korin's math::align2Up.
func align2Up(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
