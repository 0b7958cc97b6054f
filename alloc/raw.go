package alloc

// RawAllocator is the aligned raw allocator, korin's MallocAnsi: it
// satisfies malloc(size, alignment) directly against the OS. On
// POSIX-like hosts this maps enough pages to cover size plus the
// worst-case alignment slack and trims the unused head and tail back
// to the kernel, cznic/memory's "mmap wide, trim narrow" trick
// generalized from a fixed page size to a caller-supplied alignment.
// On Windows a header word ahead of the returned address records the
// original allocation base.
//
// Its zero value is ready to use.
type RawAllocator struct {
	nallocs int
	nbytes  int
}

var _ Allocator = (*RawAllocator)(nil)

// Malloc satisfies the Allocator interface. alignment must be a power
// of two and at least MinAlignment; violating that is a caller bug,
// checked only in debug builds (see debug_on.go).
func (a *RawAllocator) Malloc(size, alignment int) ([]byte, error) {
	assertValidRequest(size, alignment)

	if size <= 0 {
		return nil, nil
	}

	b, err := osMallocAligned(size, alignment)
	if err != nil {
		return nil, ErrOutOfMemory
	}

	a.nallocs++
	debugAdd(&a.nbytes, len(b))

	return b, nil
}

// Free satisfies the Allocator interface. b must be a slice this
// RawAllocator previously returned from Malloc.
func (a *RawAllocator) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	a.nallocs--
	debugAdd(&a.nbytes, -len(b))

	return osFreeAligned(b)
}

// UsedMemory returns the number of bytes currently allocated by this
// allocator. Outside debug builds it always returns zero.
func (a *RawAllocator) UsedMemory() int {
	return a.nbytes
}
