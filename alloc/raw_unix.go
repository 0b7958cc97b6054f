//go:build !windows

// Adapted from cznic/memory's mmap_unix.go (itself adapted by
// the Memory Authors from Evan Shaw's mmap-go): anonymous mappings,
// with partial unmapping done through a raw munmap syscall since the
// stdlib Munmap only accepts whole mappings it handed out itself.
package alloc

import (
	"os"
	"syscall"
	"unsafe"
)

var osPageSize = os.Getpagesize()

// osMallocAligned maps align2Up(size, page) bytes plus, when the
// requested alignment exceeds the page size, one alignment's worth of
// slack, then unmaps the misaligned head and the surplus tail. Both
// trims are page-multiples: the base is page-aligned and any
// above-page alignment is a page-multiple itself.
func osMallocAligned(size, alignment int) ([]byte, error) {
	mapped := align2Up(size, osPageSize)
	slack := 0
	if alignment > osPageSize {
		slack = alignment
	}

	raw, err := syscall.Mmap(-1, 0, mapped+slack,
		syscall.PROT_READ|syscall.PROT_WRITE, syscall.MAP_ANON|syscall.MAP_PRIVATE)
	if err != nil {
		return nil, err
	}

	if slack > 0 {
		head := 0
		if mod := int(uintptr(unsafe.Pointer(&raw[0]))) & (alignment - 1); mod != 0 {
			head = alignment - mod
		}
		if head > 0 {
			if err := unmap(unsafe.Pointer(&raw[0]), head); err != nil {
				return nil, err
			}
			raw = raw[head:]
		}
		if tail := len(raw) - mapped; tail > 0 {
			if err := unmap(unsafe.Pointer(&raw[mapped]), tail); err != nil {
				return nil, err
			}
			raw = raw[:mapped]
		}
	}

	return raw[:size:size], nil
}

func osFreeAligned(b []byte) error {
	return unmap(unsafe.Pointer(&b[0]), align2Up(len(b), osPageSize))
}

func unmap(addr unsafe.Pointer, size int) error {
	if _, _, errno := syscall.Syscall(syscall.SYS_MUNMAP, uintptr(addr), uintptr(size), 0); errno != 0 {
		return errno
	}
	return nil
}
