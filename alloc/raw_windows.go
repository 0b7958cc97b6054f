//go:build windows

// Adapted from cznic/memory's mmap_windows.go: VirtualAlloc /
// VirtualFree via a lazily-bound kernel32.dll. VirtualFree releases
// only whole allocations at their original base, so alignment is
// satisfied with the header-prefixed scheme instead of trimming: the
// word immediately before the returned address records the allocation
// base.
package alloc

import (
	"syscall"
	"unsafe"
)

const (
	memCommit     = 0x1000
	memReserve    = 0x2000
	memRelease    = 0x8000
	pageReadWrite = 0x0004
)

var (
	modkernel32      = syscall.NewLazyDLL("kernel32.dll")
	procVirtualAlloc = modkernel32.NewProc("VirtualAlloc")
	procVirtualFree  = modkernel32.NewProc("VirtualFree")
)

const ptrSize = int(unsafe.Sizeof(uintptr(0)))

func osMallocAligned(size, alignment int) ([]byte, error) {
	total := size + alignment + ptrSize
	base, _, err := procVirtualAlloc.Call(0, uintptr(total), memCommit|memReserve, pageReadWrite)
	if base == 0 {
		return nil, err
	}

	user := (base + uintptr(ptrSize) + uintptr(alignment-1)) &^ uintptr(alignment-1)
	*(*uintptr)(unsafe.Pointer(user - uintptr(ptrSize))) = base

	return unsafe.Slice((*byte)(unsafe.Pointer(user)), size), nil
}

func osFreeAligned(b []byte) error {
	user := uintptr(unsafe.Pointer(&b[0]))
	base := *(*uintptr)(unsafe.Pointer(user - uintptr(ptrSize)))
	r, _, err := procVirtualFree.Call(base, 0, memRelease)
	if r == 0 {
		return err
	}
	return nil
}
