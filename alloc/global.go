package alloc

// gAlloc is the process-wide allocator every container in this module
// draws from unless it embeds a private allocator, mirroring korin's
// global gMalloc handle. It is mutable state, written only at process
// initialization; writing it concurrently with allocation traffic is
// undefined.
var gAlloc Allocator = &RawAllocator{}

// Global returns the process-wide allocator.
func Global() Allocator {
	return gAlloc
}

// SetGlobal installs a as the process-wide allocator. Intended to be
// called once, at startup, before any container allocates — the
// runtime stand-in for korin's USE_CUSTOM_GLOBAL_ALLOCATOR build
// switch, since Go has no preprocessor to gate it at compile time.
func SetGlobal(a Allocator) {
	gAlloc = a
}
