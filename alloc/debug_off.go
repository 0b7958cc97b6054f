//go:build !debug

package alloc

// Release build: precondition checks and byte accounting are elided —
// violating the contract becomes undefined behavior instead of a
// checked abort.

func assertValidRequest(_, _ int) {}

func debugAdd(_ *int, _ int) {}

func assertFitsPool(_, _ int, _ PoolConfig) {}

func assertPoolEmpty(_ *pool) {}
