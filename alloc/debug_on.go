//go:build debug

package alloc

import "fmt"

// Under the debug build tag, contract violations abort with a
// formatted message instead of silently producing undefined behavior,
// and byte-accounting counters are kept live. Mirrors korin's
// {debug, development, release} build flavors: this file stands in
// for "debug"/"development", the _off.go sibling for "release".

func assertValidRequest(size, alignment int) {
	if size < 0 {
		panic(fmt.Sprintf("alloc: invalid size %d", size))
	}
	if alignment < MinAlignment || !isPowerOfTwo(alignment) {
		panic(fmt.Sprintf("alloc: invalid alignment %d (must be a power of two >= %d)", alignment, MinAlignment))
	}
}

func debugAdd(counter *int, delta int) {
	*counter += delta
}

func assertFitsPool(size, alignment int, cfg PoolConfig) {
	if size > cfg.BlockSize {
		panic(fmt.Sprintf("alloc: requested size %d exceeds pool block size %d", size, cfg.BlockSize))
	}
	if alignment > cfg.BlockAlignment {
		panic(fmt.Sprintf("alloc: requested alignment %d exceeds pool block alignment %d", alignment, cfg.BlockAlignment))
	}
}

func assertPoolEmpty(p *pool) {
	if p.blocksInUse != 0 {
		panic(fmt.Sprintf("alloc: pool destroyed with %d blocks still in use (use-after-free or leak)", p.blocksInUse))
	}
}
