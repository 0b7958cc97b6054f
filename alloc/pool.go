package alloc

import (
	"unsafe"

	"github.com/sneppy/korin-new/rbtree"
)

// PoolConfig configures a PooledAllocator. It is immutable for the
// allocator's lifetime, as korin's MemoryPoolConfig is.
type PoolConfig struct {
	// BlockSize is the logical size, in bytes, of every block handed
	// out by the pool.
	BlockSize int

	// BlockAlignment is the alignment every block satisfies. Defaults
	// to MinAlignment if zero.
	BlockAlignment int

	// NumBlocks is the number of blocks carved out of each pool
	// buffer this allocator creates.
	NumBlocks int
}

func (c PoolConfig) physicalBlockSize() int {
	align := c.BlockAlignment
	if align == 0 {
		align = MinAlignment
	}
	return align2Up(c.BlockSize+MinAlignment, align)
}

// pool is one contiguous buffer sliced into config.NumBlocks physically
// equally-sized blocks. Embeds an rbtree.Node as its first field so the
// owning PooledAllocator can index pools by buffer address (see
// nodeOf/poolOf below), the way korin's Pool derives from both
// MemoryPool and BinaryNodeBase.
type pool struct {
	hdr rbtree.Node

	buffer      []byte
	freeHead    uintptr // address of first free block, 0 if none
	blocksInUse int

	mruNext, mruPrev *pool
}

func nodeOf(p *pool) *rbtree.Node { return &p.hdr }
func poolOf(n *rbtree.Node) *pool { return (*pool)(unsafe.Pointer(n)) }

func (p *pool) start() uintptr { return uintptr(unsafe.Pointer(&p.buffer[0])) }
func (p *pool) end() uintptr   { return p.start() + uintptr(len(p.buffer)) }

func readNext(blockAddr uintptr, blockSize int) uintptr {
	return *(*uintptr)(unsafe.Pointer(blockAddr + uintptr(blockSize)))
}

func writeNext(blockAddr uintptr, blockSize int, next uintptr) {
	*(*uintptr)(unsafe.Pointer(blockAddr + uintptr(blockSize))) = next
}

// PooledAllocator hands out fixed-size blocks from a self-managed set
// of pools, korin's MallocPooled. When the current free pool is
// exhausted it looks for another pool with free blocks; if none
// exists it creates one by requesting a buffer from Backing (the
// global allocator by default). When a pool's last in-use block is
// freed, the pool's buffer is returned to Backing.
//
// Its zero value is not ready to use; construct with NewPooledAllocator.
type PooledAllocator struct {
	config  PoolConfig
	Backing Allocator

	addrTree *rbtree.Node // pools indexed by buffer start address
	mruHead  *pool        // pools with free blocks, head-first (MRU-freed)

	poolCount  int
	liveBlocks int // debug-build-only accounting, see UsedMemory
}

var _ Allocator = (*PooledAllocator)(nil)

// NewPooledAllocator constructs a pooled allocator with the given,
// immutable configuration. Pool buffers are drawn from Global() until
// overridden via the Backing field.
func NewPooledAllocator(config PoolConfig) *PooledAllocator {
	if config.BlockAlignment == 0 {
		config.BlockAlignment = MinAlignment
	}
	return &PooledAllocator{config: config, Backing: Global()}
}

// Malloc returns a block of size bytes aligned to alignment. size must
// not exceed the pool's BlockSize and alignment must not exceed the
// pool's BlockAlignment; violating this is a caller bug, checked only
// in debug builds.
func (a *PooledAllocator) Malloc(size, alignment int) ([]byte, error) {
	assertFitsPool(size, alignment, a.config)

	if a.mruHead == nil {
		if err := a.createPool(); err != nil {
			return nil, err
		}
	}

	p := a.mruHead
	blockAddr := p.freeHead

	p.freeHead = readNext(blockAddr, a.config.BlockSize)
	p.blocksInUse++
	debugAdd(&a.liveBlocks, 1)

	if p.freeHead == 0 {
		a.unlinkMRU(p)
	}

	return unsafe.Slice((*byte)(unsafe.Pointer(blockAddr)), a.config.BlockSize), nil
}

// Free releases a block previously returned by Malloc on this
// allocator. Freeing a slice this allocator did not hand out is a
// caller bug.
func (a *PooledAllocator) Free(b []byte) error {
	if len(b) == 0 {
		return nil
	}

	addr := uintptr(unsafe.Pointer(&b[0]))

	p, err := a.findOwner(addr)
	if err != nil {
		return err
	}

	wasExhausted := p.freeHead == 0
	writeNext(addr, a.config.BlockSize, p.freeHead)
	p.freeHead = addr
	p.blocksInUse--
	debugAdd(&a.liveBlocks, -1)

	if wasExhausted {
		a.pushMRU(p)
	}

	if p.blocksInUse == 0 {
		a.destroyPool(p)
	}

	return nil
}

// UsedMemory returns config.BlockSize times the number of blocks
// currently in use across every pool. Outside debug builds it always
// returns zero.
func (a *PooledAllocator) UsedMemory() int {
	return a.liveBlocks * a.config.BlockSize
}

// PoolCount returns the number of pools this allocator currently owns.
func (a *PooledAllocator) PoolCount() int {
	return a.poolCount
}

// Close releases every pool this allocator still owns back to its
// backing allocator. A PooledAllocator with live blocks at Close time
// indicates a leak or use-after-free in the caller; in debug builds
// this is asserted.
func (a *PooledAllocator) Close() error {
	for a.addrTree != nil {
		p := poolOf(a.addrTree)
		assertPoolEmpty(p)
		if err := a.Backing.Free(p.buffer); err != nil {
			return err
		}
		a.addrTree = rbtree.Remove(nodeOf(p))
		a.poolCount--
	}
	a.mruHead = nil
	return nil
}

func (a *PooledAllocator) createPool() error {
	physSize := a.config.physicalBlockSize()
	bufSize := physSize * a.config.NumBlocks

	buf, err := a.Backing.Malloc(bufSize, a.config.BlockAlignment)
	if err != nil || buf == nil {
		return ErrOutOfMemory
	}

	p := &pool{buffer: buf}

	// Thread the free list through the block slots: block i's
	// trailing pointer slot points at block i+1; the last block's
	// slot is zero (end of list).
	start := p.start()
	for i := 0; i < a.config.NumBlocks-1; i++ {
		blockAddr := start + uintptr(i*physSize)
		writeNext(blockAddr, a.config.BlockSize, blockAddr+uintptr(physSize))
	}
	writeNext(start+uintptr((a.config.NumBlocks-1)*physSize), a.config.BlockSize, 0)
	p.freeHead = start

	a.addrTree = rbtree.Insert(a.addrTree, nodeOf(p), poolAddrCmp(p))
	a.poolCount++
	a.pushMRU(p)

	return nil
}

func (a *PooledAllocator) destroyPool(p *pool) {
	a.unlinkMRU(p)
	a.addrTree = rbtree.Remove(nodeOf(p))
	a.poolCount--
	// Errors freeing the backing buffer are not actionable here: the
	// pool is already unindexed, so there is nothing left to roll
	// back to. Matches MallocPooled's destructor, which cannot fail.
	_ = a.Backing.Free(p.buffer)
}

func (a *PooledAllocator) findOwner(addr uintptr) (*pool, error) {
	n := rbtree.Find(a.addrTree, func(n *rbtree.Node) int {
		p := poolOf(n)
		switch {
		case addr < p.start():
			return -1
		case addr >= p.end():
			return 1
		default:
			return 0
		}
	})
	if n == nil {
		return nil, ErrNotOwned
	}
	return poolOf(n), nil
}

func poolAddrCmp(target *pool) rbtree.Cmp {
	addr := target.start()
	return func(n *rbtree.Node) int {
		p := poolOf(n)
		switch {
		case addr < p.start():
			return -1
		case addr > p.start():
			return 1
		default:
			return 0
		}
	}
}

func (a *PooledAllocator) pushMRU(p *pool) {
	p.mruPrev = nil
	p.mruNext = a.mruHead
	if a.mruHead != nil {
		a.mruHead.mruPrev = p
	}
	a.mruHead = p
}

func (a *PooledAllocator) unlinkMRU(p *pool) {
	if p.mruPrev != nil {
		p.mruPrev.mruNext = p.mruNext
	} else if a.mruHead == p {
		a.mruHead = p.mruNext
	}
	if p.mruNext != nil {
		p.mruNext.mruPrev = p.mruPrev
	}
	p.mruPrev, p.mruNext = nil, nil
}
