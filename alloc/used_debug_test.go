//go:build debug

package alloc

import "testing"

// Byte accounting is only kept under the debug build tag; run with
// -tags debug.
func TestPooledUsedMemory(t *testing.T) {
	const blockSize = 32
	a := NewPooledAllocator(PoolConfig{BlockSize: blockSize, NumBlocks: 8})

	var bs [][]byte
	mallocs, frees := 0, 0
	for i := 0; i < 20; i++ {
		b, err := a.Malloc(blockSize, 8)
		if err != nil {
			t.Fatal(i, err)
		}
		bs = append(bs, b)
		mallocs++

		if g, e := a.UsedMemory(), (mallocs-frees)*blockSize; g != e {
			t.Fatal(g, e)
		}
	}

	for _, b := range bs {
		if err := a.Free(b); err != nil {
			t.Fatal(err)
		}
		frees++
		if g, e := a.UsedMemory(), (mallocs-frees)*blockSize; g != e {
			t.Fatal(g, e)
		}
	}

	if g, e := a.UsedMemory(), 0; g != e {
		t.Fatal(g, e)
	}
	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestRawUsedMemory(t *testing.T) {
	var a RawAllocator
	b, err := a.Malloc(100, 8)
	if err != nil {
		t.Fatal(err)
	}
	if g, e := a.UsedMemory(), 100; g != e {
		t.Fatal(g, e)
	}
	if err := a.Free(b); err != nil {
		t.Fatal(err)
	}
	if g, e := a.UsedMemory(), 0; g != e {
		t.Fatal(g, e)
	}
}
