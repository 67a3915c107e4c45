//go:build cgo

// Package cmalloc exercises the tracing allocator over the real C heap,
// through the bindings module.
package cmalloc

import (
	"errors"

	"github.com/joshuapare/memtrace/bindings"
	"github.com/joshuapare/memtrace/mem"
)

// errCHeap reports a refusal from the C allocator, which only signals
// failure through a null pointer.
var errCHeap = errors.New("cmalloc: C heap returned null")

// cMaxAlign is what plain malloc guarantees on mainstream ABIs.
const cMaxAlign = 16

// callocator adapts bindings.CAllocator to the mem.Allocator contract.
type callocator struct {
	c bindings.CAllocator
}

var _ mem.Allocator = callocator{}

func (a callocator) Allocate(layout mem.Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, mem.ErrBadSize
	}
	if layout.Align > cMaxAlign {
		return 0, mem.ErrAlignTooLarge
	}
	if layout.Size == 0 {
		return 0, nil
	}
	p := a.c.Malloc(layout.Size)
	if p == 0 {
		return 0, errCHeap
	}
	return p, nil
}

func (a callocator) AllocateZeroed(layout mem.Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, mem.ErrBadSize
	}
	if layout.Align > cMaxAlign {
		return 0, mem.ErrAlignTooLarge
	}
	if layout.Size == 0 {
		return 0, nil
	}
	p := a.c.Calloc(layout.Size)
	if p == 0 {
		return 0, errCHeap
	}
	return p, nil
}

func (a callocator) Reallocate(addr uintptr, old mem.Layout, newSize int) (uintptr, error) {
	if newSize < 0 {
		return 0, mem.ErrBadSize
	}
	if old.Align > cMaxAlign {
		return 0, mem.ErrAlignTooLarge
	}
	if newSize == 0 {
		a.c.Free(addr)
		return 0, nil
	}
	p := a.c.Realloc(addr, newSize)
	if p == 0 {
		return 0, errCHeap
	}
	return p, nil
}

func (a callocator) Deallocate(addr uintptr, _ mem.Layout) {
	a.c.Free(addr)
}
