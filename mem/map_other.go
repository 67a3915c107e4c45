//go:build !linux && !darwin

package mem

import "os"

// MapAllocator on platforms without anonymous mmap falls back to pinned
// Go-heap blocks forced up to page alignment. The contract matches the unix
// implementation; only the backing storage differs.
type MapAllocator struct {
	heap *GoAllocator
}

var _ Allocator = (*MapAllocator)(nil)

// NewMap returns an empty mapping-style allocator backed by the Go heap.
func NewMap() *MapAllocator {
	return &MapAllocator{heap: NewGo()}
}

// pageLayout forces page alignment so addresses look like mapping addresses.
func pageLayout(layout Layout) Layout {
	return Layout{Size: layout.Size, Align: os.Getpagesize()}
}

// Allocate returns a fresh page-aligned block.
func (m *MapAllocator) Allocate(layout Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, ErrBadSize
	}
	if layout.Align > os.Getpagesize() {
		return 0, ErrAlignTooLarge
	}
	if layout.Size == 0 {
		return 0, nil
	}
	return m.heap.Allocate(pageLayout(layout))
}

// AllocateZeroed returns a fresh zero-filled page-aligned block.
func (m *MapAllocator) AllocateZeroed(layout Layout) (uintptr, error) {
	return m.Allocate(layout)
}

// Reallocate moves the block to a fresh page-aligned pin.
func (m *MapAllocator) Reallocate(addr uintptr, old Layout, newSize int) (uintptr, error) {
	if newSize < 0 {
		return 0, ErrBadSize
	}
	return m.heap.Reallocate(addr, pageLayout(old), newSize)
}

// Deallocate releases the block at addr.
func (m *MapAllocator) Deallocate(addr uintptr, layout Layout) {
	m.heap.Deallocate(addr, pageLayout(layout))
}

// Mapped reports how many blocks are currently live.
func (m *MapAllocator) Mapped() int {
	return m.heap.Live()
}
