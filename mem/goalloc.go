package mem

import (
	"sync"
	"unsafe"
)

// GoAllocator serves blocks from the Go heap. Each block is over-allocated so
// any power-of-two alignment can be honored, then pinned in a map so the
// address stays valid until Deallocate. It never leaves the Go runtime, which
// makes it the delegate of choice for tests and pure-Go builds that still
// speak in raw addresses.
type GoAllocator struct {
	mu   sync.Mutex
	pins map[uintptr][]byte // aligned address -> backing buffer
}

var _ Allocator = (*GoAllocator)(nil)

// NewGo returns an empty Go-heap delegate.
func NewGo() *GoAllocator {
	return &GoAllocator{pins: make(map[uintptr][]byte)}
}

// Allocate pins a fresh block and returns its aligned address.
func (g *GoAllocator) Allocate(layout Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, ErrBadSize
	}
	if layout.Align <= 0 || layout.Align&(layout.Align-1) != 0 {
		return 0, ErrBadAlign
	}
	if layout.Size == 0 {
		return 0, nil
	}
	// Over-allocate by the alignment so an aligned address always fits.
	buf := make([]byte, layout.Size+layout.Align)
	addr := alignUp(uintptr(unsafe.Pointer(&buf[0])), layout.Align)
	g.mu.Lock()
	g.pins[addr] = buf
	g.mu.Unlock()
	return addr, nil
}

// AllocateZeroed is identical to Allocate: make() already zero-fills.
func (g *GoAllocator) AllocateZeroed(layout Layout) (uintptr, error) {
	return g.Allocate(layout)
}

// Reallocate moves the block to a fresh pin of newSize bytes, preserving the
// common prefix. The address always changes on success.
func (g *GoAllocator) Reallocate(addr uintptr, old Layout, newSize int) (uintptr, error) {
	if newSize < 0 {
		return 0, ErrBadSize
	}
	if addr == 0 {
		return g.Allocate(Layout{Size: newSize, Align: old.Align})
	}
	g.mu.Lock()
	_, known := g.pins[addr]
	g.mu.Unlock()
	if !known {
		return 0, ErrBadAddr
	}
	if newSize == 0 {
		g.Deallocate(addr, old)
		return 0, nil
	}
	next, err := g.Allocate(Layout{Size: newSize, Align: old.Align})
	if err != nil {
		return 0, err
	}
	n := min(old.Size, newSize)
	if n > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(next)), n),
			unsafe.Slice((*byte)(unsafe.Pointer(addr)), n))
	}
	g.Deallocate(addr, old)
	return next, nil
}

// Deallocate unpins the block at addr, returning it to the garbage collector.
// A foreign or already-released address is a caller bug and panics rather
// than corrupting the pin table silently.
func (g *GoAllocator) Deallocate(addr uintptr, _ Layout) {
	if addr == 0 {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.pins[addr]; !ok {
		panic("mem: GoAllocator: deallocate of unknown address")
	}
	delete(g.pins, addr)
}

// Live reports how many blocks are currently pinned.
func (g *GoAllocator) Live() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.pins)
}
