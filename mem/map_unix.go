//go:build linux || darwin

package mem

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"
)

// MapAllocator hands out one anonymous private mapping per block. Mapping
// addresses are page-aligned, so any alignment up to the page size comes
// free. Page granularity makes it wasteful for small blocks; it exists for
// page-aligned buffers and as a delegate whose failures are real OS errors.
type MapAllocator struct {
	mu   sync.Mutex
	maps map[uintptr][]byte // mapping start -> full mapping, kept for munmap
}

var _ Allocator = (*MapAllocator)(nil)

// NewMap returns an empty mapping-backed allocator.
func NewMap() *MapAllocator {
	return &MapAllocator{maps: make(map[uintptr][]byte)}
}

// Allocate maps a fresh block. The kernel zero-fills anonymous mappings, so
// the "uninitialized" contents happen to be zero here.
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
	b, err := unix.Mmap(-1, 0, layout.Size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return 0, fmt.Errorf("mem: mmap %d bytes: %w", layout.Size, err)
	}
	addr := uintptr(unsafe.Pointer(&b[0]))
	m.mu.Lock()
	m.maps[addr] = b
	m.mu.Unlock()
	return addr, nil
}

// AllocateZeroed maps a fresh block; anonymous mappings are already zeroed.
func (m *MapAllocator) AllocateZeroed(layout Layout) (uintptr, error) {
	return m.Allocate(layout)
}

// Reallocate maps a fresh block, copies the common prefix, and unmaps the
// old one. mremap is not portable to darwin, so the move is explicit.
func (m *MapAllocator) Reallocate(addr uintptr, old Layout, newSize int) (uintptr, error) {
	if newSize < 0 {
		return 0, ErrBadSize
	}
	if addr == 0 {
		return m.Allocate(Layout{Size: newSize, Align: old.Align})
	}
	m.mu.Lock()
	_, known := m.maps[addr]
	m.mu.Unlock()
	if !known {
		return 0, ErrBadAddr
	}
	if newSize == 0 {
		m.Deallocate(addr, old)
		return 0, nil
	}
	next, err := m.Allocate(Layout{Size: newSize, Align: old.Align})
	if err != nil {
		return 0, err
	}
	n := min(old.Size, newSize)
	if n > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(next)), n),
			unsafe.Slice((*byte)(unsafe.Pointer(addr)), n))
	}
	m.Deallocate(addr, old)
	return next, nil
}

// Deallocate unmaps the block at addr. A foreign or already-released address
// panics; silently ignoring it would leak the mapping table entry.
func (m *MapAllocator) Deallocate(addr uintptr, _ Layout) {
	if addr == 0 {
		return
	}
	m.mu.Lock()
	b, ok := m.maps[addr]
	if ok {
		delete(m.maps, addr)
	}
	m.mu.Unlock()
	if !ok {
		panic("mem: MapAllocator: deallocate of unknown address")
	}
	_ = unix.Munmap(b)
}

// Mapped reports how many mappings are currently live.
func (m *MapAllocator) Mapped() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.maps)
}
