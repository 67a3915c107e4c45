package mem

import (
	"sync"

	"modernc.org/memory"
)

// sysMaxAlign is the strongest alignment the backing arena guarantees.
// modernc.org/memory hands out malloc-style blocks aligned to 16 bytes.
const sysMaxAlign = 16

// SysAllocator is a manual heap backed by modernc.org/memory - the closest
// pure-Go analogue to the C library allocator. Blocks live outside the Go
// heap, are invisible to the garbage collector, and must be released
// explicitly. A single mutex serializes access to the backing arena.
type SysAllocator struct {
	mu sync.Mutex
	a  memory.Allocator
}

var _ Allocator = (*SysAllocator)(nil)

// NewSys returns an empty system-style heap. Call Close to release every
// mapping the arena still holds.
func NewSys() *SysAllocator {
	return &SysAllocator{}
}

// Allocate returns a fresh uninitialized block.
func (s *SysAllocator) Allocate(layout Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, ErrBadSize
	}
	if layout.Align > sysMaxAlign {
		return 0, ErrAlignTooLarge
	}
	if layout.Size == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UintptrMalloc(layout.Size)
}

// AllocateZeroed returns a fresh zero-filled block.
func (s *SysAllocator) AllocateZeroed(layout Layout) (uintptr, error) {
	if layout.Size < 0 {
		return 0, ErrBadSize
	}
	if layout.Align > sysMaxAlign {
		return 0, ErrAlignTooLarge
	}
	if layout.Size == 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UintptrCalloc(layout.Size)
}

// Reallocate resizes the block at addr. Like C realloc, a zero addr behaves
// as Allocate and a zero newSize releases the block and returns address zero.
func (s *SysAllocator) Reallocate(addr uintptr, old Layout, newSize int) (uintptr, error) {
	if newSize < 0 {
		return 0, ErrBadSize
	}
	if old.Align > sysMaxAlign {
		return 0, ErrAlignTooLarge
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.UintptrRealloc(addr, newSize)
}

// Deallocate releases the block at addr.
func (s *SysAllocator) Deallocate(addr uintptr, _ Layout) {
	if addr == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_ = s.a.UintptrFree(addr)
}

// UsableSize reports the real capacity of the block at addr, which may exceed
// the size it was requested with.
func (s *SysAllocator) UsableSize(addr uintptr) int {
	if addr == 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return memory.UintptrUsableSize(addr)
}

// Close unmaps everything the arena holds. Outstanding addresses become
// invalid; using them afterwards is a fault, not a recoverable error.
func (s *SysAllocator) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.a.Close()
}
