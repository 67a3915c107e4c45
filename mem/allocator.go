package mem

// Allocator is the contract every memory source in this module satisfies.
//
// Implementations:
//   - SysAllocator: manual heap backed by modernc.org/memory
//   - GoAllocator: pinned Go-heap blocks with explicit alignment
//   - MapAllocator: one anonymous mapping per block
//
// trace.Allocator wraps any of them without altering the contract, so
// wrappers and delegates compose freely.
type Allocator interface {
	// Allocate returns the address of a fresh block satisfying layout.
	// The block's contents are unspecified. A zero-size request returns
	// address zero with no error and touches no backing storage.
	Allocate(layout Layout) (uintptr, error)

	// AllocateZeroed behaves like Allocate with the block zero-filled.
	AllocateZeroed(layout Layout) (uintptr, error)

	// Reallocate resizes the block at addr, previously allocated with the
	// old layout, to newSize bytes at the same alignment. The returned
	// address may differ from addr; contents up to min(old.Size, newSize)
	// are preserved. On error the original block is left untouched.
	Reallocate(addr uintptr, old Layout, newSize int) (uintptr, error)

	// Deallocate releases the block at addr. The layout must match the one
	// the block was last allocated with. Releasing address zero is a no-op.
	// Misuse (a foreign or already-released address) is the implementation's
	// own failure domain; there is no error surface on this path.
	Deallocate(addr uintptr, layout Layout)
}
