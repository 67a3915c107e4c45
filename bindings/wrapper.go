//go:build cgo

// Package bindings exposes the C library allocator to Go code that speaks in
// raw addresses. It lives in its own module so pure-Go builds of the parent
// never pull in a C toolchain; only cgo-tagged consumers link against it.
package bindings

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// CAllocator hands out blocks from the C heap. The zero value is ready to
// use; all state lives in the C runtime.
type CAllocator struct{}

// Malloc returns an uninitialized block of n bytes, or 0 when the C heap
// refuses or n is not positive.
func (CAllocator) Malloc(n int) uintptr {
	if n <= 0 {
		return 0
	}
	return uintptr(C.malloc(C.size_t(n)))
}

// Calloc returns a zero-filled block of n bytes, or 0 when the C heap
// refuses or n is not positive.
func (CAllocator) Calloc(n int) uintptr {
	if n <= 0 {
		return 0
	}
	return uintptr(C.calloc(C.size_t(n), 1))
}

// Realloc resizes the block at p to n bytes and returns the possibly moved
// address. Realloc(0, n) allocates; Realloc(p, 0) frees and returns 0.
func (CAllocator) Realloc(p uintptr, n int) uintptr {
	return uintptr(C.realloc(unsafe.Pointer(p), C.size_t(n)))
}

// Free releases the block at p. Free(0) is a no-op.
func (CAllocator) Free(p uintptr) {
	C.free(unsafe.Pointer(p))
}

// Bytes views n bytes at p as a slice. Valid only while the block is live.
func Bytes(p uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(p)), n)
}

// Poke writes b at byte offset off inside the block at p.
func Poke(p uintptr, off int, b byte) {
	*(*byte)(unsafe.Pointer(p + uintptr(off))) = b
}

// Peek reads the byte at offset off inside the block at p.
func Peek(p uintptr, off int) byte {
	return *(*byte)(unsafe.Pointer(p + uintptr(off)))
}
