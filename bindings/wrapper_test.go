//go:build cgo

package bindings

import "testing"

// TestMallocRoundTrip verifies we can write and read a malloc'd block
func TestMallocRoundTrip(t *testing.T) {
	var c CAllocator
	p := c.Malloc(64)
	if p == 0 {
		t.Fatal("Expected non-zero address from malloc")
	}
	defer c.Free(p)

	for i := 0; i < 64; i++ {
		Poke(p, i, byte(i))
	}
	for i := 0; i < 64; i++ {
		if got := Peek(p, i); got != byte(i) {
			t.Fatalf("Byte %d corrupted: %d", i, got)
		}
	}
}

// TestCallocZeroed verifies calloc'd blocks start zero-filled
func TestCallocZeroed(t *testing.T) {
	var c CAllocator
	p := c.Calloc(256)
	if p == 0 {
		t.Fatal("Expected non-zero address from calloc")
	}
	defer c.Free(p)

	for i, v := range Bytes(p, 256) {
		if v != 0 {
			t.Fatalf("Byte %d not zero: %d", i, v)
		}
	}
}

// TestReallocPreservesPrefix verifies content survives a realloc move
func TestReallocPreservesPrefix(t *testing.T) {
	var c CAllocator
	p := c.Malloc(16)
	if p == 0 {
		t.Fatal("malloc failed")
	}
	for i := 0; i < 16; i++ {
		Poke(p, i, byte(0x40+i))
	}

	p = c.Realloc(p, 4096)
	if p == 0 {
		t.Fatal("realloc failed")
	}
	defer c.Free(p)

	for i := 0; i < 16; i++ {
		if got := Peek(p, i); got != byte(0x40+i) {
			t.Fatalf("Prefix byte %d lost across realloc: %d", i, got)
		}
	}
}

// TestZeroSize verifies the degenerate sizes behave like their C idioms
func TestZeroSize(t *testing.T) {
	var c CAllocator
	if p := c.Malloc(0); p != 0 {
		t.Fatalf("Malloc(0) should return 0, got %#x", p)
	}
	if p := c.Calloc(-1); p != 0 {
		t.Fatalf("Calloc(-1) should return 0, got %#x", p)
	}

	// Realloc from nothing allocates.
	p := c.Realloc(0, 32)
	if p == 0 {
		t.Fatal("Realloc(0, 32) should allocate")
	}
	c.Free(p)

	// Free of address zero is a no-op.
	c.Free(0)
}
