// Package comparison provides benchmark utilities for comparing the pure-Go
// allocators and the C heap.
package comparison

// BenchmarkSizes defines block size classes used across benchmarks
// Covers the range from pointer-sized objects up to bulk buffers.
var BenchmarkSizes = []struct {
	Name     string // Short name for benchmark output
	Size     int    // Block size in bytes
	Align    int    // Required alignment
	SizeDesc string // Human-readable size description
}{
	{
		Name:     "tiny",
		Size:     16,
		Align:    8,
		SizeDesc: "16 B, a pair of pointers",
	},
	{
		Name:     "small",
		Size:     256,
		Align:    16,
		SizeDesc: "256 B, typical small object",
	},
	{
		Name:     "medium",
		Size:     4096,
		Align:    16,
		SizeDesc: "4 KiB, one page",
	},
	{
		Name:     "large",
		Size:     65536,
		Align:    16,
		SizeDesc: "64 KiB, bulk buffer",
	},
}

// Prevent compiler optimizations from eliminating benchmark code
// These variables are written to by benchmarks to ensure operations aren't optimized away.
var (
	// Address results.
	benchGoAddr uintptr
	benchCAddr  uintptr
)
