// Package mem defines the allocator contract shared by every memory source in
// this module, plus the delegate implementations that back it.
//
// # Overview
//
// An allocation is described by a Layout (byte size plus minimum alignment)
// and identified by its raw address. The Allocator interface is deliberately
// small - four operations, no statistics, no policy - so that a wrapper such
// as trace.Allocator can sit in front of any implementation without changing
// behavior.
//
// # Implementations
//
// SysAllocator: manual heap backed by modernc.org/memory
//
//   - Blocks live outside the Go heap and must be freed explicitly
//   - malloc-style alignment (16 bytes); stronger requests are refused
//   - Safe for concurrent use
//
// GoAllocator: Go-heap delegate
//
//   - Over-allocates and aligns, pinning each block so addresses stay valid
//   - Never leaves the Go runtime; handy for tests and pure-Go builds
//
// MapAllocator: one anonymous mapping per block
//
//   - Page-granular, page-aligned; wasteful for small blocks
//   - Falls back to pinned Go-heap blocks on platforms without mmap
//
// # Usage Example
//
//	a := mem.NewSys()
//	defer a.Close()
//
//	layout := mem.Layout{Size: 64, Align: 8}
//	addr, err := a.Allocate(layout)
//	if err != nil {
//	    return err
//	}
//	// ... use the block through unsafe.Slice ...
//	a.Deallocate(addr, layout)
//
// # Thread Safety
//
// All delegates in this package serialize internally and are safe for
// concurrent use. The contract itself makes no such promise; consult the
// implementation you wrap.
//
// # Related Packages
//
//   - github.com/joshuapare/memtrace/mem/trace: logging pass-through wrapper
//   - github.com/joshuapare/memtrace/pkg/memtrace: process-wide default instance
package mem
