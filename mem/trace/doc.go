// Package trace provides a pass-through allocator that reports every
// operation crossing it.
//
// # Overview
//
// trace.Allocator wraps any mem.Allocator. Each Allocate, AllocateZeroed,
// Reallocate, and Deallocate call is forwarded to the delegate exactly once
// with the caller's arguments, and the delegate's result is returned
// untouched. When logging is enabled, one event line per operation is written
// to the configured output. The wrapper is strictly observational: enabling,
// disabling, or breaking the log sink never changes what callers see.
//
// # Output Format
//
// Every event names the operation and describes the block:
//
//	alloc [address=0xc000012000, size=16, align=8] at:
//	main.fill
//		/src/app/main.go:42
//	main.main
//		/src/app/main.go:17
//
// Reallocation events carry both sides of the move:
//
//	realloc [address=0x7f31c0, size=16, align=8] to [address=0x7f3400, size=64, align=8] at:
//	...
//
// # Re-entrancy
//
// Writers and formatters may themselves allocate. The emission path runs
// under guard.Run, so an allocation performed while reporting is forwarded
// but never reported - the alternative is unbounded recursion. The same
// latch backs RunUnlogged-style quiet sections (see pkg/memtrace).
//
// # Oversized-Request Warnings
//
// Builds tagged "allocwarn" additionally flag Allocate and Reallocate
// requests above one million bytes, before the delegate runs and regardless
// of the logging switch:
//
//	large allocation at:
//	...
//
// Untagged builds compile the check away entirely.
//
// # Thread Safety
//
// The logging switch is atomic and all state is either immutable or pooled;
// an Allocator is safe for concurrent use whenever its delegate is. Events
// are written with a single Write call each, so lines from concurrent
// goroutines do not interleave mid-event on writers with atomic Write.
//
// # Related Packages
//
//   - github.com/joshuapare/memtrace/mem: the allocator contract and delegates
//   - github.com/joshuapare/memtrace/mem/guard: the per-goroutine latch
//   - github.com/joshuapare/memtrace/pkg/memtrace: process-wide default instance
package trace
