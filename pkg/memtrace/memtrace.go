// Package memtrace wires one traced allocator for the whole process, the way
// a malloc hook would be installed in a C program. The default instance
// traces a SysAllocator and starts with logging off unless MEMTRACE_LOG is
// set; Install swaps in a different delegate or options.
//
// The front functions forward to whatever the default is at call time, so
// application code can allocate through package-level calls without carrying
// an allocator handle around:
//
//	memtrace.Enable()
//	addr, err := memtrace.Allocate(mem.Layout{Size: 64, Align: 8})
//	...
//	memtrace.Deallocate(addr, mem.Layout{Size: 64, Align: 8})
package memtrace

import (
	"sync/atomic"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/guard"
	"github.com/joshuapare/memtrace/mem/trace"
)

// def holds the process-wide default allocator.
var def atomic.Pointer[trace.Allocator]

func init() {
	def.Store(trace.New(mem.NewSys(), nil))
}

// Default returns the process-wide traced allocator.
func Default() *trace.Allocator {
	return def.Load()
}

// Install replaces the process default with a new tracer over next and
// returns it. Meant to run once at startup; the swap is atomic, but an
// operation already in flight finishes on the instance it started with.
func Install(next mem.Allocator, opts *trace.Options) *trace.Allocator {
	a := trace.New(next, opts)
	def.Store(a)
	return a
}

// Enable turns event logging on for the default allocator.
func Enable() {
	def.Load().EnableLogging()
}

// Disable turns event logging off for the default allocator.
func Disable() {
	def.Load().DisableLogging()
}

// Enabled reports the default allocator's logging switch.
func Enabled() bool {
	return def.Load().LoggingEnabled()
}

// Allocate forwards to the default allocator.
func Allocate(layout mem.Layout) (uintptr, error) {
	return def.Load().Allocate(layout)
}

// AllocateZeroed forwards to the default allocator.
func AllocateZeroed(layout mem.Layout) (uintptr, error) {
	return def.Load().AllocateZeroed(layout)
}

// Reallocate forwards to the default allocator.
func Reallocate(addr uintptr, old mem.Layout, newSize int) (uintptr, error) {
	return def.Load().Reallocate(addr, old, newSize)
}

// Deallocate forwards to the default allocator.
func Deallocate(addr uintptr, layout mem.Layout) {
	def.Load().Deallocate(addr, layout)
}

// RunUnlogged executes fn with the calling goroutine's reporting suppressed:
// allocations inside fn still reach the delegate, but no events are emitted
// for them on this goroutine. Useful for phase markers and log sinks that
// would otherwise narrate their own allocations.
func RunUnlogged(fn func()) {
	guard.Run(fn)
}
