package trace

import (
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/joshuapare/memtrace/mem"
	"github.com/joshuapare/memtrace/mem/guard"
)

// Runtime toggle for startup logging - controlled by MEMTRACE_LOG env var.
var envLog = os.Getenv("MEMTRACE_LOG") != ""

// Options configures a tracing allocator.
type Options struct {
	// Output receives event lines. Defaults to os.Stderr.
	Output io.Writer

	// Logging starts the allocator with reporting already enabled. Setting
	// the MEMTRACE_LOG environment variable (any non-empty value) does the
	// same for every allocator built in the process.
	Logging bool
}

// Allocator wraps another allocator and reports every operation that passes
// through it. The delegate is called exactly once per operation with the
// caller's arguments, and its result - address or error - is returned
// untouched. Reporting never changes outcomes.
type Allocator struct {
	next    mem.Allocator
	out     io.Writer
	enabled atomic.Bool

	// Pool for reusing event line buffers (eliminates per-event allocations).
	bufPool sync.Pool
}

var _ mem.Allocator = (*Allocator)(nil)

// New wraps next. A nil opts selects the defaults: os.Stderr output, logging
// off unless MEMTRACE_LOG is set.
func New(next mem.Allocator, opts *Options) *Allocator {
	if opts == nil {
		opts = &Options{}
	}
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	a := &Allocator{
		next: next,
		out:  out,
		bufPool: sync.Pool{
			New: func() any {
				b := make([]byte, 0, 512)
				return &b
			},
		},
	}
	if opts.Logging || envLog {
		a.enabled.Store(true)
	}
	return a
}

// EnableLogging turns event reporting on. Safe from any goroutine, effective
// for operations that observe the switch afterwards.
func (a *Allocator) EnableLogging() {
	a.enabled.Store(true)
}

// DisableLogging turns event reporting off. In-flight operations that
// already observed the switch may still emit their line.
func (a *Allocator) DisableLogging() {
	a.enabled.Store(false)
}

// LoggingEnabled reports whether events are currently emitted.
func (a *Allocator) LoggingEnabled() bool {
	return a.enabled.Load()
}

// Allocate forwards to the delegate and reports the outcome. A delegate
// failure is reported with address zero and returned unchanged.
func (a *Allocator) Allocate(layout mem.Layout) (uintptr, error) {
	a.warnOversized("allocation", layout.Size)
	addr, err := a.next.Allocate(layout)
	a.emit(event{op: opAlloc, addr: addr, layout: layout, withStack: true})
	return addr, err
}

// AllocateZeroed forwards to the delegate and reports the outcome.
func (a *Allocator) AllocateZeroed(layout mem.Layout) (uintptr, error) {
	addr, err := a.next.AllocateZeroed(layout)
	a.emit(event{op: opAllocZeroed, addr: addr, layout: layout, withStack: true})
	return addr, err
}

// Reallocate forwards to the delegate and reports both sides of the move in
// a single event.
func (a *Allocator) Reallocate(addr uintptr, old mem.Layout, newSize int) (uintptr, error) {
	a.warnOversized("reallocation", newSize)
	next, err := a.next.Reallocate(addr, old, newSize)
	a.emit(event{
		op:        opRealloc,
		oldAddr:   addr,
		oldLayout: old,
		addr:      next,
		layout:    mem.Layout{Size: newSize, Align: old.Align},
		withStack: true,
	})
	return next, err
}

// Deallocate forwards to the delegate and reports the release.
func (a *Allocator) Deallocate(addr uintptr, layout mem.Layout) {
	a.next.Deallocate(addr, layout)
	a.emit(event{op: opDealloc, addr: addr, layout: layout, withStack: true})
}

// emit writes one event when logging is enabled. The guard keeps anything
// the writer or formatter allocates from reporting itself, and a panic on
// the emission path is swallowed so it cannot reach the allocation caller.
func (a *Allocator) emit(ev event) {
	if !a.enabled.Load() {
		return
	}
	guard.Run(func() {
		defer func() { _ = recover() }()
		bp := a.bufPool.Get().(*[]byte)
		buf := ev.append((*bp)[:0])
		_, _ = a.out.Write(buf)
		*bp = buf
		a.bufPool.Put(bp)
	})
}
