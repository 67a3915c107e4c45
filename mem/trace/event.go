package trace

import (
	"strconv"

	"github.com/joshuapare/memtrace/internal/stack"
	"github.com/joshuapare/memtrace/mem"
)

// opKind identifies which allocator entry point produced an event.
type opKind uint8

const (
	opAlloc opKind = iota
	opAllocZeroed
	opRealloc
	opDealloc
)

var opNames = [...]string{
	opAlloc:       "alloc",
	opAllocZeroed: "alloc_zeroed",
	opRealloc:     "realloc",
	opDealloc:     "dealloc",
}

// emitSkip hides the reporting machinery from captured stacks: event.append,
// the emit closure, guard.Run, emit itself, and the public entry method.
// runtime.Callers counts inlined frames, so the constant survives inlining.
const emitSkip = 5

// event is one report in the making. Events are plain values; rendering
// appends into a caller-supplied buffer so pooled buffers can be reused.
type event struct {
	op     opKind
	addr   uintptr
	layout mem.Layout

	// Old side of a reallocation; meaningful only when op is opRealloc.
	oldAddr   uintptr
	oldLayout mem.Layout

	// withStack selects the full rendering: the block descriptor followed
	// by the capturing goroutine's stack.
	withStack bool
}

// append renders the event newline-terminated and returns the extended
// buffer. Reallocations carry the old block terse and the new block full:
//
//	realloc [address=..., size=16, align=8] to [address=..., size=64, align=8] at:
func (ev event) append(buf []byte) []byte {
	buf = append(buf, opNames[ev.op]...)
	buf = append(buf, ' ')
	if ev.op == opRealloc {
		buf = appendBlock(buf, ev.oldAddr, ev.oldLayout)
		buf = append(buf, " to "...)
	}
	buf = appendBlock(buf, ev.addr, ev.layout)
	if !ev.withStack {
		return append(buf, '\n')
	}
	buf = append(buf, " at:\n"...)
	return stack.Append(buf, stack.Capture(emitSkip))
}

// appendBlock renders the terse descriptor "[address=0x..., size=N, align=M]".
func appendBlock(buf []byte, addr uintptr, l mem.Layout) []byte {
	buf = append(buf, "[address=0x"...)
	buf = strconv.AppendUint(buf, uint64(addr), 16)
	buf = append(buf, ", size="...)
	buf = strconv.AppendInt(buf, int64(l.Size), 10)
	buf = append(buf, ", align="...)
	buf = strconv.AppendInt(buf, int64(l.Align), 10)
	return append(buf, ']')
}
