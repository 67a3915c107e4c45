// Package guard provides the process-wide re-entrancy latch used by the
// tracing allocator. Code running inside guard.Run that allocates through a
// traced allocator would otherwise have its own allocations reported, and a
// reporter that allocates while reporting would recurse without bound.
//
// The latch is per goroutine: one goroutine holding it never suppresses
// another goroutine's reporting. There is a single latch domain per process,
// shared by every traced allocator instance.
package guard

import (
	"sync"

	"github.com/petermattis/goid"
)

// active holds the ids of goroutines currently inside Run.
var active sync.Map // goroutine id (int64) -> struct{}

// Run invokes fn unless the calling goroutine is already inside a Run call,
// in which case fn is skipped entirely. The latch is released on every exit
// path: a panic inside fn still clears it before propagating.
func Run(fn func()) {
	id := goid.Get()
	if _, held := active.LoadOrStore(id, struct{}{}); held {
		return
	}
	defer active.Delete(id)
	fn()
}

// Active reports whether the calling goroutine currently holds the latch.
func Active() bool {
	_, ok := active.Load(goid.Get())
	return ok
}
