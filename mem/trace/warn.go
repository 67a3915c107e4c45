package trace

import (
	"github.com/joshuapare/memtrace/internal/stack"
	"github.com/joshuapare/memtrace/mem/guard"
)

// warnSkip hides the warning machinery from captured stacks: the closure,
// guard.Run, warnOversized, and the public entry method.
const warnSkip = 4

// warnOversized flags a request above warnThreshold before it reaches the
// delegate. Compiled away entirely without the allocwarn build tag. The
// check ignores the logging switch but still honors the latch, so a warning
// triggered from inside the emission path is dropped instead of recursing.
func (a *Allocator) warnOversized(verb string, size int) {
	if !warnEnabled || size <= warnThreshold {
		return
	}
	guard.Run(func() {
		defer func() { _ = recover() }()
		bp := a.bufPool.Get().(*[]byte)
		buf := append((*bp)[:0], "large "...)
		buf = append(buf, verb...)
		buf = append(buf, " at:\n"...)
		buf = stack.Append(buf, stack.Capture(warnSkip))
		_, _ = a.out.Write(buf)
		*bp = buf
		a.bufPool.Put(bp)
	})
}
