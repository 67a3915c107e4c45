// Package stack captures and renders call stacks for allocation diagnostics.
package stack

import (
	"runtime"
	"strconv"
)

// captureDepth caps how many frames a single capture records.
const captureDepth = 32

// Capture records the calling goroutine's stack as program counters,
// skipping Capture's own frames plus skip additional callers.
func Capture(skip int) []uintptr {
	pcs := make([]uintptr, captureDepth)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// Append renders pcs one frame per line as "func\n\tfile:line\n" and returns
// the extended buffer. An empty capture renders nothing.
func Append(dst []byte, pcs []uintptr) []byte {
	if len(pcs) == 0 {
		return dst
	}
	frames := runtime.CallersFrames(pcs)
	for {
		fr, more := frames.Next()
		if fr.Function != "" {
			dst = append(dst, fr.Function...)
			dst = append(dst, '\n', '\t')
			dst = append(dst, fr.File...)
			dst = append(dst, ':')
			dst = strconv.AppendInt(dst, int64(fr.Line), 10)
			dst = append(dst, '\n')
		}
		if !more {
			return dst
		}
	}
}
