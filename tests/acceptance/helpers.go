package acceptance

import (
	"strings"
	"unsafe"
)

// bytesAt views the n bytes at addr as a slice. Valid only while the block
// backing addr is live.
func bytesAt(addr uintptr, n int) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), n)
}

// eventVerbs extracts the ordered sequence of event verbs from trace output.
// Events span multiple lines (stack frames), so only line-initial block
// descriptors count.
func eventVerbs(out string) []string {
	var verbs []string
	for _, line := range strings.Split(out, "\n") {
		for _, v := range []string{"alloc_zeroed", "alloc", "realloc", "dealloc"} {
			if strings.HasPrefix(line, v+" [") {
				verbs = append(verbs, v)
				break
			}
		}
	}
	return verbs
}
