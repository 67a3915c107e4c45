//go:build !allocwarn

package trace

// Without the allocwarn tag the check folds to dead code and the compiler
// drops it from every call site.
const (
	warnEnabled   = false
	warnThreshold = 1_000_000
)
