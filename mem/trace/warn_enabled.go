//go:build allocwarn

package trace

const (
	// warnEnabled switches the oversized-request check on at compile time.
	warnEnabled = true

	// warnThreshold is the request size, in bytes, above which a warning
	// is emitted.
	warnThreshold = 1_000_000
)
