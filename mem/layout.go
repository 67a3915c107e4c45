package mem

import "fmt"

// Layout describes a single block: how many bytes it spans and the minimum
// alignment its address must satisfy. It mirrors what a C allocator would be
// told via malloc/aligned_alloc, with the caller carrying the pair to every
// later call about the same block.
type Layout struct {
	Size  int
	Align int
}

// NewLayout validates the pair: size must be non-negative and align a power
// of two. Operations themselves trust the caller's layout claims; this is an
// opt-in check for layouts built from external input.
func NewLayout(size, align int) (Layout, error) {
	if size < 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrBadSize, size)
	}
	if align <= 0 || align&(align-1) != 0 {
		return Layout{}, fmt.Errorf("%w: %d", ErrBadAlign, align)
	}
	return Layout{Size: size, Align: align}, nil
}

// Aligned reports whether addr satisfies the layout's alignment.
func (l Layout) Aligned(addr uintptr) bool {
	return l.Align > 0 && addr&uintptr(l.Align-1) == 0
}

// String renders the layout for diagnostics and error messages.
func (l Layout) String() string {
	return fmt.Sprintf("size=%d, align=%d", l.Size, l.Align)
}

// alignUp rounds addr up to the next multiple of align (a power of two).
func alignUp(addr uintptr, align int) uintptr {
	mask := uintptr(align) - 1
	return (addr + mask) &^ mask
}
