package mem

import "errors"

var (
	// ErrBadSize indicates a negative allocation size.
	ErrBadSize = errors.New("mem: size must be non-negative")

	// ErrBadAlign indicates an alignment that is zero, negative, or not a power of two.
	ErrBadAlign = errors.New("mem: align must be a power of two")

	// ErrAlignTooLarge indicates the allocator cannot honor the requested alignment.
	ErrAlignTooLarge = errors.New("mem: alignment exceeds allocator guarantee")

	// ErrBadAddr indicates an address this allocator never handed out.
	ErrBadAddr = errors.New("mem: address not allocated by this allocator")
)
