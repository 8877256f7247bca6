package format

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by Compress and Decompress. Call sites wrap these
// with context via fmt.Errorf("...: %w", err); callers classify with
// errors.Is.
var (
	// ErrUnsupportedType reports an input value outside the supported set,
	// including integers beyond the 52-bit wire range.
	ErrUnsupportedType = errors.New("vpack: unsupported value type")

	// ErrDepthExceeded reports that the walker hit its recursion limit.
	ErrDepthExceeded = errors.New("vpack: max recursion depth exceeded")

	// ErrSizeLimit reports a string, buffer, or table count beyond 32 bits.
	ErrSizeLimit = errors.New("vpack: element size exceeds format limit")

	// ErrTruncated reports that the decoder ran past the end of input.
	ErrTruncated = errors.New("vpack: truncated payload")

	// ErrBadTag reports an unknown tag or header byte.
	ErrBadTag = errors.New("vpack: unknown tag byte")

	// ErrBadPoolIndex reports a string pool reference past the pool's
	// high-water mark.
	ErrBadPoolIndex = errors.New("vpack: string pool index out of range")

	// ErrEntropy reports that the Level-3 entropy frame failed its
	// self-check during decode.
	ErrEntropy = errors.New("vpack: entropy frame corrupt")

	// ErrTrailingGarbage reports leftover bytes after the top-level value.
	ErrTrailingGarbage = errors.New("vpack: trailing bytes after payload")
)

func errBadHeader(b byte, reason string) error {
	return fmt.Errorf("header byte 0x%02x: %s: %w", b, reason, ErrBadTag)
}
