package encoding

import (
	"github.com/arloliu/vpack/format"
)

// uintWidth returns the number of magnitude bytes for a non-negative
// value, 1 through 7. The caller must have range-checked u against
// format.MaxInt.
func uintWidth(u uint64) int {
	switch {
	case u <= 0xFF:
		return 1
	case u <= 0xFFFF:
		return 2
	case u <= 0xFF_FFFF:
		return 3
	case u <= 0xFFFF_FFFF:
		return 4
	case u <= 0xFF_FFFF_FFFF:
		return 5
	case u <= 0xFFFF_FFFF_FFFF:
		return 6
	default:
		return 7
	}
}

// negWidth returns the number of magnitude bytes for a negative value's
// absolute magnitude. The negative classes cover one extra value per
// width, mirroring two's complement: n8 reaches magnitude 2^7, n16
// reaches 2^15, and so on up to 2^51 for n52.
func negWidth(mag uint64) int {
	switch {
	case mag <= 1<<7:
		return 1
	case mag <= 1<<15:
		return 2
	case mag <= 1<<23:
		return 3
	case mag <= 1<<31:
		return 4
	case mag <= 1<<39:
		return 5
	case mag <= 1<<47:
		return 6
	default:
		return 7
	}
}

// AppendUint appends the tagged little-endian encoding of a non-negative
// integer. Exposed for the Level-3 frame writer, which shares the integer
// encoding with the structural codec.
func AppendUint(dst []byte, u uint64) []byte {
	return appendUint(dst, u)
}

// uintSize returns the full encoded size of a non-negative integer,
// tag byte included. Used by the pool to compare reference cost against
// inline cost.
func uintSize(u uint64) int {
	return 1 + uintWidth(u)
}

// appendUint appends the tagged little-endian encoding of a non-negative
// integer.
func appendUint(dst []byte, u uint64) []byte {
	width := uintWidth(u)
	dst = append(dst, format.TagU8+byte(width-1))
	for k := 0; k < width; k++ {
		dst = append(dst, byte(u>>(8*k)))
	}

	return dst
}

// appendInt appends the tagged encoding of a signed integer. Negative
// values store the absolute magnitude; the sign lives in the tag.
func appendInt(dst []byte, i int64) []byte {
	if i >= 0 {
		return appendUint(dst, uint64(i))
	}

	mag := uint64(-i)
	width := negWidth(mag)
	dst = append(dst, format.TagN8+byte(width-1))
	for k := 0; k < width; k++ {
		dst = append(dst, byte(mag>>(8*k)))
	}

	return dst
}

// negClassMax returns the largest magnitude admitted by a negative width
// class of the given byte width.
func negClassMax(width int) uint64 {
	if width == 7 {
		return 1 << 51
	}
	return 1 << (8*width - 1)
}

// uintClassMax returns the largest value admitted by an unsigned width
// class of the given byte width.
func uintClassMax(width int) uint64 {
	if width == 7 {
		return format.MaxInt
	}
	return 1<<(8*width) - 1
}
