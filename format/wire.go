// Package format defines the frozen wire constants shared by the vpack
// encoder and decoder: tag bytes, the header byte layout, integer width
// classes, and the sentinel error kinds.
//
// The constants in this package are part of the published format. New
// variants require a version bump in the header flags; existing values
// must never be reassigned.
package format

// Value tag bytes. The tag is the first byte of every encoded value and
// selects the variant and, for integers, the width class and sign.
const (
	TagNil     byte = 0x00 // hash-part value only, never top-level
	TagFalse   byte = 0x01
	TagTrue    byte = 0x02
	TagFloat64 byte = 0x03 // 8 bytes IEEE-754 binary64, little-endian

	// Unsigned integer widths. TagU8+k encodes the magnitude in k+1 bytes.
	TagU8  byte = 0x10
	TagU16 byte = 0x11
	TagU24 byte = 0x12
	TagU32 byte = 0x13
	TagU40 byte = 0x14
	TagU48 byte = 0x15
	TagU52 byte = 0x16 // 7 bytes, bottom 52 bits, top 4 zero

	// Negative integer widths. The sign lives in the tag; the body is the
	// absolute-value magnitude, little-endian.
	TagN8  byte = 0x18
	TagN16 byte = 0x19
	TagN24 byte = 0x1A
	TagN32 byte = 0x1B
	TagN40 byte = 0x1C
	TagN48 byte = 0x1D
	TagN52 byte = 0x1E

	TagStr    byte = 0x20 // inline string: tagged uint length + raw bytes
	TagStrRef byte = 0x21 // string pool back-reference: tagged uint index
	TagBytes  byte = 0x22 // raw byte buffer: tagged uint length + raw bytes

	TagTable byte = 0x30 // tagged uint n, tagged uint m, n values, m pairs
)

// Integer range limits. The widest classes carry 52 bits of magnitude for
// non-negative values and 2^51 for negative values.
const (
	MaxInt = 1<<52 - 1 // 4503599627370495
	MinInt = -(1 << 51) // -2251799813685248
)

// MaxElemLen caps string lengths, buffer lengths, and table element counts.
const MaxElemLen = 1<<32 - 1

// Header byte layout: level in bits 0-1, format version in bits 2-3,
// entropy variant in bits 4-5 (zero unless level is 3).
const (
	headerLevelMask    = 0x03
	headerVersionMask  = 0x0C
	headerEntropyMask  = 0x30
	headerReservedMask = 0xC0

	// Version is the current format version carried in the header flags.
	Version = 1
)

// Header packs the level, format version, and entropy variant into the
// payload's leading byte.
func Header(level Level, entropy CompressionType) byte {
	return byte(level)&headerLevelMask |
		Version<<2&headerVersionMask |
		byte(entropy)<<4&headerEntropyMask
}

// ParseHeader splits a header byte into its level and entropy variant.
// It rejects unknown levels, unknown versions, and level/variant
// combinations the format does not produce.
func ParseHeader(b byte) (Level, CompressionType, error) {
	level := Level(b & headerLevelMask)
	version := b & headerVersionMask >> 2
	entropy := CompressionType(b & headerEntropyMask >> 4)

	if b&headerReservedMask != 0 {
		return 0, 0, errBadHeader(b, "reserved bits set")
	}
	if !level.Valid() {
		return 0, 0, errBadHeader(b, "invalid level")
	}
	if version != Version {
		return 0, 0, errBadHeader(b, "unsupported version")
	}
	if level == LevelEntropy {
		if entropy == CompressionNone {
			return 0, 0, errBadHeader(b, "missing entropy variant")
		}
	} else if entropy != CompressionNone {
		return 0, 0, errBadHeader(b, "entropy variant without entropy level")
	}

	return level, entropy, nil
}
