package format

type (
	// Level selects how much work the compressor performs.
	Level uint8

	// CompressionType identifies the entropy codec used by Level 3 payloads.
	CompressionType uint8
)

const (
	// LevelStructural emits the structural encoding only; every string is inline.
	LevelStructural Level = 1
	// LevelPooled adds the string pool so repeated strings and keys become back-references.
	LevelPooled Level = 2
	// LevelEntropy wraps the pooled encoding in a generic byte-stream compressor.
	LevelEntropy Level = 3

	CompressionNone CompressionType = 0x0 // CompressionNone represents no entropy stage.
	CompressionZstd CompressionType = 0x1 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x2 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x3 // CompressionLZ4 represents LZ4 block compression.
)

// Valid reports whether l is one of the three published levels.
func (l Level) Valid() bool {
	return l >= LevelStructural && l <= LevelEntropy
}

func (l Level) String() string {
	switch l {
	case LevelStructural:
		return "Structural"
	case LevelPooled:
		return "Pooled"
	case LevelEntropy:
		return "Entropy"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
