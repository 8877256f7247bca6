package compress

import (
	"fmt"

	"github.com/arloliu/vpack/format"
)

// Compressor compresses one framed payload.
type Compressor interface {
	// Compress compresses data and returns a newly allocated result.
	// The input slice is not modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores one framed payload.
type Decompressor interface {
	// Decompress restores data previously compressed with the same
	// algorithm. The result is newly allocated; the input is not
	// modified. Corrupt or mismatched input yields an error.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. All built-in codecs implement it.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the given compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}
