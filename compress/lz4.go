package compress

import (
	"errors"
	"sync"

	"github.com/pierrec/lz4/v4"
)

// lz4CompressorPool reuses lz4.Compressor instances; the compressor keeps
// an internal hash table that is expensive to reallocate per call.
var lz4CompressorPool = sync.Pool{
	New: func() any {
		return &lz4.Compressor{}
	},
}

// LZ4 block framing. CompressBlock reports incompressible input with a
// zero length instead of producing a block, so the codec prepends one
// marker byte: compressed blocks start with lz4BlockMarker, raw
// passthrough starts with lz4RawMarker.
const (
	lz4RawMarker   = 0x00
	lz4BlockMarker = 0x01
)

var errLZ4Frame = errors.New("lz4 frame corrupt")

// LZ4Compressor trades some ratio for very fast decompression.
type LZ4Compressor struct{}

var _ Codec = (*LZ4Compressor)(nil)

// NewLZ4Compressor creates a new LZ4 block codec.
func NewLZ4Compressor() LZ4Compressor {
	return LZ4Compressor{}
}

// Compress compresses the input data as a single marked LZ4 block.
// Incompressible input is stored raw behind the marker byte so the codec
// stays lossless over arbitrary input.
func (c LZ4Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}
	dst := make([]byte, 1+lz4.CompressBlockBound(len(data)))
	dst[0] = lz4BlockMarker

	lc, _ := lz4CompressorPool.Get().(*lz4.Compressor)
	defer lz4CompressorPool.Put(lc)

	n, err := lc.CompressBlock(data, dst[1:])
	if err != nil {
		return nil, err
	}
	if n == 0 || n >= len(data) {
		raw := make([]byte, 1+len(data))
		raw[0] = lz4RawMarker
		copy(raw[1:], data)

		return raw, nil
	}

	return dst[:1+n], nil
}

// Decompress restores a marked LZ4 block.
//
// The block format does not record the decompressed size, so the buffer
// starts at 4x the input and doubles on short-buffer errors, bounded by a
// 128MB safety limit against corrupt headers.
func (c LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	switch data[0] {
	case lz4RawMarker:
		out := make([]byte, len(data)-1)
		copy(out, data[1:])

		return out, nil
	case lz4BlockMarker:
		// handled below
	default:
		return nil, errLZ4Frame
	}

	block := data[1:]
	bufSize := len(block) * 4
	const maxSize = 128 * 1024 * 1024

	for bufSize <= maxSize {
		buf := make([]byte, bufSize)
		n, err := lz4.UncompressBlock(block, buf)
		if err != nil {
			if errors.Is(err, lz4.ErrInvalidSourceShortBuffer) && bufSize < maxSize {
				bufSize *= 2
				continue
			}

			return nil, err
		}

		return buf[:n], nil
	}

	return nil, lz4.ErrInvalidSourceShortBuffer
}
