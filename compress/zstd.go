package compress

// ZstdCompressor is the default entropy codec. It favors compression
// ratio over speed, which suits the save-file and network-payload
// workloads Level 3 targets.
//
// Two implementations exist behind build tags: a pure-Go one backed by
// klauspost/compress and a cgo one backed by valyala/gozstd. Both produce
// standard Zstandard frames and interoperate freely.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec with default settings.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
