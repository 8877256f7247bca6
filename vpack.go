// Package vpack compresses dynamically-typed value trees into a compact,
// self-describing byte stream and restores them.
//
// The codec targets save-file and network-payload use cases where the
// natural alternative is JSON text. Three compression levels are
// published:
//
//   - Level 1 (format.LevelStructural): type-tagged structural encoding
//     with variable-width scalars; every string is inline.
//   - Level 2 (format.LevelPooled): adds a single-pass string pool so
//     repeated strings and table keys collapse into small back-references.
//   - Level 3 (format.LevelEntropy): wraps the Level-2 bytes in a generic
//     entropy compressor (Zstd by default; S2 and LZ4 selectable).
//
// Decompress is a single path: the payload's header byte names the level
// and, for Level 3, the entropy variant.
//
// # Basic Usage
//
//	v := value.Tbl(value.NewTable().
//	    Set("id", value.Int(42)).
//	    Set("name", value.Str("probe-7")))
//
//	data, err := vpack.Compress(v, format.LevelPooled)
//	if err != nil {
//	    return err
//	}
//
//	restored, err := vpack.Decompress(data)
//
// A Compress or Decompress call is synchronous, performs no I/O, and
// shares no state with other calls; concurrent calls on independent
// values are safe.
package vpack

import (
	"fmt"

	"github.com/arloliu/vpack/compress"
	"github.com/arloliu/vpack/encoding"
	"github.com/arloliu/vpack/endian"
	"github.com/arloliu/vpack/format"
	"github.com/arloliu/vpack/internal/hash"
	"github.com/arloliu/vpack/internal/options"
	"github.com/arloliu/vpack/value"
)

// Error kinds, re-exported from format for ergonomic errors.Is checks.
var (
	ErrUnsupportedType = format.ErrUnsupportedType
	ErrDepthExceeded   = format.ErrDepthExceeded
	ErrSizeLimit       = format.ErrSizeLimit
	ErrTruncated       = format.ErrTruncated
	ErrBadTag          = format.ErrBadTag
	ErrBadPoolIndex    = format.ErrBadPoolIndex
	ErrEntropy         = format.ErrEntropy
	ErrTrailingGarbage = format.ErrTrailingGarbage
)

// Config carries the tunables shared by Compress and Decompress.
type Config struct {
	maxDepth int
	entropy  format.CompressionType
}

// Option represents a functional option for configuring a Compress or
// Decompress call.
type Option = options.Option[*Config]

// WithMaxDepth overrides the recursion depth limit (default 64). The
// limit applies to both encode and decode.
func WithMaxDepth(depth int) Option {
	return options.New(func(c *Config) error {
		if depth < 1 {
			return fmt.Errorf("max depth must be positive, got %d", depth)
		}
		c.maxDepth = depth

		return nil
	})
}

// WithEntropyCompression selects the entropy codec used at Level 3
// (default Zstd). It has no effect at Levels 1 and 2.
func WithEntropyCompression(compressionType format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(compressionType); err != nil {
			return err
		}
		if compressionType == format.CompressionNone {
			return fmt.Errorf("entropy level requires a real codec, got %s", compressionType)
		}
		c.entropy = compressionType

		return nil
	})
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		maxDepth: encoding.DefaultMaxDepth,
		entropy:  format.CompressionZstd,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Compress serializes v at the given level and returns the payload,
// header byte included.
//
// Parameters:
//   - v: value tree to serialize; must not be nil
//   - level: one of format.LevelStructural, LevelPooled, LevelEntropy
//   - opts: WithMaxDepth, WithEntropyCompression
//
// Returns:
//   - []byte: complete payload owned by the caller
//   - error: ErrUnsupportedType, ErrDepthExceeded, ErrSizeLimit, or an
//     entropy codec failure; no partial output is returned
func Compress(v *value.Value, level format.Level, opts ...Option) ([]byte, error) {
	if !level.Valid() {
		return nil, fmt.Errorf("invalid compression level %d", level)
	}
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	enc := encoding.NewEncoder(level >= format.LevelPooled, cfg.maxDepth)
	defer enc.Reset()
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	body := enc.Bytes()

	if level == format.LevelEntropy {
		wrapped, err := wrapEntropy(body, cfg.entropy)
		if err != nil {
			return nil, err
		}
		// The entropy wrap carries frame overhead; when it does not pay
		// for itself the pooled payload is emitted instead. The header
		// keeps decode a single dispatch either way.
		if len(wrapped) < 1+len(body) {
			return wrapped, nil
		}
		level = format.LevelPooled
	}

	out := make([]byte, 0, 1+len(body))
	out = append(out, format.Header(level, format.CompressionNone))

	return append(out, body...), nil
}

// Decompress restores the value tree from a payload produced by Compress.
// The level is detected from the header byte; Level-3 payloads run the
// entropy decoder first and then read the restored bytes as a Level-2
// body. Exactly the whole input must be consumed.
func Decompress(data []byte, opts ...Option) (*value.Value, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty payload: %w", format.ErrTruncated)
	}

	level, entropy, err := format.ParseHeader(data[0])
	if err != nil {
		return nil, err
	}
	body := data[1:]

	if level == format.LevelEntropy {
		body, err = unwrapEntropy(body, entropy)
		if err != nil {
			return nil, err
		}
	}

	dec := encoding.NewDecoder(body, cfg.maxDepth)
	v, err := dec.Decode()
	if err != nil {
		return nil, err
	}
	if dec.Remaining() != 0 {
		return nil, fmt.Errorf("%d bytes left after value: %w", dec.Remaining(), format.ErrTrailingGarbage)
	}

	return v, nil
}

// Level-3 frame, immediately after the header byte:
//
//	frameLen  tagged uint   length of the entropy bytes
//	rawLen    tagged uint   length of the Level-2 body they restore to
//	checksum  8 bytes LE    xxHash64 of the Level-2 body
//	entropy bytes
//
// Length and checksum let the decoder bound the read and detect corrupt
// or mismatched entropy streams.
func wrapEntropy(body []byte, entropy format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(entropy)
	if err != nil {
		return nil, err
	}
	packed, err := codec.Compress(body)
	if err != nil {
		return nil, fmt.Errorf("entropy stage: %w", err)
	}

	engine := endian.GetLittleEndianEngine()
	out := make([]byte, 0, len(packed)+24)
	out = append(out, format.Header(format.LevelEntropy, entropy))
	out = encoding.AppendUint(out, uint64(len(packed)))
	out = encoding.AppendUint(out, uint64(len(body)))
	out = engine.AppendUint64(out, hash.Checksum(body))

	return append(out, packed...), nil
}

func unwrapEntropy(frame []byte, entropy format.CompressionType) ([]byte, error) {
	codec, err := compress.GetCodec(entropy)
	if err != nil {
		return nil, err
	}

	dec := encoding.NewDecoder(frame, encoding.DefaultMaxDepth)
	frameLen, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	rawLen, err := dec.ReadUint()
	if err != nil {
		return nil, err
	}
	if dec.Remaining() < 8 {
		return nil, format.ErrTruncated
	}
	engine := endian.GetLittleEndianEngine()
	sum := engine.Uint64(frame[dec.Pos() : dec.Pos()+8])

	packed := frame[dec.Pos()+8:]
	if uint64(len(packed)) < frameLen {
		return nil, format.ErrTruncated
	}
	if uint64(len(packed)) > frameLen {
		return nil, fmt.Errorf("%d bytes after entropy frame: %w",
			uint64(len(packed))-frameLen, format.ErrTrailingGarbage)
	}

	body, err := codec.Decompress(packed)
	if err != nil {
		return nil, fmt.Errorf("%s decode: %v: %w", entropy, err, format.ErrEntropy)
	}
	if uint64(len(body)) != rawLen || hash.Checksum(body) != sum {
		return nil, fmt.Errorf("entropy frame self-check failed: %w", format.ErrEntropy)
	}

	return body, nil
}
