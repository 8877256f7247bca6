// Package compress implements the entropy stage applied to Level-3 vpack
// payloads.
//
// The structural encoding already removes type and width overhead; the
// entropy stage squeezes the remaining byte-level redundancy (repeated tag
// runs, similar table shapes, string content) with a general-purpose
// compressor. Three algorithms are available, selected by the payload
// header's entropy variant bits:
//
//   - Zstd: best ratio, the default
//   - S2:   balanced ratio and speed
//   - LZ4:  fastest decompression
//
// All three are lossless over arbitrary byte input and deterministic for a
// given input. The NoOp codec exists for benchmarking the framing overhead
// in isolation; the format never marks a Level-3 payload with it.
//
// Codecs carry no per-call state and are safe for concurrent use.
package compress
