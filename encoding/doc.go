// Package encoding implements the structural codec for vpack value trees.
//
// Every value is framed as a tag byte followed by a variant-specific
// payload. Integers use a tagged variable-width encoding where the tag
// carries both sign and byte width; strings and buffers are length-prefixed
// with the same tagged integers; tables carry an array-part count and a
// hash-part count followed by their elements.
//
// The Encoder walks a value tree and appends the framed bytes to a pooled
// buffer. With the string pool enabled (compression level 2 and up) every
// inline string emission is also recorded, in emit order, and later
// occurrences of the same string may be emitted as small pool references.
// The Decoder rebuilds the pool from the inline emissions it reads, so the
// pool never appears in the stream as a separate section.
//
// Both directions enforce a recursion depth limit and the format's 32-bit
// size caps. Neither retains state across calls.
package encoding
