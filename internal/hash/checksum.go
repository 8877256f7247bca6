package hash

import "github.com/cespare/xxhash/v2"

// Checksum computes the xxHash64 of the given bytes. The Level-3 entropy
// frame stores this over the framed Level-2 body so the decoder can detect
// corrupt or mismatched entropy streams.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
