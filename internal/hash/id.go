package hash

import "github.com/cespare/xxhash/v2"

// Key computes the xxHash64 of a run id rendered as its key string.
func Key(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Int computes the xxHash64 of an integer id using its little-endian bytes.
func Int(v int64) uint64 {
	var b [8]byte
	u := uint64(v) //nolint:gosec
	for i := range b {
		b[i] = byte(u >> (8 * i))
	}

	return xxhash.Sum64(b[:])
}
