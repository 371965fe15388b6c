package compress

// ZstdCompressor provides Zstandard compression for table payloads.
//
// The implementation is selected at build time: pure Go klauspost/compress/zstd by
// default, or the cgo valyala/gozstd binding with -tags gozstd.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a Zstd codec with the default level.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
