// Package compress provides the payload codecs of the tossframe table blob format.
//
// A table blob carries two payloads, the id runs and the toss bitmap. Each is
// encoded by package encoding first and then compressed as a whole with one of:
//
//   - None (format.CompressionNone): payload stored as-is. Fastest; the bitmap is
//     already eight rows per byte.
//   - Zstd (format.CompressionZstd): best ratio. Pure Go klauspost/compress by
//     default; build with -tags gozstd (and cgo) to use the valyala/gozstd binding.
//   - S2 (format.CompressionS2): klauspost/compress/s2, balanced speed and ratio.
//   - LZ4 (format.CompressionLZ4): pierrec/lz4 block format, fastest decompression.
//
// Expanded toss columns are long runs of identical bits (heads first, then tails),
// so every real codec shrinks them well; id payloads of sorted integer ids also
// compress to a few bytes per run.
//
// # Usage
//
//	codec, err := compress.GetCodec(format.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(payload)
//	...
//	payload, err = codec.Decompress(packed)
//
// # Thread Safety
//
// All codecs are stateless values backed by sync.Pool where they need scratch
// state, and are safe for concurrent use.
package compress
