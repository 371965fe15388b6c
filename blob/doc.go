// Package blob encodes expanded coin-toss tables into a compact, self-describing
// binary blob and decodes them back.
//
// # Layout
//
// A blob is a 32-byte header, a run index with one 16-byte entry per id run,
// the compressed id payload and the compressed toss payload. See package
// section for the byte layout of the header and index.
//
// Expanded tables repeat each id trials[k] times, so ids are stored once per
// run with the run length, and tosses are packed into a bitmap:
//
//	tbl, _ := frame.Expand([]int64{1, 2}, []int{3, 2}, []int{1, 2})
//
//	data, err := blob.Encode(tbl,
//	    blob.WithCompression(format.CompressionZstd),
//	    blob.WithIDEncoding(format.TypeDelta),
//	)
//
//	b, err := blob.Decode[int64](data)
//	run, ok := b.Lookup(2) // frame.Block{ID: 2, Start: 3, Len: 2, Heads: 2}
//	restored := b.Table()
//
// # ID Types
//
// Ids may be any integer (int, int32, int64 and named types over them) or
// string type. Integer ids are stored as int64 with raw or delta encoding;
// string ids are length-prefixed and limited to 255 bytes. Decoding with a
// different kind than was encoded returns errs.ErrIDKindMismatch.
//
// # Integrity
//
// The header carries a CRC32 of every byte after it. Decode verifies the
// checksum, the run index, and the xxHash64 of each run id before returning.
package blob
