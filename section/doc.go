// Package section defines the fixed-size binary structures of the tossframe table blob.
//
// # Blob Structure
//
//	┌──────────────────────────────────────────────────────────┐
//	│ Header (32 bytes)                                        │
//	│  - Flag (8 bytes): magic, byte order, collision bit,     │
//	│    id kind, id encoding, compression                     │
//	│  - RowCount (8 bytes)                                    │
//	│  - RunCount (4 bytes)                                    │
//	│  - IDOffset, TossOffset (4 bytes each)                   │
//	│  - Checksum (4 bytes): CRC32 of everything after header  │
//	├──────────────────────────────────────────────────────────┤
//	│ Run index (RunCount x 16 bytes)                          │
//	│  - KeyHash (8), Start row (4), Length (4)                │
//	├──────────────────────────────────────────────────────────┤
//	│ ID payload (compressed): run ids, then run lengths       │
//	├──────────────────────────────────────────────────────────┤
//	│ Toss payload (compressed): bitmap of every row           │
//	└──────────────────────────────────────────────────────────┘
//
// A run is a maximal stretch of consecutive rows with the same id; an expanded
// table has one run per non-empty input row unless neighbouring rows share an id.
//
// The Options field of the flag is always little-endian so a reader can learn the
// byte order of the rest of the header from it.
package section
