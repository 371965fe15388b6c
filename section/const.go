package section

import "math"

const (
	// Bit masks of TableFlag.Options
	ReservedBitMask  = 0x0001 // Mask for reserved bit (bit 0), must be zero
	EndiannessMask   = 0x0002 // Mask for endianness bit (bit 1)
	CollisionMask    = 0x0004 // Mask for key hash collision bit (bit 2)
	ReservedBitsMask = 0x0008 // Mask for reserved bit (bit 3), must be zero
	MagicNumberMask  = 0xFFF0 // Mask for magic number (bits 4-15)

	// MagicTableV1Opt is the version 1 magic number of the table blob format.
	MagicTableV1Opt = 0xEC10
)

const (
	HeaderSize         = 32             // fixed header size in bytes
	RunIndexEntrySize  = 16             // fixed run index entry size in bytes
	IndexOffsetOffset  = HeaderSize     // byte offset where the run index starts
	MaxSectionOffset   = math.MaxUint32 // largest offset a header field can hold
	MaxRowCount        = math.MaxUint32 // run starts and lengths are uint32
	ChecksumStartIndex = HeaderSize     // the checksum covers data[HeaderSize:]
)
