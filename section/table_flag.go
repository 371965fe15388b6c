package section

import (
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
)

// TableFlag is the packed flag block at the start of a table header.
type TableFlag struct {
	// Options packs the format bits.
	// Bit 0 is reserved and must be 0.
	// Bit 1 is endianness: 0 little-endian, 1 big-endian.
	// Bit 2 is set when two distinct run ids share a key hash.
	// Bit 3 is reserved and must be 0.
	// Bits 4-15 hold the magic number 0xEC10.
	Options uint16

	// IDKind is the format.IDKind of the id column.
	IDKind uint8

	// IDEncoding is the format.EncodingType of the run ids.
	// Raw or Delta for KindInt64, VarString for KindString.
	IDEncoding uint8

	// Compression is the format.CompressionType applied to both payloads.
	Compression uint8

	Reserved [3]byte
}

// NewTableFlag creates a little-endian flag for an integer id column with delta
// encoded ids and no compression.
func NewTableFlag() TableFlag {
	return TableFlag{
		Options:     MagicTableV1Opt,
		IDKind:      uint8(format.KindInt64),
		IDEncoding:  uint8(format.TypeDelta),
		Compression: uint8(format.CompressionNone),
	}
}

// IsBigEndian returns whether the header and payloads are big-endian.
func (f TableFlag) IsBigEndian() bool {
	return (f.Options & EndiannessMask) != 0
}

// WithLittleEndian sets little-endian byte order.
func (f *TableFlag) WithLittleEndian() {
	f.Options &^= EndiannessMask
}

// WithBigEndian sets big-endian byte order.
func (f *TableFlag) WithBigEndian() {
	f.Options |= EndiannessMask
}

// HasCollision reports whether readers must verify keys on hash lookups.
func (f TableFlag) HasCollision() bool {
	return (f.Options & CollisionMask) != 0
}

// SetCollision sets or clears the collision bit.
func (f *TableFlag) SetCollision(enabled bool) {
	if enabled {
		f.Options |= CollisionMask
	} else {
		f.Options &^= CollisionMask
	}
}

// GetMagicNumber returns the magic number from the Options field.
func (f TableFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

func (f TableFlag) GetIDKind() format.IDKind {
	return format.IDKind(f.IDKind)
}

func (f *TableFlag) SetIDKind(kind format.IDKind) {
	f.IDKind = uint8(kind)
}

func (f TableFlag) GetIDEncoding() format.EncodingType {
	return format.EncodingType(f.IDEncoding)
}

func (f *TableFlag) SetIDEncoding(enc format.EncodingType) {
	f.IDEncoding = uint8(enc)
}

func (f TableFlag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

func (f *TableFlag) SetCompression(comp format.CompressionType) {
	f.Compression = uint8(comp)
}

// Validate checks the magic number, reserved bits, and that the id kind,
// id encoding and compression form a supported combination.
func (f TableFlag) Validate() error {
	if f.GetMagicNumber() != MagicTableV1Opt {
		return errs.ErrInvalidHeaderFlags
	}

	if f.Options&(ReservedBitMask|ReservedBitsMask) != 0 || f.Reserved != [3]byte{} {
		return errs.ErrInvalidHeaderFlags
	}

	switch f.GetIDKind() {
	case format.KindInt64:
		if enc := f.GetIDEncoding(); enc != format.TypeRaw && enc != format.TypeDelta {
			return errs.ErrInvalidHeaderFlags
		}
	case format.KindString:
		if f.GetIDEncoding() != format.TypeVarString {
			return errs.ErrInvalidHeaderFlags
		}
	default:
		return errs.ErrInvalidHeaderFlags
	}

	switch f.GetCompression() {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
		return nil
	default:
		return errs.ErrInvalidHeaderFlags
	}
}
