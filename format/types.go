package format

type (
	EncodingType    uint8
	CompressionType uint8
	IDKind          uint8
)

const (
	TypeRaw       EncodingType = 0x1 // TypeRaw stores fixed-width integers.
	TypeDelta     EncodingType = 0x2 // TypeDelta stores zig-zag varint deltas between consecutive integers.
	TypeVarString EncodingType = 0x3 // TypeVarString stores uint8 length-prefixed strings.
	TypeBitmap    EncodingType = 0x4 // TypeBitmap packs booleans eight per byte.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	KindInt64  IDKind = 0x1 // KindInt64 marks an integer id column.
	KindString IDKind = 0x2 // KindString marks a string id column.
)

func (e EncodingType) String() string {
	switch e {
	case TypeRaw:
		return "Raw"
	case TypeDelta:
		return "Delta"
	case TypeVarString:
		return "VarString"
	case TypeBitmap:
		return "Bitmap"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (k IDKind) String() string {
	switch k {
	case KindInt64:
		return "Int64"
	case KindString:
		return "String"
	default:
		return "Unknown"
	}
}

// ParseCompression maps a lowercase name ("none", "zstd", "s2", "lz4") to its CompressionType.
func ParseCompression(name string) (CompressionType, bool) {
	switch name {
	case "none", "":
		return CompressionNone, true
	case "zstd":
		return CompressionZstd, true
	case "s2":
		return CompressionS2, true
	case "lz4":
		return CompressionLZ4, true
	default:
		return 0, false
	}
}

// ParseEncoding maps a lowercase integer id encoding name ("raw", "delta") to its EncodingType.
func ParseEncoding(name string) (EncodingType, bool) {
	switch name {
	case "raw":
		return TypeRaw, true
	case "delta", "":
		return TypeDelta, true
	default:
		return 0, false
	}
}
