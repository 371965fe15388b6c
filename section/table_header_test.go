package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
)

func TestNewTableHeader(t *testing.T) {
	h, err := NewTableHeader(10, 3)
	require.NoError(t, err)
	require.Equal(t, uint64(10), h.RowCount)
	require.Equal(t, uint32(3), h.RunCount)
	require.Equal(t, uint32(HeaderSize+3*RunIndexEntrySize), h.IDOffset)
	require.Equal(t, 3*RunIndexEntrySize, h.IndexSize())
	require.False(t, h.Flag.IsBigEndian())

	_, err = NewTableHeader(-1, 0)
	require.ErrorIs(t, err, errs.ErrTooManyRows)

	_, err = NewTableHeader(2, 3)
	require.ErrorIs(t, err, errs.ErrCorruptPayload)
}

func TestTableHeader_RoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		bigEndian bool
		kind      format.IDKind
		enc       format.EncodingType
		comp      format.CompressionType
		collision bool
	}{
		{"little int delta", false, format.KindInt64, format.TypeDelta, format.CompressionNone, false},
		{"big int raw zstd", true, format.KindInt64, format.TypeRaw, format.CompressionZstd, false},
		{"string s2 collision", false, format.KindString, format.TypeVarString, format.CompressionS2, true},
		{"big string lz4", true, format.KindString, format.TypeVarString, format.CompressionLZ4, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := NewTableHeader(1000, 7)
			require.NoError(t, err)
			if tt.bigEndian {
				h.Flag.WithBigEndian()
			}
			h.Flag.SetIDKind(tt.kind)
			h.Flag.SetIDEncoding(tt.enc)
			h.Flag.SetCompression(tt.comp)
			h.Flag.SetCollision(tt.collision)
			h.TossOffset = h.IDOffset + 123
			h.Checksum = 0xDEADBEEF

			data := h.Bytes()
			require.Len(t, data, HeaderSize)

			var got TableHeader
			require.NoError(t, got.Parse(data))
			require.Equal(t, *h, got)
			require.Equal(t, tt.bigEndian, got.Flag.IsBigEndian())
			require.Equal(t, tt.collision, got.Flag.HasCollision())
			require.Equal(t, tt.kind, got.Flag.GetIDKind())
			require.Equal(t, tt.enc, got.Flag.GetIDEncoding())
			require.Equal(t, tt.comp, got.Flag.GetCompression())
		})
	}
}

func TestTableHeader_OptionsAlwaysLittleEndian(t *testing.T) {
	h, err := NewTableHeader(1, 1)
	require.NoError(t, err)
	h.Flag.WithBigEndian()

	data := h.Bytes()
	opts := uint16(data[0]) | uint16(data[1])<<8
	require.Equal(t, uint16(MagicTableV1Opt|EndiannessMask), opts)
	require.Equal(t, uint32(1), endian.GetBigEndianEngine().Uint32(data[16:20]))
}

func TestTableHeader_ParseErrors(t *testing.T) {
	var h TableHeader
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize-1)), errs.ErrInvalidHeaderSize)
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize+1)), errs.ErrInvalidHeaderSize)
	require.ErrorIs(t, h.Parse(make([]byte, HeaderSize)), errs.ErrInvalidHeaderFlags)

	valid, err := NewTableHeader(4, 2)
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(b []byte)
	}{
		{"bad magic", func(b []byte) { b[1] = 0xAB }},
		{"reserved bit", func(b []byte) { b[0] |= ReservedBitMask }},
		{"reserved bit 3", func(b []byte) { b[0] |= ReservedBitsMask }},
		{"reserved bytes", func(b []byte) { b[6] = 1 }},
		{"unknown kind", func(b []byte) { b[2] = 9 }},
		{"varstring for ints", func(b []byte) { b[3] = byte(format.TypeVarString) }},
		{"delta for strings", func(b []byte) { b[2] = byte(format.KindString) }},
		{"unknown compression", func(b []byte) { b[4] = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := valid.Bytes()
			tt.mutate(data)
			require.ErrorIs(t, h.Parse(data), errs.ErrInvalidHeaderFlags)
		})
	}
}

func TestTableFlag_Bits(t *testing.T) {
	f := NewTableFlag()
	require.NoError(t, f.Validate())
	require.Equal(t, uint16(MagicTableV1Opt), f.GetMagicNumber())

	f.WithBigEndian()
	f.SetCollision(true)
	require.True(t, f.IsBigEndian())
	require.True(t, f.HasCollision())
	require.Equal(t, uint16(MagicTableV1Opt), f.GetMagicNumber())

	f.WithLittleEndian()
	f.SetCollision(false)
	require.False(t, f.IsBigEndian())
	require.False(t, f.HasCollision())
	require.NoError(t, f.Validate())
}
