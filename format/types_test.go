package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypeStrings(t *testing.T) {
	require.Equal(t, "Delta", TypeDelta.String())
	require.Equal(t, "Bitmap", TypeBitmap.String())
	require.Equal(t, "Unknown", EncodingType(0x7f).String())
	require.Equal(t, "LZ4", CompressionLZ4.String())
	require.Equal(t, "Unknown", CompressionType(0).String())
	require.Equal(t, "String", KindString.String())
	require.Equal(t, "Unknown", IDKind(9).String())
}

func TestParseCompression(t *testing.T) {
	tests := []struct {
		name string
		want CompressionType
		ok   bool
	}{
		{"", CompressionNone, true},
		{"none", CompressionNone, true},
		{"zstd", CompressionZstd, true},
		{"s2", CompressionS2, true},
		{"lz4", CompressionLZ4, true},
		{"gzip", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCompression(tt.name)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseEncoding(t *testing.T) {
	enc, ok := ParseEncoding("raw")
	require.True(t, ok)
	require.Equal(t, TypeRaw, enc)

	enc, ok = ParseEncoding("")
	require.True(t, ok)
	require.Equal(t, TypeDelta, enc)

	_, ok = ParseEncoding("gorilla")
	require.False(t, ok)
}
