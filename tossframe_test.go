package tossframe

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/tossframe/blob"
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/internal/hash"
)

// TestExpand verifies the worked example from the package documentation
func TestExpand(t *testing.T) {
	tbl, err := Expand([]int{1, 2}, []int{3, 2}, []int{1, 2})
	require.NoError(t, err)
	require.Equal(t, []int{1, 1, 1, 2, 2}, tbl.ID)
	require.Equal(t, []bool{true, false, false, true, true}, tbl.Toss)

	naive, err := ExpandNaive([]int{1, 2}, []int{3, 2}, []int{1, 2})
	require.NoError(t, err)
	require.True(t, tbl.Equal(naive))

	par, err := ExpandParallel(context.Background(), []int{1, 2}, []int{3, 2}, []int{1, 2}, 2)
	require.NoError(t, err)
	require.True(t, tbl.Equal(par))
}

// TestExpand_Invalid verifies all three expanders reject heads > trials
func TestExpand_Invalid(t *testing.T) {
	_, err := Expand([]string{"a"}, []int{1}, []int{2})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = ExpandNaive([]string{"a"}, []int{1}, []int{2})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	_, err = ExpandParallel(context.Background(), []string{"a"}, []int{1}, []int{2}, 0)
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

// TestNewTableEncoder_Defaults verifies the default options
func TestNewTableEncoder_Defaults(t *testing.T) {
	tbl, err := Expand([]int64{10, 11}, []int{2, 2}, []int{1, 0})
	require.NoError(t, err)

	data, err := Encode(tbl)
	require.NoError(t, err)

	b, err := Decode[int64](data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionZstd, b.Compression())
	require.Equal(t, format.TypeDelta, b.Header().Flag.GetIDEncoding())
	require.False(t, b.Header().Flag.IsBigEndian())
	require.True(t, tbl.Equal(b.Table()))
}

// TestEncode_Overrides verifies options override the defaults
func TestEncode_Overrides(t *testing.T) {
	tbl, err := Expand([]int64{10, 11}, []int{2, 2}, []int{1, 0})
	require.NoError(t, err)

	data, err := Encode(tbl, blob.WithCompression(format.CompressionLZ4), blob.WithIDEncoding(format.TypeRaw), blob.WithBigEndian())
	require.NoError(t, err)

	b, err := Decode[int64](data)
	require.NoError(t, err)
	require.Equal(t, format.CompressionLZ4, b.Compression())
	require.Equal(t, format.TypeRaw, b.Header().Flag.GetIDEncoding())
	require.True(t, b.Header().Flag.IsBigEndian())
	require.True(t, tbl.Equal(b.Table()))

	_, err = Encode(tbl, blob.WithCompression(format.CompressionType(0x7f)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)
}

// TestLoadInputs verifies inputs load from a CSV file and expand
func TestLoadInputs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("player,n,h\np1,2,1\np2,1,1\n"), 0o600))

	in, err := LoadInputs(context.Background(), path, "player", "n", "h")
	require.NoError(t, err)
	require.Equal(t, 2, in.Len())

	tbl, err := in.Expand()
	require.NoError(t, err)
	require.Equal(t, []string{"p1", "p1", "p2"}, tbl.ID)
	require.Equal(t, []bool{true, false, true}, tbl.Toss)

	_, err = LoadInputs(context.Background(), path, "id", "n", "h")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

// TestLoadInputs_ZeroPaddedIDs verifies numeric looking ids keep their text
func TestLoadInputs_ZeroPaddedIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,trials,heads\n007,2,1\n1.50,1,0\n"), 0o600))

	in, err := LoadInputs(context.Background(), path, "id", "trials", "heads")
	require.NoError(t, err)
	require.Equal(t, []string{"007", "1.50"}, in.IDs)

	require.NoError(t, os.WriteFile(path, []byte("id,trials,heads\n007,2.7,1\n"), 0o600))
	_, err = LoadInputs(context.Background(), path, "id", "trials", "heads")
	require.ErrorIs(t, err, errs.ErrInvalidArgument)
}

// TestIDHash verifies the hash matches the run index
func TestIDHash(t *testing.T) {
	require.Equal(t, hash.Key("cpu"), IDHash("cpu"))
	require.Equal(t, hash.Int(42), IDHash(int64(42)))
	require.Equal(t, IDHash(int64(42)), IDHash(42))

	tbl, err := Expand([]string{"x"}, []int{1}, []int{1})
	require.NoError(t, err)
	data, err := Encode(tbl)
	require.NoError(t, err)

	b, err := Decode[string](data)
	require.NoError(t, err)
	for blk := range b.Runs() {
		require.Equal(t, "x", blk.ID)
	}
	require.NotZero(t, IDHash("x"))
}
