package blob

import (
	"hash/crc32"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/format"
	"github.com/arloliu/tossframe/frame"
	"github.com/arloliu/tossframe/section"
)

type playerID int32

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionZstd,
	format.CompressionS2,
	format.CompressionLZ4,
}

func randomTable(t testing.TB, rows int, seed uint64) *frame.Table[int64] {
	t.Helper()

	rng := rand.New(rand.NewPCG(seed, seed))
	ids := make([]int64, rows)
	trials := make([]int, rows)
	heads := make([]int, rows)
	for k := range rows {
		ids[k] = int64(k*3 - 100)
		trials[k] = rng.IntN(40)
		heads[k] = rng.IntN(trials[k] + 1)
	}

	tbl, err := frame.Expand(ids, trials, heads)
	require.NoError(t, err)

	return tbl
}

func TestEncodeDecode_Int64(t *testing.T) {
	tbl := randomTable(t, 300, 1)

	for _, comp := range allCompressions {
		for _, idEnc := range []format.EncodingType{format.TypeRaw, format.TypeDelta} {
			for _, big := range []bool{false, true} {
				name := comp.String() + "/" + idEnc.String()
				endianOpt := WithLittleEndian()
				if big {
					name += "/big"
					endianOpt = WithBigEndian()
				}

				t.Run(name, func(t *testing.T) {
					data, err := Encode(tbl, WithCompression(comp), WithIDEncoding(idEnc), endianOpt)
					require.NoError(t, err)

					b, err := Decode[int64](data)
					require.NoError(t, err)
					require.Equal(t, tbl.Len(), b.Len())
					require.Equal(t, comp, b.Compression())
					require.Equal(t, big, b.Header().Flag.IsBigEndian())
					require.Equal(t, idEnc, b.Header().Flag.GetIDEncoding())
					require.False(t, b.HasCollision())

					if diff := cmp.Diff(tbl, b.Table()); diff != "" {
						t.Errorf("table mismatch (-want +got):\n%s", diff)
					}
				})
			}
		}
	}
}

func TestEncodeDecode_StringIDs(t *testing.T) {
	tbl, err := frame.Expand(
		[]string{"alice", "bob", "", "carol"},
		[]int{5, 1, 2, 9},
		[]int{2, 1, 0, 9},
	)
	require.NoError(t, err)

	for _, comp := range allCompressions {
		t.Run(comp.String(), func(t *testing.T) {
			// the integer id encoding option does not apply to strings
			data, err := Encode(tbl, WithCompression(comp), WithIDEncoding(format.TypeRaw))
			require.NoError(t, err)

			b, err := Decode[string](data)
			require.NoError(t, err)
			require.Equal(t, format.KindString, b.Header().Flag.GetIDKind())
			require.Equal(t, format.TypeVarString, b.Header().Flag.GetIDEncoding())
			require.True(t, tbl.Equal(b.Table()))
			require.Equal(t, 4, b.RunCount())
		})
	}
}

func TestEncodeDecode_NamedIntType(t *testing.T) {
	tbl, err := frame.Expand([]playerID{7, math.MaxInt32, math.MinInt32}, []int{2, 3, 1}, []int{1, 0, 1})
	require.NoError(t, err)

	data, err := Encode(tbl)
	require.NoError(t, err)

	b, err := Decode[playerID](data)
	require.NoError(t, err)
	require.True(t, tbl.Equal(b.Table()))

	blk, ok := b.Lookup(math.MaxInt32)
	require.True(t, ok)
	require.Equal(t, frame.Block[playerID]{ID: math.MaxInt32, Start: 2, Len: 3, Heads: 0}, blk)
}

func TestEncodeDecode_Empty(t *testing.T) {
	for _, comp := range allCompressions {
		t.Run(comp.String(), func(t *testing.T) {
			data, err := Encode(&frame.Table[int64]{}, WithCompression(comp))
			require.NoError(t, err)

			b, err := Decode[int64](data)
			require.NoError(t, err)
			require.Equal(t, 0, b.Len())
			require.Equal(t, 0, b.RunCount())
			require.Equal(t, 0, b.Table().Len())
			require.Empty(t, b.Summarize())

			_, ok := b.Lookup(1)
			require.False(t, ok)
		})
	}
}

func TestTableBlob_Lookup(t *testing.T) {
	tbl, err := frame.Expand(
		[]string{"a", "b", "a", "c"},
		[]int{3, 2, 4, 0},
		[]int{1, 2, 4, 0},
	)
	require.NoError(t, err)

	data, err := Encode(tbl, WithCompression(format.CompressionS2))
	require.NoError(t, err)
	b, err := Decode[string](data)
	require.NoError(t, err)

	blk, ok := b.Lookup("a")
	require.True(t, ok)
	require.Equal(t, frame.Block[string]{ID: "a", Start: 0, Len: 3, Heads: 1}, blk)

	all := slices.Collect(b.LookupAll("a"))
	require.Equal(t, []frame.Block[string]{
		{ID: "a", Start: 0, Len: 3, Heads: 1},
		{ID: "a", Start: 5, Len: 4, Heads: 4},
	}, all)

	_, ok = b.Lookup("c")
	require.False(t, ok, "zero-trial rows produce no run")

	_, ok = b.Lookup("zzz")
	require.False(t, ok)

	require.Equal(t, slices.Collect(tbl.Blocks()), slices.Collect(b.Runs()))
}

func TestTableBlob_SummarizeAndToss(t *testing.T) {
	tbl := randomTable(t, 200, 9)

	data, err := Encode(tbl)
	require.NoError(t, err)
	b, err := Decode[int64](data)
	require.NoError(t, err)

	require.Equal(t, tbl.Summarize(), b.Summarize())

	for i, want := range tbl.Toss {
		got, ok := b.Toss(i)
		require.True(t, ok)
		require.Equal(t, want, got, "row %d", i)
	}
	_, ok := b.Toss(tbl.Len())
	require.False(t, ok)
	_, ok = b.Toss(-1)
	require.False(t, ok)
}

func TestEncodeDecode_TossPatterns(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	random := make([]bool, 77)
	for i := range random {
		random[i] = rng.IntN(2) == 1
	}

	tests := []struct {
		name   string
		tosses []bool
	}{
		{name: "tails first", tosses: []bool{false, false, false, true, true}},
		{name: "alternating", tosses: []bool{true, false, true, false, true, false, true, false, true}},
		{name: "runs across bytes", tosses: slices.Concat(
			slices.Repeat([]bool{false}, 3), slices.Repeat([]bool{true}, 21), slices.Repeat([]bool{false}, 9))},
		{name: "random", tosses: random},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]int64, len(tt.tosses))
			for i := range ids {
				ids[i] = int64(i / 4)
			}
			tbl, ok := frame.NewTable(ids, tt.tosses)
			require.True(t, ok)

			data, err := Encode(tbl, WithCompression(format.CompressionNone))
			require.NoError(t, err)
			b, err := Decode[int64](data)
			require.NoError(t, err)

			require.Equal(t, tt.tosses, b.Table().Toss)
			require.Equal(t, tbl.Summarize(), b.Summarize())
		})
	}
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(&frame.Table[int64]{ID: []int64{1}, Toss: nil})
	require.ErrorIs(t, err, errs.ErrInvalidArgument)

	long := &frame.Table[string]{ID: []string{strings.Repeat("x", 256)}, Toss: []bool{true}}
	_, err = Encode(long)
	require.ErrorIs(t, err, errs.ErrTextTooLong)

	_, err = NewTableEncoder[int64](WithCompression(format.CompressionType(99)))
	require.ErrorIs(t, err, errs.ErrInvalidCompression)

	_, err = NewTableEncoder[int64](WithIDEncoding(format.TypeBitmap))
	require.ErrorIs(t, err, errs.ErrInvalidIDEncoding)
}

func TestTableEncoder_Reuse(t *testing.T) {
	e, err := NewTableEncoder[int64](WithCompression(format.CompressionLZ4))
	require.NoError(t, err)

	for seed := range uint64(3) {
		tbl := randomTable(t, 50, seed)
		data, err := e.Encode(tbl)
		require.NoError(t, err)

		b, err := Decode[int64](data)
		require.NoError(t, err)
		require.True(t, tbl.Equal(b.Table()))
	}
}

func TestDecode_Errors(t *testing.T) {
	tbl := randomTable(t, 20, 3)
	data, err := Encode(tbl, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("short", func(t *testing.T) {
		_, err := Decode[int64](data[:section.HeaderSize-1])
		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	t.Run("kind mismatch", func(t *testing.T) {
		_, err := Decode[string](data)
		require.ErrorIs(t, err, errs.ErrIDKindMismatch)
	})

	t.Run("bad magic", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[1] ^= 0xFF
		_, err := Decode[int64](bad)
		require.ErrorIs(t, err, errs.ErrInvalidHeaderFlags)
	})

	t.Run("checksum", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[len(bad)-1] ^= 0x01
		_, err := Decode[int64](bad)
		require.ErrorIs(t, err, errs.ErrChecksumMismatch)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := Decode[int64](data[:len(data)-1])
		require.Error(t, err)
	})

	t.Run("index does not tile rows", func(t *testing.T) {
		bad := slices.Clone(data)
		engine := endian.GetLittleEndianEngine()
		entry, err := section.ParseRunIndexEntry(bad[section.IndexOffsetOffset:], engine)
		require.NoError(t, err)
		entry.Length++
		require.NoError(t, entry.WriteToSlice(bad[section.IndexOffsetOffset:], engine))
		resign(bad)

		_, err = Decode[int64](bad)
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
	})

	t.Run("run hash", func(t *testing.T) {
		bad := slices.Clone(data)
		bad[section.IndexOffsetOffset] ^= 0xFF
		resign(bad)

		_, err := Decode[int64](bad)
		require.ErrorIs(t, err, errs.ErrCorruptPayload)
	})

	t.Run("id overflow", func(t *testing.T) {
		wide, err := Encode(&frame.Table[int64]{ID: []int64{math.MaxInt64}, Toss: []bool{true}})
		require.NoError(t, err)

		_, err = Decode[playerID](wide)
		require.ErrorIs(t, err, errs.ErrIDKindMismatch)
	})
}

// resign recomputes the header checksum after a payload edit.
func resign(data []byte) {
	var h section.TableHeader
	if err := h.Parse(data[:section.HeaderSize]); err != nil {
		panic(err)
	}
	h.Checksum = crc32.ChecksumIEEE(data[section.HeaderSize:])
	h.WriteToSlice(data)
}

func TestCountOnes(t *testing.T) {
	rng := rand.New(rand.NewPCG(5, 5))
	tosses := make([]bool, 301)
	for i := range tosses {
		tosses[i] = rng.IntN(2) == 1
	}

	tbl := &frame.Table[int64]{ID: make([]int64, len(tosses)), Toss: tosses}
	data, err := Encode(tbl, WithCompression(format.CompressionNone))
	require.NoError(t, err)
	b, err := Decode[int64](data)
	require.NoError(t, err)

	for _, r := range [][2]int{{0, 0}, {0, 301}, {3, 5}, {7, 9}, {8, 16}, {13, 200}, {300, 1}} {
		want := 0
		for _, v := range tosses[r[0] : r[0]+r[1]] {
			if v {
				want++
			}
		}
		require.Equal(t, want, countOnes(b.toss, r[0], r[1]), "range %v", r)
	}
}
