package encoding

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBitmapEncoder_Write(t *testing.T) {
	enc := NewBitmapEncoder()
	defer enc.Finish()

	for _, v := range []bool{true, false, false, true, true} {
		enc.Write(v)
	}

	require.Equal(t, 5, enc.Len())
	require.Equal(t, 1, enc.Size())
	require.Equal(t, []byte{0b00011001}, enc.Bytes())
}

func TestBitmapEncoder_WriteRun(t *testing.T) {
	tests := []struct {
		name string
		runs []struct {
			v bool
			n int
		}
	}{
		{"aligned", []struct {
			v bool
			n int
		}{{true, 16}, {false, 8}}},
		{"unaligned", []struct {
			v bool
			n int
		}{{true, 3}, {false, 13}, {true, 21}, {false, 0}, {true, 1}}},
		{"single long run", []struct {
			v bool
			n int
		}{{true, 1000}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runEnc := NewBitmapEncoder()
			defer runEnc.Finish()
			var want []bool
			for _, r := range tt.runs {
				runEnc.WriteRun(r.v, r.n)
				for range r.n {
					want = append(want, r.v)
				}
			}

			sliceEnc := NewBitmapEncoder()
			defer sliceEnc.Finish()
			sliceEnc.WriteSlice(want)

			require.Equal(t, len(want), runEnc.Len())
			require.Equal(t, BitmapSize(len(want)), runEnc.Size())
			require.Equal(t, sliceEnc.Bytes(), runEnc.Bytes())

			got := slices.Collect(NewBitmapDecoder().All(runEnc.Bytes(), len(want)))
			if len(want) == 0 {
				require.Empty(t, got)
			} else {
				require.Equal(t, want, got)
			}
		})
	}
}

func TestBitmapEncoder_Reset(t *testing.T) {
	enc := NewBitmapEncoder()
	defer enc.Finish()

	enc.WriteRun(true, 9)
	enc.Reset()
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())

	enc.Write(true)
	require.Equal(t, []byte{0x01}, enc.Bytes())
}

func TestBitmapEncoder_WriteAfterFinish(t *testing.T) {
	enc := NewBitmapEncoder()
	enc.Finish()

	require.Panics(t, func() { enc.Write(true) })
	require.Panics(t, func() { enc.WriteRun(true, 4) })
}

func TestBitmapDecoder(t *testing.T) {
	data := []byte{0b10100101, 0b00000001}
	dec := NewBitmapDecoder()

	v, ok := dec.At(data, 0, 9)
	require.True(t, ok)
	require.True(t, v)
	v, ok = dec.At(data, 1, 9)
	require.True(t, ok)
	require.False(t, v)
	v, ok = dec.At(data, 8, 9)
	require.True(t, ok)
	require.True(t, v)

	_, ok = dec.At(data, 9, 9)
	require.False(t, ok)
	_, ok = dec.At(data, -1, 9)
	require.False(t, ok)
	_, ok = dec.At(data, 16, 20)
	require.False(t, ok)

	// Truncated data stops the iterator early.
	require.Len(t, slices.Collect(dec.All(data[:1], 12)), 8)

	dst := make([]bool, 9)
	require.True(t, dec.DecodeInto(dst, data))
	require.Equal(t, []bool{true, false, true, false, false, true, false, true, true}, dst)
	require.False(t, dec.DecodeInto(make([]bool, 17), data))
}

func BenchmarkBitmapEncoder_WriteRun(b *testing.B) {
	enc := NewBitmapEncoder()
	defer enc.Finish()

	for b.Loop() {
		enc.Reset()
		for i := range 1000 {
			enc.WriteRun(i%2 == 0, 37)
		}
	}
}
