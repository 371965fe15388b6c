package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/tossframe/internal/pool"
)

// Int64DeltaEncoder stores the first value and then each difference to the
// previous value as a zig-zag varint.
//
// Runs of ascending ids, the common shape of expansion inputs, cost one byte
// per value.
type Int64DeltaEncoder struct {
	buf   *pool.ByteBuffer
	prev  int64
	count int
}

var _ ColumnarEncoder[int64] = (*Int64DeltaEncoder)(nil)

// NewInt64DeltaEncoder creates a delta encoder backed by a pooled column buffer.
func NewInt64DeltaEncoder() *Int64DeltaEncoder {
	return &Int64DeltaEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends a single value.
//
// Panics if Finish() has been called.
func (e *Int64DeltaEncoder) Write(v int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(binary.MaxVarintLen64)
	e.buf.B = binary.AppendVarint(e.buf.B, v-e.prev)
	e.prev = v
	e.count++
}

// WriteSlice appends all values.
func (e *Int64DeltaEncoder) WriteSlice(values []int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	// Assume small deltas; Write grows further when needed.
	e.buf.Grow(2 * len(values))
	for _, v := range values {
		e.Write(v)
	}
}

func (e *Int64DeltaEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *Int64DeltaEncoder) Len() int      { return e.count }
func (e *Int64DeltaEncoder) Size() int     { return e.buf.Len() }

// Reset clears the encoded values and the delta state.
func (e *Int64DeltaEncoder) Reset() {
	e.buf.Reset()
	e.prev = 0
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *Int64DeltaEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.prev = 0
	e.count = 0
}

// Int64DeltaDecoder reads values written by Int64DeltaEncoder.
type Int64DeltaDecoder struct{}

var _ ColumnarDecoder[int64] = Int64DeltaDecoder{}

// NewInt64DeltaDecoder creates a delta decoder.
func NewInt64DeltaDecoder() Int64DeltaDecoder {
	return Int64DeltaDecoder{}
}

// All yields count values, stopping early on malformed varints.
func (d Int64DeltaDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		var prev int64
		off := 0
		for range count {
			delta, n := binary.Varint(data[off:])
			if n <= 0 {
				return
			}
			off += n
			prev += delta
			if !yield(prev) {
				return
			}
		}
	}
}

// At returns the value at index. Access is sequential, O(index).
func (d Int64DeltaDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	i := 0
	for v := range d.All(data, index+1) {
		if i == index {
			return v, true
		}
		i++
	}

	return 0, false
}
