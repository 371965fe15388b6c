package encoding

import (
	"iter"

	"github.com/arloliu/tossframe/endian"
	"github.com/arloliu/tossframe/internal/pool"
)

// Int64RawEncoder stores each int64 as 8 bytes in the engine's byte order.
type Int64RawEncoder struct {
	buf    *pool.ByteBuffer
	engine endian.EndianEngine
	count  int
}

var _ ColumnarEncoder[int64] = (*Int64RawEncoder)(nil)

// NewInt64RawEncoder creates a raw int64 encoder using the specified endian engine.
func NewInt64RawEncoder(engine endian.EndianEngine) *Int64RawEncoder {
	return &Int64RawEncoder{
		engine: engine,
		buf:    pool.GetColumnBuffer(),
	}
}

// Write appends a single value.
//
// Panics if Finish() has been called.
func (e *Int64RawEncoder) Write(v int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.count++
	e.buf.Grow(8)
	e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint:gosec
}

// WriteSlice appends all values after a single buffer growth.
func (e *Int64RawEncoder) WriteSlice(values []int64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(8 * len(values))
	for _, v := range values {
		e.buf.B = e.engine.AppendUint64(e.buf.B, uint64(v)) //nolint:gosec
	}
	e.count += len(values)
}

func (e *Int64RawEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *Int64RawEncoder) Len() int      { return e.count }
func (e *Int64RawEncoder) Size() int     { return e.buf.Len() }

// Reset clears the encoded values and keeps the buffer.
func (e *Int64RawEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *Int64RawEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// Int64RawDecoder reads values written by Int64RawEncoder.
type Int64RawDecoder struct {
	engine endian.EndianEngine
}

var _ ColumnarDecoder[int64] = Int64RawDecoder{}

// NewInt64RawDecoder creates a raw decoder for the given byte order.
func NewInt64RawDecoder(engine endian.EndianEngine) Int64RawDecoder {
	return Int64RawDecoder{engine: engine}
}

// All yields count values, stopping early on truncated data.
func (d Int64RawDecoder) All(data []byte, count int) iter.Seq[int64] {
	return func(yield func(int64) bool) {
		for i := range count {
			off := i * 8
			if off+8 > len(data) {
				return
			}
			if !yield(int64(d.engine.Uint64(data[off : off+8]))) { //nolint:gosec
				return
			}
		}
	}
}

// At returns the value at index with O(1) access.
func (d Int64RawDecoder) At(data []byte, index int, count int) (int64, bool) {
	if index < 0 || index >= count {
		return 0, false
	}

	off := index * 8
	if off+8 > len(data) {
		return 0, false
	}

	return int64(d.engine.Uint64(data[off : off+8])), true //nolint:gosec
}
