package encoding

import (
	"encoding/binary"
	"iter"

	"github.com/arloliu/tossframe/internal/pool"
)

// UvarintEncoder stores unsigned integers as varints. The blob format uses it
// for run lengths.
type UvarintEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[uint64] = (*UvarintEncoder)(nil)

// NewUvarintEncoder creates a uvarint encoder backed by a pooled column buffer.
func NewUvarintEncoder() *UvarintEncoder {
	return &UvarintEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends a single value.
//
// Panics if Finish() has been called.
func (e *UvarintEncoder) Write(v uint64) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(binary.MaxVarintLen64)
	e.buf.B = binary.AppendUvarint(e.buf.B, v)
	e.count++
}

// WriteSlice appends all values.
func (e *UvarintEncoder) WriteSlice(values []uint64) {
	for _, v := range values {
		e.Write(v)
	}
}

func (e *UvarintEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *UvarintEncoder) Len() int      { return e.count }
func (e *UvarintEncoder) Size() int     { return e.buf.Len() }

// Reset clears the encoded values and keeps the buffer.
func (e *UvarintEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *UvarintEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// UvarintDecoder reads values written by UvarintEncoder.
type UvarintDecoder struct{}

var _ ColumnarDecoder[uint64] = UvarintDecoder{}

// NewUvarintDecoder creates a uvarint decoder.
func NewUvarintDecoder() UvarintDecoder {
	return UvarintDecoder{}
}

// All yields count values, stopping early on malformed varints.
func (d UvarintDecoder) All(data []byte, count int) iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		off := 0
		for range count {
			v, n := binary.Uvarint(data[off:])
			if n <= 0 {
				return
			}
			off += n
			if !yield(v) {
				return
			}
		}
	}
}

// At returns the value at index. Access is sequential, O(index).
func (d UvarintDecoder) At(data []byte, index int, count int) (uint64, bool) {
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
