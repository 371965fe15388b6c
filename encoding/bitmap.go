package encoding

import (
	"iter"

	"github.com/arloliu/tossframe/internal/pool"
)

// BitmapEncoder packs booleans eight per byte, least significant bit first.
//
// The final byte is zero-padded, so an encoded column of n values occupies
// BitmapSize(n) bytes.
type BitmapEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

var _ ColumnarEncoder[bool] = (*BitmapEncoder)(nil)

// BitmapSize returns the number of bytes needed for n packed booleans.
func BitmapSize(n int) int {
	return (n + 7) / 8
}

// NewBitmapEncoder creates a bitmap encoder backed by a pooled column buffer.
func NewBitmapEncoder() *BitmapEncoder {
	return &BitmapEncoder{buf: pool.GetColumnBuffer()}
}

// Write appends a single boolean.
//
// Panics if Finish() has been called.
func (e *BitmapEncoder) Write(v bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	bit := e.count & 7
	if bit == 0 {
		e.buf.B = append(e.buf.B, 0)
	}
	if v {
		e.buf.B[len(e.buf.B)-1] |= 1 << bit
	}
	e.count++
}

// WriteSlice appends all values, growing the buffer once up front.
func (e *BitmapEncoder) WriteSlice(values []bool) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	e.buf.Grow(BitmapSize(e.count+len(values)) - e.buf.Len())
	for _, v := range values {
		e.Write(v)
	}
}

// WriteRun appends n copies of v. Whole bytes inside the run are filled directly.
func (e *BitmapEncoder) WriteRun(v bool, n int) {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	for n > 0 && e.count&7 != 0 {
		e.Write(v)
		n--
	}

	full := n / 8
	if full > 0 {
		fill := byte(0)
		if v {
			fill = 0xff
		}
		e.buf.Grow(full + 1)
		for range full {
			e.buf.B = append(e.buf.B, fill)
		}
		e.count += full * 8
		n -= full * 8
	}

	for range n {
		e.Write(v)
	}
}

// Bytes returns the packed bitmap.
func (e *BitmapEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of booleans written.
func (e *BitmapEncoder) Len() int {
	return e.count
}

// Size returns the encoded size in bytes.
func (e *BitmapEncoder) Size() int {
	return e.buf.Len()
}

// Reset clears the bitmap and keeps the buffer.
func (e *BitmapEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *BitmapEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// BitmapDecoder reads a bitmap produced by BitmapEncoder.
type BitmapDecoder struct{}

var _ ColumnarDecoder[bool] = BitmapDecoder{}

// NewBitmapDecoder creates a bitmap decoder.
func NewBitmapDecoder() BitmapDecoder {
	return BitmapDecoder{}
}

// All yields count booleans from data, stopping early if data is too short.
func (d BitmapDecoder) All(data []byte, count int) iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for i := range count {
			idx := i >> 3
			if idx >= len(data) {
				return
			}
			if !yield(data[idx]&(1<<(i&7)) != 0) {
				return
			}
		}
	}
}

// At returns the boolean at index.
func (d BitmapDecoder) At(data []byte, index int, count int) (bool, bool) {
	if index < 0 || index >= count {
		return false, false
	}

	idx := index >> 3
	if idx >= len(data) {
		return false, false
	}

	return data[idx]&(1<<(index&7)) != 0, true
}

// DecodeInto unpacks len(dst) booleans from data into dst.
// It returns false when data holds fewer than BitmapSize(len(dst)) bytes.
func (d BitmapDecoder) DecodeInto(dst []bool, data []byte) bool {
	if len(data) < BitmapSize(len(dst)) {
		return false
	}

	for i := range dst {
		dst[i] = data[i>>3]&(1<<(i&7)) != 0
	}

	return true
}
