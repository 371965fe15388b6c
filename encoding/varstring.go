package encoding

import (
	"fmt"
	"iter"

	"github.com/arloliu/tossframe/errs"
	"github.com/arloliu/tossframe/internal/pool"
)

// MaxTextLength is the maximum byte length of an encoded string.
// The uint8 length prefix caps it at 255.
const MaxTextLength = 255

// VarStringEncoder encodes strings as a 1-byte length followed by the UTF-8 bytes.
//
// Note: The VarStringEncoder is NOT a ColumnarEncoder since writes can fail.
type VarStringEncoder struct {
	buf   *pool.ByteBuffer
	count int
}

// NewVarStringEncoder creates a string encoder backed by a pooled column buffer.
func NewVarStringEncoder() *VarStringEncoder {
	return &VarStringEncoder{buf: pool.GetColumnBuffer()}
}

// Write encodes a single string.
//
// Returns an error wrapping errs.ErrTextTooLong if text exceeds MaxTextLength bytes.
func (e *VarStringEncoder) Write(text string) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	if len(text) > MaxTextLength {
		return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrTextTooLong, len(text), MaxTextLength)
	}

	e.buf.Grow(1 + len(text))
	e.buf.B = append(e.buf.B, uint8(len(text))) //nolint:gosec
	e.buf.B = append(e.buf.B, text...)
	e.count++

	return nil
}

// WriteSlice validates every string first and then encodes them all.
// Nothing is written when any string is too long.
func (e *VarStringEncoder) WriteSlice(texts []string) error {
	if e.buf == nil {
		panic("encoder already finished - cannot write after Finish()")
	}

	totalSize := 0
	for _, text := range texts {
		if len(text) > MaxTextLength {
			return fmt.Errorf("%w: length %d exceeds maximum %d", errs.ErrTextTooLong, len(text), MaxTextLength)
		}
		totalSize += 1 + len(text)
	}

	e.buf.Grow(totalSize)
	for _, text := range texts {
		e.buf.B = append(e.buf.B, uint8(len(text))) //nolint:gosec
		e.buf.B = append(e.buf.B, text...)
	}
	e.count += len(texts)

	return nil
}

func (e *VarStringEncoder) Bytes() []byte { return e.buf.Bytes() }
func (e *VarStringEncoder) Len() int      { return e.count }
func (e *VarStringEncoder) Size() int     { return e.buf.Len() }

// Reset clears the encoded strings and keeps the buffer.
func (e *VarStringEncoder) Reset() {
	e.buf.Reset()
	e.count = 0
}

// Finish returns the buffer to the pool.
func (e *VarStringEncoder) Finish() {
	pool.PutColumnBuffer(e.buf)
	e.buf = nil
	e.count = 0
}

// VarStringDecoder reads strings written by VarStringEncoder.
type VarStringDecoder struct{}

var _ ColumnarDecoder[string] = VarStringDecoder{}

// NewVarStringDecoder creates a string decoder.
func NewVarStringDecoder() VarStringDecoder {
	return VarStringDecoder{}
}

// All yields count strings, stopping early on truncated data.
func (d VarStringDecoder) All(data []byte, count int) iter.Seq[string] {
	return func(yield func(string) bool) {
		off := 0
		for range count {
			if off >= len(data) {
				return
			}
			n := int(data[off])
			off++
			if off+n > len(data) {
				return
			}
			if !yield(string(data[off : off+n])) {
				return
			}
			off += n
		}
	}
}

// At returns the string at index. Access is sequential, O(index).
func (d VarStringDecoder) At(data []byte, index int, count int) (string, bool) {
	if index < 0 || index >= count {
		return "", false
	}

	i := 0
	for s := range d.All(data, index+1) {
		if i == index {
			return s, true
		}
		i++
	}

	return "", false
}
