package encoding

import "iter"

// ColumnarEncoder appends values of type T to an encoded column.
type ColumnarEncoder[T comparable] interface {
	// Bytes returns the encoded bytes written so far.
	// The returned slice is valid until the next write, Reset or Finish.
	Bytes() []byte

	// Len returns the number of encoded values.
	Len() int

	// Size returns the number of encoded bytes.
	Size() int

	// Reset discards the encoded data and keeps the buffer for reuse.
	Reset()

	// Finish returns the buffer to the pool. The encoder is unusable afterwards and
	// any further call panics.
	Finish()

	// Write encodes a single value.
	Write(v T)

	// WriteSlice encodes a slice of values. Prefer it over repeated Write calls.
	WriteSlice(values []T)
}

// ColumnarDecoder reads values of type T from a column produced by the matching encoder.
type ColumnarDecoder[T comparable] interface {
	// All yields the first count values in data.
	//
	// On malformed or truncated data the iterator stops early, so callers that need
	// exactly count values must count what they receive.
	All(data []byte, count int) iter.Seq[T]

	// At returns the value at index, or false when index is outside [0, count) or
	// the data is too short.
	At(data []byte, index int, count int) (T, bool)
}
