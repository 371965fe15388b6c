// Package encoding provides the column codecs behind the tossframe table blob format.
//
// Every codec appends into a pooled byte buffer and exposes the encoded bytes through
// Bytes. Decoders are stateless values that read from a byte slice produced by the
// matching encoder:
//
//   - BitmapEncoder / BitmapDecoder: booleans packed eight per byte, LSB first.
//     Used for the toss column.
//   - Int64RawEncoder / Int64RawDecoder: fixed 8-byte integers in a chosen byte order.
//   - Int64DeltaEncoder / Int64DeltaDecoder: zig-zag varint deltas between consecutive
//     integers. Good for sorted integer ids.
//   - UvarintEncoder / UvarintDecoder: unsigned varints. Used for run lengths.
//   - VarStringEncoder / VarStringDecoder: uint8 length prefix plus bytes, at most
//     MaxTextLength bytes per string. Used for string ids.
//
// Encoders are not safe for concurrent use. Call Finish once the encoded bytes have
// been copied out, to return the buffer to the pool.
//
// Example:
//
//	enc := encoding.NewBitmapEncoder()
//	defer enc.Finish()
//
//	enc.WriteRun(true, 3)
//	enc.WriteRun(false, 2)
//	payload := append([]byte(nil), enc.Bytes()...)
//
//	for v := range encoding.NewBitmapDecoder().All(payload, 5) {
//	    fmt.Println(v)
//	}
package encoding
