// Package endian selects the byte order used by the table blob format.
//
// A blob records its byte order in the header flag, so readers pick the engine
// with ForBigEndian(flag.IsBigEndian()) and writers with the encoder option.
// Little-endian is the default.
//
// All functions in this package are safe for concurrent use; the engines are
// stateless.
package endian

import "encoding/binary"

// EndianEngine combines binary.ByteOrder and binary.AppendByteOrder so one value
// serves both fixed-offset header writes and appending column encoders.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForBigEndian returns the big-endian engine when big is true and the
// little-endian engine otherwise.
func ForBigEndian(big bool) EndianEngine {
	if big {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}
