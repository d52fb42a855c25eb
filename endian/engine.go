// Package endian provides the byte order engine used by the decoders.
//
// The tag wire format and the region header store every multi-byte integer
// and float big-endian, so the rest of the library binds GetBigEndianEngine()
// once at construction instead of passing binary.BigEndian around directly.
//
// EndianEngine combines the standard library's ByteOrder and AppendByteOrder
// interfaces, so the same engine value serves both fixed-offset reads
// (engine.Uint32(buf[0:4])) and fixture building (engine.AppendUint32).
package endian

import "encoding/binary"

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary
// into a single interface for byte order operations.
//
// binary.BigEndian and binary.LittleEndian both satisfy it, keeping the
// engine fully compatible with code written against the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetBigEndianEngine returns the big-endian engine.
//
// This is the only byte order the tag and region formats use.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}
