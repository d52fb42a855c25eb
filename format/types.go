package format

type (
	TagType         uint8
	CompressionType uint8
)

const (
	TagEnd       TagType = 0  // TagEnd marks the end of a compound; carries no payload.
	TagByte      TagType = 1  // TagByte is a signed 8-bit integer.
	TagShort     TagType = 2  // TagShort is a signed 16-bit integer.
	TagInt       TagType = 3  // TagInt is a signed 32-bit integer.
	TagLong      TagType = 4  // TagLong is a signed 64-bit integer.
	TagFloat     TagType = 5  // TagFloat is a 32-bit IEEE 754 float.
	TagDouble    TagType = 6  // TagDouble is a 64-bit IEEE 754 float.
	TagByteArray TagType = 7  // TagByteArray is a length-prefixed raw byte sequence.
	TagString    TagType = 8  // TagString is a length-prefixed UTF-8 string.
	TagList      TagType = 9  // TagList is a homogeneous ordered sequence of tags.
	TagCompound  TagType = 10 // TagCompound is a name-keyed mapping of tags.
	TagIntArray  TagType = 11 // TagIntArray is a sequence of 32-bit integers.
	TagLongArray TagType = 12 // TagLongArray is a sequence of 64-bit integers.

	CompressionGzip CompressionType = 1 // CompressionGzip represents RFC 1952 gzip framing.
	CompressionZlib CompressionType = 2 // CompressionZlib represents RFC 1950 zlib framing.
	CompressionNone CompressionType = 3 // CompressionNone represents an uncompressed payload.
)

// IsValid reports whether t is one of the thirteen recognized tag type ids.
func (t TagType) IsValid() bool {
	return t <= TagLongArray
}

// String returns the canonical format label for the tag type.
// These labels appear in diagnostics and pretty-printed output, never on the wire.
func (t TagType) String() string {
	switch t {
	case TagEnd:
		return "TAG_End"
	case TagByte:
		return "TAG_Byte"
	case TagShort:
		return "TAG_Short"
	case TagInt:
		return "TAG_Int"
	case TagLong:
		return "TAG_Long"
	case TagFloat:
		return "TAG_Float"
	case TagDouble:
		return "TAG_Double"
	case TagByteArray:
		return "TAG_ByteArray"
	case TagString:
		return "TAG_String"
	case TagList:
		return "TAG_List"
	case TagCompound:
		return "TAG_Compound"
	case TagIntArray:
		return "TAG_IntArray"
	case TagLongArray:
		return "TAG_LongArray"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionGzip:
		return "Gzip"
	case CompressionZlib:
		return "Zlib"
	case CompressionNone:
		return "None"
	default:
		return "Unknown"
	}
}
