package nbt

import (
	"bytes"
	"io"
	"testing"

	"github.com/arloliu/mcworld/errs"
	"github.com/arloliu/mcworld/format"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nestedListFixture builds an unnamed root list nested the given number of
// list levels deep, with a single byte tag at the bottom.
func nestedListFixture(levels int) []byte {
	data := []byte{byte(format.TagList)}
	for i := 0; i < levels-1; i++ {
		data = append(data, byte(format.TagList), 0, 0, 0, 1)
	}
	data = append(data, byte(format.TagByte), 0, 0, 0, 1, 42)

	return data
}

func TestDecodeRoot(t *testing.T) {
	t.Run("ByteScalar", func(t *testing.T) {
		data := []byte{1, 0, 5, 'h', 'e', 'l', 'l', 'o', 69}

		name, tag, err := DecodeRoot(bytes.NewReader(data))
		require.NoError(t, err)
		require.Equal(t, "hello", name)
		require.Equal(t, format.TagByte, tag.Type())

		v, err := tag.AsInt8()
		require.NoError(t, err)
		require.Equal(t, int8(69), v)
	})

	t.Run("EmptyName", func(t *testing.T) {
		data := []byte{1, 0, 0, 7}

		name, tag, err := DecodeRoot(bytes.NewReader(data))
		require.NoError(t, err)
		require.Empty(t, name)

		v, err := tag.AsInt8()
		require.NoError(t, err)
		require.Equal(t, int8(7), v)
	})

	t.Run("EndRoot", func(t *testing.T) {
		data := []byte{0, 0, 0}

		name, tag, err := DecodeRoot(bytes.NewReader(data))
		require.NoError(t, err)
		require.Empty(t, name)
		require.Equal(t, format.TagEnd, tag.Type())
	})
}

func TestDecodeRootByteArray(t *testing.T) {
	data := []byte{7, 0, 5, 'h', 'e', 'l', 'l', 'o', 0, 0, 0, 3, 69, 250, 123}

	name, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "hello", name)
	require.Equal(t, 3, tag.Len())

	payload, err := tag.AsByteArray()
	require.NoError(t, err)
	require.Equal(t, []byte{69, 250, 123}, payload)
}

func TestDecodeRootString(t *testing.T) {
	data := []byte{8, 0, 5, 'h', 'e', 'l', 'l', 'o', 0, 3, 'c', 'a', 't'}

	name, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "hello", name)

	s, err := tag.AsString()
	require.NoError(t, err)
	require.Equal(t, "cat", s)
}

func TestDecodeStringEmbeddedNul(t *testing.T) {
	// NUL bytes are ordinary string content and pass through unfiltered.
	tag, err := DecodeValue(bytes.NewReader([]byte{8, 0, 3, 'a', 0x00, 'b'}))
	require.NoError(t, err)

	s, err := tag.AsString()
	require.NoError(t, err)
	require.Equal(t, "a\x00b", s)
}

func TestDecodeRootList(t *testing.T) {
	data := []byte{9, 0, 2, 'h', 'i', 1, 0, 0, 0, 3, 1, 2, 3}

	name, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "hi", name)
	require.Equal(t, format.TagList, tag.Type())
	require.Equal(t, format.TagByte, tag.ElementType())
	require.Equal(t, 3, tag.Len())

	for i, want := range []int8{1, 2, 3} {
		v, err := tag.Index(i).AsInt8()
		require.NoError(t, err)
		require.Equal(t, want, v)
	}

	t.Run("IndexPastEnd", func(t *testing.T) {
		_, err := tag.Index(3).AsInt8()
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
		require.ErrorContains(t, err, "index 3")
	})

	t.Run("NegativeIndex", func(t *testing.T) {
		_, err := tag.Index(-1).AsInt8()
		require.ErrorIs(t, err, errs.ErrIndexOutOfRange)
	})
}

func TestDecodeRootCompound(t *testing.T) {
	data := []byte{
		10, 0, 5, 'L', 'e', 'v', 'e', 'l',
		4, 0, 10, 'L', 'a', 's', 't', 'U', 'p', 'd', 'a', 't', 'e',
		0, 0, 0, 0, 0, 0x02, 0x19, 0x69,
		3, 0, 4, 'z', 'P', 'o', 's',
		0, 0, 0, 0,
		0,
	}

	r := bytes.NewReader(data)
	name, tag, err := DecodeRoot(r)
	require.NoError(t, err)
	require.Equal(t, "Level", name)
	require.Equal(t, format.TagCompound, tag.Type())
	require.Equal(t, 2, tag.Len())

	lastUpdate, err := tag.Key("LastUpdate").AsInt64()
	require.NoError(t, err)
	require.Equal(t, int64(137577), lastUpdate)

	zPos, err := tag.Key("zPos").AsInt32()
	require.NoError(t, err)
	require.Equal(t, int32(0), zPos)

	_, err = tag.Key("missing").AsInt32()
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
	require.ErrorContains(t, err, `"missing"`)

	// The closing TAG_End marker is consumed with the compound.
	require.Zero(t, r.Len())
}

func TestDecodeRootCompoundDuplicateNames(t *testing.T) {
	data := []byte{
		10, 0, 0,
		1, 0, 1, 'a', 1,
		1, 0, 1, 'a', 2,
		0,
	}

	_, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 1, tag.Len())

	v, err := tag.Key("a").AsInt8()
	require.NoError(t, err)
	require.Equal(t, int8(2), v, "the later entry should replace the earlier one")
}

func TestDecodeRootNestedCompound(t *testing.T) {
	data := []byte{
		10, 0, 4, 'r', 'o', 'o', 't',
		10, 0, 4, 'D', 'a', 't', 'a',
		10, 0, 6, 'P', 'l', 'a', 'y', 'e', 'r',
		2, 0, 6, 'H', 'e', 'a', 'l', 't', 'h', 0, 20,
		0,
		0,
		0,
	}

	name, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, "root", name)

	health, err := tag.Key("Data").Key("Player").Key("Health").AsInt16()
	require.NoError(t, err)
	require.Equal(t, int16(20), health)

	_, err = tag.Key("Data").Key("nope").Key("Health").AsInt16()
	require.ErrorIs(t, err, errs.ErrKeyNotFound)
	require.ErrorContains(t, err, `"nope"`)
}

func TestDecodeRootIntArray(t *testing.T) {
	data := []byte{
		11, 0, 3, 'i', 'n', 't',
		0, 0, 0, 2,
		0, 0, 0, 1,
		0xFF, 0xFF, 0xFF, 0xFF,
	}

	_, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.TagIntArray, tag.Type())

	values, err := tag.AsIntArray()
	require.NoError(t, err)
	require.Equal(t, []int32{1, -1}, values)
}

func TestDecodeRootLongArray(t *testing.T) {
	data := []byte{
		12, 0, 4, 'l', 'o', 'n', 'g',
		0, 0, 0, 1,
		0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF,
	}

	_, tag, err := DecodeRoot(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.TagLongArray, tag.Type())

	values, err := tag.AsLongArray()
	require.NoError(t, err)
	require.Equal(t, []int64{-1}, values)
}

func TestDecodeValueScalars(t *testing.T) {
	t.Run("Byte", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{1, 0x87}))
		require.NoError(t, err)

		v, err := tag.AsInt8()
		require.NoError(t, err)
		require.Equal(t, int8(-121), v)
	})

	t.Run("Short", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{2, 0xFF, 0x85}))
		require.NoError(t, err)

		v, err := tag.AsInt16()
		require.NoError(t, err)
		require.Equal(t, int16(-123), v)
	})

	t.Run("Int", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{3, 0x00, 0x02, 0x19, 0x69}))
		require.NoError(t, err)

		v, err := tag.AsInt32()
		require.NoError(t, err)
		require.Equal(t, int32(137577), v)
	})

	t.Run("Long", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{4, 0, 0, 0, 0, 0, 0x02, 0x19, 0x69}))
		require.NoError(t, err)

		v, err := tag.AsInt64()
		require.NoError(t, err)
		require.Equal(t, int64(137577), v)
	})

	t.Run("Float", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{5, 0x40, 0x60, 0x00, 0x00}))
		require.NoError(t, err)

		v, err := tag.AsFloat32()
		require.NoError(t, err)
		require.Equal(t, float32(3.5), v)
	})

	t.Run("Double", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{6, 0x40, 0x0C, 0, 0, 0, 0, 0, 0}))
		require.NoError(t, err)

		v, err := tag.AsFloat64()
		require.NoError(t, err)
		require.Equal(t, 3.5, v)
	})
}

func TestDecodeValueEmptyList(t *testing.T) {
	r := bytes.NewReader([]byte{9, 1, 0, 0, 0, 0})

	tag, err := DecodeValue(r)
	require.NoError(t, err)
	require.Equal(t, format.TagList, tag.Type())
	require.Equal(t, format.TagByte, tag.ElementType(), "the element type is recorded even for an empty list")
	require.Zero(t, tag.Len())
	require.Zero(t, r.Len(), "the element type byte must be consumed")
}

func TestDecodeValueEmptyListUnknownElementType(t *testing.T) {
	// The producer picks the element type byte of an empty list freely; the
	// decoder records it as written, even for an id it could never decode
	// elements of.
	r := bytes.NewReader([]byte{9, 99, 0, 0, 0, 0})

	tag, err := DecodeValue(r)
	require.NoError(t, err)
	require.Equal(t, format.TagList, tag.Type())
	require.Equal(t, format.TagType(99), tag.ElementType())
	require.Zero(t, tag.Len())
	require.Zero(t, r.Len())
}

func TestDecodeValueListOfCompounds(t *testing.T) {
	data := []byte{
		9, 10, 0, 0, 0, 2,
		1, 0, 1, 'x', 1, 0,
		1, 0, 1, 'x', 2, 0,
	}

	tag, err := DecodeValue(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.TagCompound, tag.ElementType())

	v, err := tag.Index(1).Key("x").AsInt8()
	require.NoError(t, err)
	require.Equal(t, int8(2), v)
}

func TestDecodeTypedValue(t *testing.T) {
	t.Run("Int", func(t *testing.T) {
		decoder, err := NewDecoder(bytes.NewReader([]byte{0x00, 0x02, 0x19, 0x69}))
		require.NoError(t, err)

		tag, err := decoder.DecodeTypedValue(format.TagInt)
		require.NoError(t, err)

		v, err := tag.AsInt32()
		require.NoError(t, err)
		require.Equal(t, int32(137577), v)
	})

	t.Run("UnknownType", func(t *testing.T) {
		r := bytes.NewReader([]byte{0x00, 0x02, 0x19, 0x69})
		decoder, err := NewDecoder(r)
		require.NoError(t, err)

		_, err = decoder.DecodeTypedValue(format.TagType(13))
		require.ErrorIs(t, err, errs.ErrUnknownTagType)
		require.Equal(t, 4, r.Len(), "nothing should be consumed for a rejected type")
	})
}

func TestDecodeUnknownTagType(t *testing.T) {
	t.Run("RootId13", func(t *testing.T) {
		_, _, err := DecodeRoot(bytes.NewReader([]byte{13, 0, 0}))
		require.ErrorIs(t, err, errs.ErrUnknownTagType)
		require.ErrorContains(t, err, "0x0d")
	})

	t.Run("RootId255", func(t *testing.T) {
		_, _, err := DecodeRoot(bytes.NewReader([]byte{0xFF, 0, 0}))
		require.ErrorIs(t, err, errs.ErrUnknownTagType)
		require.ErrorContains(t, err, "0xff")
	})

	t.Run("ListElementDispatch", func(t *testing.T) {
		_, err := DecodeValue(bytes.NewReader([]byte{9, 13, 0, 0, 0, 1}))
		require.ErrorIs(t, err, errs.ErrUnknownTagType)
		require.ErrorContains(t, err, "0x0d")
	})

	t.Run("CompoundEntryType", func(t *testing.T) {
		_, err := DecodeValue(bytes.NewReader([]byte{10, 13, 0, 1, 'a', 0}))
		require.ErrorIs(t, err, errs.ErrUnknownTagType)
	})
}

func TestDecodeInvalidUTF8(t *testing.T) {
	t.Run("RootName", func(t *testing.T) {
		_, _, err := DecodeRoot(bytes.NewReader([]byte{1, 0, 2, 0xC3, 0x28, 7}))
		require.ErrorIs(t, err, errs.ErrInvalidUTF8)
	})

	t.Run("StringPayload", func(t *testing.T) {
		_, err := DecodeValue(bytes.NewReader([]byte{8, 0, 2, 0xFF, 0xFE}))
		require.ErrorIs(t, err, errs.ErrInvalidUTF8)
	})

	t.Run("LoneContinuationByte", func(t *testing.T) {
		_, err := DecodeValue(bytes.NewReader([]byte{8, 0, 1, 0x80}))
		require.ErrorIs(t, err, errs.ErrInvalidUTF8)
	})

	t.Run("ValidMultiByte", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader([]byte{8, 0, 2, 0xC3, 0xA9}))
		require.NoError(t, err)

		s, err := tag.AsString()
		require.NoError(t, err)
		require.Equal(t, "é", s)
	})
}

func TestDecodeNegativeByteArrayLength(t *testing.T) {
	_, err := DecodeValue(bytes.NewReader([]byte{7, 0x80, 0, 0, 0}))
	require.ErrorIs(t, err, errs.ErrInvalidLength)
	require.ErrorContains(t, err, "-2147483648")
}

func TestDecodeTruncated(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "NameLengthCut", data: []byte{1, 0}},
		{name: "NameCut", data: []byte{1, 0, 5, 'h', 'e'}},
		{name: "MissingPayload", data: []byte{1, 0, 0}},
		{name: "ListCountCut", data: []byte{9, 0, 0, 1, 0, 0}},
		{name: "ListElementsCut", data: []byte{9, 0, 0, 1, 0, 0, 0, 3, 1}},
		{name: "IntArrayValuesCut", data: []byte{11, 0, 0, 0, 0, 0, 2, 0, 0, 0, 1}},
		{name: "ByteArrayPayloadCut", data: []byte{7, 0, 0, 0, 0, 0, 5, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, tag, err := DecodeRoot(bytes.NewReader(tt.data))
			require.Error(t, err)
			assert.Empty(t, name)
			assert.Equal(t, format.TagEnd, tag.Type(), "no partial tree should be returned")
		})
	}

	t.Run("LongPayloadCut", func(t *testing.T) {
		_, _, err := DecodeRoot(bytes.NewReader([]byte{4, 0, 0, 0, 0, 0, 1}))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})

	t.Run("CompoundMissingEndMarker", func(t *testing.T) {
		_, _, err := DecodeRoot(bytes.NewReader([]byte{10, 0, 0, 1, 0, 1, 'a', 5}))
		require.ErrorIs(t, err, io.EOF)
	})
}

func TestDecodeMaxDepth(t *testing.T) {
	t.Run("WithinLimit", func(t *testing.T) {
		decoder, err := NewDecoder(bytes.NewReader(nestedListFixture(4)), WithMaxDepth(4))
		require.NoError(t, err)

		_, err = decoder.DecodeValue()
		require.NoError(t, err)
	})

	t.Run("ExceedsLimit", func(t *testing.T) {
		decoder, err := NewDecoder(bytes.NewReader(nestedListFixture(5)), WithMaxDepth(4))
		require.NoError(t, err)

		_, err = decoder.DecodeValue()
		require.ErrorIs(t, err, errs.ErrMaxDepthExceeded)
	})

	t.Run("DefaultHandlesDeepTrees", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader(nestedListFixture(64)))
		require.NoError(t, err)
		require.Equal(t, format.TagList, tag.Type())
	})
}

func TestNewDecoderInvalidMaxDepth(t *testing.T) {
	decoder, err := NewDecoder(bytes.NewReader(nil), WithMaxDepth(0))
	require.Error(t, err)
	require.Nil(t, decoder)

	decoder, err = NewDecoder(bytes.NewReader(nil), WithMaxDepth(-3))
	require.Error(t, err)
	require.Nil(t, decoder)
}

func TestDecodeLargeByteArray(t *testing.T) {
	n := 200_000

	payload := make([]byte, n)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	data := []byte{7, byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
	data = append(data, payload...)

	t.Run("Complete", func(t *testing.T) {
		tag, err := DecodeValue(bytes.NewReader(data))
		require.NoError(t, err)

		got, err := tag.AsByteArray()
		require.NoError(t, err)
		require.Len(t, got, n)
		require.Equal(t, payload, got)
	})

	t.Run("Truncated", func(t *testing.T) {
		_, err := DecodeValue(bytes.NewReader(data[:len(data)/2]))
		require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	})
}

func TestDecodeSequentialValues(t *testing.T) {
	data := []byte{
		1, 5,
		8, 0, 2, 'h', 'i',
	}

	r := bytes.NewReader(data)
	decoder, err := NewDecoder(r)
	require.NoError(t, err)

	first, err := decoder.DecodeValue()
	require.NoError(t, err)
	v, err := first.AsInt8()
	require.NoError(t, err)
	require.Equal(t, int8(5), v)

	second, err := decoder.DecodeValue()
	require.NoError(t, err)
	s, err := second.AsString()
	require.NoError(t, err)
	require.Equal(t, "hi", s)

	require.Zero(t, r.Len())
}
