package nbt

import (
	"math"

	"github.com/arloliu/mcworld/format"
)

// Tag is a single node of a decoded tree: either a scalar payload or a
// container of further tags.
//
// A Tag is immutable once the decoder returns it. The struct is small and
// passed by value; container payloads share underlying storage, so copies
// are cheap regardless of tree size. Callers must not modify slices
// returned by the payload accessors.
//
// The zero value is a TAG_End tag.
type Tag struct {
	typ  format.TagType
	elem format.TagType // list element type, TagEnd otherwise

	// num holds every fixed-width scalar payload. Signed integers are
	// sign-extended into the word, floats are stored as their IEEE 754 bits.
	num uint64

	str      string
	bytes    []byte
	list     []Tag
	ints     []int32
	longs    []int64
	compound map[string]Tag
}

// Type returns the tag type of this node.
func (t Tag) Type() format.TagType {
	return t.typ
}

// ElementType returns the declared element type of a TAG_List.
//
// The element type is part of the wire format and is recorded even for
// empty lists. For any other tag type it returns format.TagEnd.
func (t Tag) ElementType() format.TagType {
	return t.elem
}

// Len returns the number of entries in a container tag: list elements,
// compound entries, or array values. Scalar tags report 0.
func (t Tag) Len() int {
	switch t.typ {
	case format.TagByteArray:
		return len(t.bytes)
	case format.TagList:
		return len(t.list)
	case format.TagCompound:
		return len(t.compound)
	case format.TagIntArray:
		return len(t.ints)
	case format.TagLongArray:
		return len(t.longs)
	default:
		return 0
	}
}

// Resolve returns the tag itself. It implements Resolver, letting a bare
// Tag start an accessor chain.
func (t Tag) Resolve() (Tag, error) {
	return t, nil
}

func byteTag(v int8) Tag {
	return Tag{typ: format.TagByte, num: uint64(int64(v))}
}

func shortTag(v int16) Tag {
	return Tag{typ: format.TagShort, num: uint64(int64(v))}
}

func intTag(v int32) Tag {
	return Tag{typ: format.TagInt, num: uint64(int64(v))}
}

func longTag(v int64) Tag {
	return Tag{typ: format.TagLong, num: uint64(v)}
}

func floatTag(v float32) Tag {
	return Tag{typ: format.TagFloat, num: uint64(math.Float32bits(v))}
}

func doubleTag(v float64) Tag {
	return Tag{typ: format.TagDouble, num: math.Float64bits(v)}
}

func byteArrayTag(v []byte) Tag {
	return Tag{typ: format.TagByteArray, bytes: v}
}

func stringTag(v string) Tag {
	return Tag{typ: format.TagString, str: v}
}

func listTag(elem format.TagType, v []Tag) Tag {
	return Tag{typ: format.TagList, elem: elem, list: v}
}

func compoundTag(v map[string]Tag) Tag {
	return Tag{typ: format.TagCompound, compound: v}
}

func intArrayTag(v []int32) Tag {
	return Tag{typ: format.TagIntArray, ints: v}
}

func longArrayTag(v []int64) Tag {
	return Tag{typ: format.TagLongArray, longs: v}
}
