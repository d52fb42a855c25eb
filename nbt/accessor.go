package nbt

import (
	"fmt"
	"math"

	"github.com/arloliu/mcworld/errs"
	"github.com/arloliu/mcworld/format"
)

// Resolver is the single capability the accessor layer is built on:
// produce an underlying Tag, or report why one is not available.
//
// Tag implements it trivially and Result implements it by surfacing a
// deferred error, so every accessor works identically on a freshly decoded
// tag and on the outcome of a previous accessor. Navigation chains like
//
//	tag.Key("Level").Key("zPos").AsInt32()
//
// short-circuit at the first failing step: once a step fails, later steps
// pass the original error through untouched.
type Resolver interface {
	// Resolve returns the underlying tag, or the error that prevented one
	// from being produced.
	Resolve() (Tag, error)
}

// Result is the outcome of a navigation step: either a tag or the error
// that ended the chain. It offers the same accessors as Tag, so steps
// compose without intermediate error checks.
//
// Result values are created by Key and Index; the zero value is a
// successful result holding a TAG_End tag.
type Result struct {
	tag Tag
	err error
}

// Resolve returns the tag held by the result, or the deferred error from
// the step that produced it. It implements Resolver.
func (r Result) Resolve() (Tag, error) {
	return r.tag, r.err
}

// resolveAs resolves v and requires the outcome to be of type want.
// The mismatch error names only the requested type, never the actual one.
func resolveAs(v Resolver, want format.TagType) (Tag, error) {
	t, err := v.Resolve()
	if err != nil {
		return Tag{}, err
	}

	if t.typ != want {
		return Tag{}, fmt.Errorf("%w: not %s", errs.ErrTypeMismatch, want)
	}

	return t, nil
}

func asInt8(v Resolver) (int8, error) {
	t, err := resolveAs(v, format.TagByte)
	if err != nil {
		return 0, err
	}

	return int8(t.num), nil
}

func asInt16(v Resolver) (int16, error) {
	t, err := resolveAs(v, format.TagShort)
	if err != nil {
		return 0, err
	}

	return int16(t.num), nil
}

func asInt32(v Resolver) (int32, error) {
	t, err := resolveAs(v, format.TagInt)
	if err != nil {
		return 0, err
	}

	return int32(t.num), nil
}

func asInt64(v Resolver) (int64, error) {
	t, err := resolveAs(v, format.TagLong)
	if err != nil {
		return 0, err
	}

	return int64(t.num), nil
}

func asFloat32(v Resolver) (float32, error) {
	t, err := resolveAs(v, format.TagFloat)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(uint32(t.num)), nil
}

func asFloat64(v Resolver) (float64, error) {
	t, err := resolveAs(v, format.TagDouble)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(t.num), nil
}

func asByteArray(v Resolver) ([]byte, error) {
	t, err := resolveAs(v, format.TagByteArray)
	if err != nil {
		return nil, err
	}

	return t.bytes, nil
}

func asString(v Resolver) (string, error) {
	t, err := resolveAs(v, format.TagString)
	if err != nil {
		return "", err
	}

	return t.str, nil
}

func asList(v Resolver) ([]Tag, error) {
	t, err := resolveAs(v, format.TagList)
	if err != nil {
		return nil, err
	}

	return t.list, nil
}

func asCompound(v Resolver) (map[string]Tag, error) {
	t, err := resolveAs(v, format.TagCompound)
	if err != nil {
		return nil, err
	}

	return t.compound, nil
}

func asIntArray(v Resolver) ([]int32, error) {
	t, err := resolveAs(v, format.TagIntArray)
	if err != nil {
		return nil, err
	}

	return t.ints, nil
}

func asLongArray(v Resolver) ([]int64, error) {
	t, err := resolveAs(v, format.TagLongArray)
	if err != nil {
		return nil, err
	}

	return t.longs, nil
}

// keyOf resolves v as a compound and looks up the entry named name.
func keyOf(v Resolver, name string) Result {
	t, err := resolveAs(v, format.TagCompound)
	if err != nil {
		return Result{err: err}
	}

	child, ok := t.compound[name]
	if !ok {
		return Result{err: fmt.Errorf("%w: %q", errs.ErrKeyNotFound, name)}
	}

	return Result{tag: child}
}

// indexOf resolves v as a list and selects the element at position i.
func indexOf(v Resolver, i int) Result {
	t, err := resolveAs(v, format.TagList)
	if err != nil {
		return Result{err: err}
	}

	if i < 0 || i >= len(t.list) {
		return Result{err: fmt.Errorf("%w: index %d, length %d", errs.ErrIndexOutOfRange, i, len(t.list))}
	}

	return Result{tag: t.list[i]}
}

// AsInt8 returns the payload of a TAG_Byte.
func (t Tag) AsInt8() (int8, error) { return asInt8(t) }

// AsInt16 returns the payload of a TAG_Short.
func (t Tag) AsInt16() (int16, error) { return asInt16(t) }

// AsInt32 returns the payload of a TAG_Int.
func (t Tag) AsInt32() (int32, error) { return asInt32(t) }

// AsInt64 returns the payload of a TAG_Long.
func (t Tag) AsInt64() (int64, error) { return asInt64(t) }

// AsFloat32 returns the payload of a TAG_Float.
func (t Tag) AsFloat32() (float32, error) { return asFloat32(t) }

// AsFloat64 returns the payload of a TAG_Double.
func (t Tag) AsFloat64() (float64, error) { return asFloat64(t) }

// AsByteArray returns the payload of a TAG_ByteArray. The returned slice
// shares storage with the tree and must not be modified.
func (t Tag) AsByteArray() ([]byte, error) { return asByteArray(t) }

// AsString returns the payload of a TAG_String.
func (t Tag) AsString() (string, error) { return asString(t) }

// AsList returns the elements of a TAG_List. The returned slice shares
// storage with the tree and must not be modified.
func (t Tag) AsList() ([]Tag, error) { return asList(t) }

// AsCompound returns the entries of a TAG_Compound. The returned map
// shares storage with the tree and must not be modified.
func (t Tag) AsCompound() (map[string]Tag, error) { return asCompound(t) }

// AsIntArray returns the payload of a TAG_IntArray. The returned slice
// shares storage with the tree and must not be modified.
func (t Tag) AsIntArray() ([]int32, error) { return asIntArray(t) }

// AsLongArray returns the payload of a TAG_LongArray. The returned slice
// shares storage with the tree and must not be modified.
func (t Tag) AsLongArray() ([]int64, error) { return asLongArray(t) }

// Key looks up a compound entry by name.
//
// The step fails with errs.ErrTypeMismatch when the tag is not a compound
// and with errs.ErrKeyNotFound, carrying the name, when no entry exists.
func (t Tag) Key(name string) Result { return keyOf(t, name) }

// Index selects a list element by position.
//
// The step fails with errs.ErrTypeMismatch when the tag is not a list and
// with errs.ErrIndexOutOfRange, carrying the index, when the position is
// outside [0, len).
func (t Tag) Index(i int) Result { return indexOf(t, i) }

// AsInt8 returns the payload of a TAG_Byte, or the chain's deferred error.
func (r Result) AsInt8() (int8, error) { return asInt8(r) }

// AsInt16 returns the payload of a TAG_Short, or the chain's deferred error.
func (r Result) AsInt16() (int16, error) { return asInt16(r) }

// AsInt32 returns the payload of a TAG_Int, or the chain's deferred error.
func (r Result) AsInt32() (int32, error) { return asInt32(r) }

// AsInt64 returns the payload of a TAG_Long, or the chain's deferred error.
func (r Result) AsInt64() (int64, error) { return asInt64(r) }

// AsFloat32 returns the payload of a TAG_Float, or the chain's deferred error.
func (r Result) AsFloat32() (float32, error) { return asFloat32(r) }

// AsFloat64 returns the payload of a TAG_Double, or the chain's deferred error.
func (r Result) AsFloat64() (float64, error) { return asFloat64(r) }

// AsByteArray returns the payload of a TAG_ByteArray, or the chain's deferred error.
func (r Result) AsByteArray() ([]byte, error) { return asByteArray(r) }

// AsString returns the payload of a TAG_String, or the chain's deferred error.
func (r Result) AsString() (string, error) { return asString(r) }

// AsList returns the elements of a TAG_List, or the chain's deferred error.
func (r Result) AsList() ([]Tag, error) { return asList(r) }

// AsCompound returns the entries of a TAG_Compound, or the chain's deferred error.
func (r Result) AsCompound() (map[string]Tag, error) { return asCompound(r) }

// AsIntArray returns the payload of a TAG_IntArray, or the chain's deferred error.
func (r Result) AsIntArray() ([]int32, error) { return asIntArray(r) }

// AsLongArray returns the payload of a TAG_LongArray, or the chain's deferred error.
func (r Result) AsLongArray() ([]int64, error) { return asLongArray(r) }

// Key looks up a compound entry by name, continuing the chain.
func (r Result) Key(name string) Result { return keyOf(r, name) }

// Index selects a list element by position, continuing the chain.
func (r Result) Index(i int) Result { return indexOf(r, i) }
