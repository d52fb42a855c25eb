package nbt

import (
	"errors"
	"fmt"
	"io"
	"math"
	"unicode/utf8"

	"github.com/arloliu/mcworld/endian"
	"github.com/arloliu/mcworld/errs"
	"github.com/arloliu/mcworld/format"
	"github.com/arloliu/mcworld/internal/options"
	"github.com/arloliu/mcworld/internal/pool"
)

const (
	// DefaultMaxDepth is the container nesting limit applied when
	// WithMaxDepth is not given. Well-formed world data nests a few dozen
	// levels at most.
	DefaultMaxDepth = 512

	// maxPrealloc caps the capacity reserved from a wire-declared element
	// count. Larger collections grow by append as elements actually arrive,
	// so a corrupt length prefix cannot reserve gigabytes up front.
	maxPrealloc = 64 * 1024
)

// DecoderOption represents a functional option for configuring the Decoder.
// This is a type alias for the generic Option interface specialized for Decoder.
type DecoderOption = options.Option[*Decoder]

// WithMaxDepth sets the container nesting limit. Trees nesting deeper than
// depth fail with errs.ErrMaxDepthExceeded. The depth must be positive.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(d *Decoder) error {
		return d.setMaxDepth(depth)
	})
}

// Decoder reads binary tag trees from an io.Reader.
//
// All multi-byte fields are big-endian. Decoding is atomic: on any failure
// the partially built tree is discarded and only the error is returned.
// After a successful decode the reader is positioned at the first byte past
// the consumed tree, so several trees can be read back to back.
//
// Note: The Decoder is NOT thread-safe. Each decoder instance should be used
// by a single goroutine at a time.
type Decoder struct {
	r        io.Reader
	engine   endian.EndianEngine
	maxDepth int
	scratch  [8]byte
}

// NewDecoder creates a new Decoder reading from r.
//
// Parameters:
//   - r: Source of raw, already decompressed tree bytes
//   - opts: Optional configuration, e.g. WithMaxDepth
//
// Returns:
//   - *Decoder: New decoder instance ready for decoding
//   - error: Configuration error from an invalid option value
func NewDecoder(r io.Reader, opts ...DecoderOption) (*Decoder, error) {
	decoder := &Decoder{
		r:        r,
		engine:   endian.GetBigEndianEngine(),
		maxDepth: DefaultMaxDepth,
	}

	if err := options.Apply(decoder, opts...); err != nil {
		return nil, err
	}

	return decoder, nil
}

func (d *Decoder) setMaxDepth(depth int) error {
	if depth <= 0 {
		return fmt.Errorf("invalid max depth %d, it must be a positive integer", depth)
	}

	d.maxDepth = depth

	return nil
}

// DecodeRoot decodes a complete named tree: one tag type byte, the root
// name, then the root payload.
//
// The root is always named on the wire, including a TAG_End root, whose
// name is read even though it carries no payload.
//
// Returns:
//   - string: The root name
//   - Tag: The decoded root tag
//   - error: I/O underrun, errs.ErrUnknownTagType, errs.ErrInvalidUTF8,
//     errs.ErrInvalidLength or errs.ErrMaxDepthExceeded
func (d *Decoder) DecodeRoot() (string, Tag, error) {
	typ, err := d.readTagType()
	if err != nil {
		return "", Tag{}, err
	}

	name, err := d.readString()
	if err != nil {
		return "", Tag{}, err
	}

	tag, err := d.decodeTagged(typ, 0)
	if err != nil {
		return "", Tag{}, err
	}

	return name, tag, nil
}

// DecodeValue decodes a single unnamed value: one tag type byte followed by
// the payload of that type.
func (d *Decoder) DecodeValue() (Tag, error) {
	typ, err := d.readTagType()
	if err != nil {
		return Tag{}, err
	}

	return d.decodeTagged(typ, 0)
}

// DecodeTypedValue decodes the payload of a value whose tag type is already
// known, so no type byte is consumed from the stream. List elements are
// stored this way on the wire.
func (d *Decoder) DecodeTypedValue(typ format.TagType) (Tag, error) {
	if !typ.IsValid() {
		return Tag{}, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTagType, uint8(typ))
	}

	return d.decodeTagged(typ, 0)
}

// DecodeRoot decodes a complete named tree from r with default settings.
func DecodeRoot(r io.Reader) (string, Tag, error) {
	decoder, err := NewDecoder(r)
	if err != nil {
		return "", Tag{}, err
	}

	return decoder.DecodeRoot()
}

// DecodeValue decodes a single unnamed value from r with default settings.
func DecodeValue(r io.Reader) (Tag, error) {
	decoder, err := NewDecoder(r)
	if err != nil {
		return Tag{}, err
	}

	return decoder.DecodeValue()
}

func (d *Decoder) decodeTagged(typ format.TagType, depth int) (Tag, error) {
	if depth > d.maxDepth {
		return Tag{}, fmt.Errorf("%w: %d levels", errs.ErrMaxDepthExceeded, d.maxDepth)
	}

	switch typ {
	case format.TagEnd:
		return Tag{}, nil
	case format.TagByte:
		b, err := d.readByte("byte payload")
		if err != nil {
			return Tag{}, err
		}

		return byteTag(int8(b)), nil
	case format.TagShort:
		v, err := d.readUint16("short payload")
		if err != nil {
			return Tag{}, err
		}

		return shortTag(int16(v)), nil
	case format.TagInt:
		v, err := d.readUint32("int payload")
		if err != nil {
			return Tag{}, err
		}

		return intTag(int32(v)), nil
	case format.TagLong:
		v, err := d.readUint64("long payload")
		if err != nil {
			return Tag{}, err
		}

		return longTag(int64(v)), nil
	case format.TagFloat:
		v, err := d.readUint32("float payload")
		if err != nil {
			return Tag{}, err
		}

		return floatTag(math.Float32frombits(v)), nil
	case format.TagDouble:
		v, err := d.readUint64("double payload")
		if err != nil {
			return Tag{}, err
		}

		return doubleTag(math.Float64frombits(v)), nil
	case format.TagByteArray:
		return d.decodeByteArray()
	case format.TagString:
		s, err := d.readString()
		if err != nil {
			return Tag{}, err
		}

		return stringTag(s), nil
	case format.TagList:
		return d.decodeList(depth)
	case format.TagCompound:
		return d.decodeCompound(depth)
	case format.TagIntArray:
		return d.decodeIntArray()
	case format.TagLongArray:
		return d.decodeLongArray()
	default:
		return Tag{}, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTagType, uint8(typ))
	}
}

func (d *Decoder) decodeByteArray() (Tag, error) {
	word, err := d.readUint32("byte array length")
	if err != nil {
		return Tag{}, err
	}

	// The byte array length is a signed 32-bit word on the wire.
	length := int32(word)
	if length < 0 {
		return Tag{}, fmt.Errorf("%w: byte array length %d", errs.ErrInvalidLength, length)
	}

	buf, err := d.readPayload(int(length), "byte array payload")
	if err != nil {
		return Tag{}, err
	}

	return byteArrayTag(buf), nil
}

func (d *Decoder) decodeList(depth int) (Tag, error) {
	elemByte, err := d.readByte("list element type")
	if err != nil {
		return Tag{}, err
	}

	// The element type byte is consumed and recorded even when the list is
	// empty; the decoder does not constrain it. An id outside the known
	// range fails element dispatch once a count is present.
	elem := format.TagType(elemByte)

	count, err := d.readUint32("list length")
	if err != nil {
		return Tag{}, err
	}

	elems := make([]Tag, 0, preallocHint(count))
	for i := uint32(0); i < count; i++ {
		child, err := d.decodeTagged(elem, depth+1)
		if err != nil {
			return Tag{}, err
		}

		elems = append(elems, child)
	}

	return listTag(elem, elems), nil
}

func (d *Decoder) decodeCompound(depth int) (Tag, error) {
	entries := make(map[string]Tag)

	for {
		typ, err := d.readTagType()
		if err != nil {
			return Tag{}, err
		}

		// TAG_End closes the compound. The marker is consumed but never
		// stored as an entry.
		if typ == format.TagEnd {
			break
		}

		name, err := d.readString()
		if err != nil {
			return Tag{}, err
		}

		child, err := d.decodeTagged(typ, depth+1)
		if err != nil {
			return Tag{}, err
		}

		// A repeated name replaces the earlier entry.
		entries[name] = child
	}

	return compoundTag(entries), nil
}

func (d *Decoder) decodeIntArray() (Tag, error) {
	count, err := d.readUint32("int array length")
	if err != nil {
		return Tag{}, err
	}

	values := make([]int32, 0, preallocHint(count))
	for i := uint32(0); i < count; i++ {
		v, err := d.readUint32("int array payload")
		if err != nil {
			return Tag{}, err
		}

		values = append(values, int32(v))
	}

	return intArrayTag(values), nil
}

func (d *Decoder) decodeLongArray() (Tag, error) {
	count, err := d.readUint32("long array length")
	if err != nil {
		return Tag{}, err
	}

	values := make([]int64, 0, preallocHint(count))
	for i := uint32(0); i < count; i++ {
		v, err := d.readUint64("long array payload")
		if err != nil {
			return Tag{}, err
		}

		values = append(values, int64(v))
	}

	return longArrayTag(values), nil
}

func (d *Decoder) readTagType() (format.TagType, error) {
	b, err := d.readByte("tag type")
	if err != nil {
		return 0, err
	}

	typ := format.TagType(b)
	if !typ.IsValid() {
		return 0, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTagType, b)
	}

	return typ, nil
}

// readString reads a length-prefixed string: a big-endian uint16 byte count
// followed by that many bytes, which must form valid UTF-8.
func (d *Decoder) readString() (string, error) {
	n, err := d.readUint16("string length")
	if err != nil {
		return "", err
	}

	if n == 0 {
		return "", nil
	}

	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return "", fmt.Errorf("failed to read string payload: %w", err)
	}

	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%w: %d byte string", errs.ErrInvalidUTF8, n)
	}

	return string(buf), nil
}

// readPayload reads exactly n raw bytes. Small payloads are read in one
// shot; large ones accumulate through a pooled buffer so memory grows as
// bytes actually arrive, not as the length prefix claims.
func (d *Decoder) readPayload(n int, what string) ([]byte, error) {
	if n <= maxPrealloc {
		buf := make([]byte, n)
		if _, err := io.ReadFull(d.r, buf); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", what, err)
		}

		return buf, nil
	}

	buf := pool.GetTreeBuffer()
	defer pool.PutTreeBuffer(buf)

	if _, err := io.CopyN(buf, d.r, int64(n)); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return nil, fmt.Errorf("failed to read %s: %w", what, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}

func (d *Decoder) readByte(what string) (byte, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:1]); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}

	return d.scratch[0], nil
}

func (d *Decoder) readUint16(what string) (uint16, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:2]); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}

	return d.engine.Uint16(d.scratch[:2]), nil
}

func (d *Decoder) readUint32(what string) (uint32, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:4]); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}

	return d.engine.Uint32(d.scratch[:4]), nil
}

func (d *Decoder) readUint64(what string) (uint64, error) {
	if _, err := io.ReadFull(d.r, d.scratch[:8]); err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", what, err)
	}

	return d.engine.Uint64(d.scratch[:8]), nil
}

func preallocHint(count uint32) int {
	if count > maxPrealloc {
		return maxPrealloc
	}

	return int(count)
}
