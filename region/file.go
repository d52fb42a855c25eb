package region

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/arloliu/mcworld/compress"
	"github.com/arloliu/mcworld/endian"
	"github.com/arloliu/mcworld/errs"
	"github.com/arloliu/mcworld/format"
	"github.com/arloliu/mcworld/internal/pool"
	"github.com/arloliu/mcworld/nbt"
)

const (
	// SectorSize is the allocation unit of a region source. Chunk frames
	// start on sector boundaries and the header occupies the first two
	// sectors.
	SectorSize = 4096

	// HeaderSize is the combined size of the offset table and the
	// timestamp table.
	HeaderSize = 2 * SectorSize

	// Width is the number of chunk slots along each axis of a region.
	Width = 32

	// slotCount is the total number of chunk slots in a region.
	slotCount = Width * Width
)

// slotEntry is one parsed header entry. A zero offset marks an absent
// chunk; a zero timestamp marks an unrecorded modification time.
type slotEntry struct {
	offset    int64
	sectors   uint8
	timestamp uint32
}

// Slot describes one chunk position of a region: whether a chunk is
// stored there, where its frame lives and when it was last modified.
//
// A Slot is a snapshot of header state taken when the File was created;
// it stays valid after the File is gone.
type Slot struct {
	x, z  int
	entry slotEntry
}

// X returns the chunk x coordinate of the slot within its region.
func (s Slot) X() int {
	return s.x
}

// Z returns the chunk z coordinate of the slot within its region.
func (s Slot) Z() int {
	return s.z
}

// Exists reports whether a chunk is stored at this slot.
func (s Slot) Exists() bool {
	return s.entry.offset > 0
}

// Offset returns the byte offset of the slot's chunk frame from the start
// of the region source, or 0 when no chunk is stored.
func (s Slot) Offset() int64 {
	return s.entry.offset
}

// Sectors returns the number of sectors the header claims the chunk
// occupies. The value is a hint for allocation accounting; the frame's
// own length prefix is authoritative.
func (s Slot) Sectors() int {
	return int(s.entry.sectors)
}

// Timestamp returns the last-modified unix timestamp of the chunk. The
// boolean is false when the header records no timestamp.
func (s Slot) Timestamp() (uint32, bool) {
	if s.entry.timestamp == 0 {
		return 0, false
	}

	return s.entry.timestamp, true
}

// ModTime returns the last-modified time of the chunk as a UTC time.Time.
// The boolean is false when the header records no timestamp.
func (s Slot) ModTime() (time.Time, bool) {
	ts, ok := s.Timestamp()
	if !ok {
		return time.Time{}, false
	}

	return time.Unix(int64(ts), 0).UTC(), true
}

// File provides chunk access over a region source, usually an .mca file.
//
// A region stores up to 1024 chunks covering a 32 by 32 chunk area. The
// source opens with an 8192-byte header: 1024 big-endian offset words
// (upper three bytes give the frame position in sectors, low byte the
// sector count) followed by 1024 big-endian unix timestamps.
//
// Chunks are never cached; every LoadChunk seeks and reads the source
// again.
//
// Note: The File is NOT thread-safe. The underlying cursor is shared, so
// each instance should be used by a single goroutine at a time.
type File struct {
	r       io.ReadSeeker
	engine  endian.EndianEngine
	codec   compress.Decompressor
	size    int64
	slots   [slotCount]slotEntry
	scratch [5]byte
}

// NewFile parses the header of a region source and prepares chunk access.
//
// The whole header is read up front; chunk frames are read lazily by
// LoadChunk. The source size is measured once here to validate frame
// bounds later, which leaves the cursor at the end of the source.
//
// Parameters:
//   - r: Region source positioned at its start
//
// Returns:
//   - *File: New region handle ready for chunk access
//   - error: errs.ErrInvalidHeaderSize when the source is shorter than a
//     header, or the underlying seek error
func NewFile(r io.ReadSeeker) (*File, error) {
	f := &File{
		r:      r,
		engine: endian.GetBigEndianEngine(),
	}

	codec, err := compress.GetDecompressor(format.CompressionZlib)
	if err != nil {
		return nil, err
	}
	f.codec = codec

	header := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: %s", errs.ErrInvalidHeaderSize, err)
	}

	for i := 0; i < slotCount; i++ {
		word := f.engine.Uint32(header[i*4:])
		f.slots[i] = slotEntry{
			// The upper three bytes of the word count sectors from the
			// start of the source.
			offset:    int64(word>>8) * SectorSize,
			sectors:   uint8(word),
			timestamp: f.engine.Uint32(header[slotCount*4+i*4:]),
		}
	}

	size, err := r.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to measure region size: %w", err)
	}
	f.size = size

	return f, nil
}

// Slot returns the header entry for the chunk position (x, z).
//
// Both coordinates must lie in [0, Width). Out-of-range coordinates fail
// with errs.ErrCoordOutOfRange carrying the offending pair.
func (f *File) Slot(x, z int) (Slot, error) {
	if x < 0 || x >= Width || z < 0 || z >= Width {
		return Slot{}, fmt.Errorf("%w: chunk (%d, %d)", errs.ErrCoordOutOfRange, x, z)
	}

	return Slot{x: x, z: z, entry: f.slots[x+z*Width]}, nil
}

// Exists reports whether a chunk is stored at position (x, z).
func (f *File) Exists(x, z int) (bool, error) {
	slot, err := f.Slot(x, z)
	if err != nil {
		return false, err
	}

	return slot.Exists(), nil
}

// Timestamp returns the last-modified unix timestamp of the chunk at
// position (x, z). The boolean is false when the header records no
// timestamp for the slot.
func (f *File) Timestamp(x, z int) (uint32, bool, error) {
	slot, err := f.Slot(x, z)
	if err != nil {
		return 0, false, err
	}

	ts, ok := slot.Timestamp()

	return ts, ok, nil
}

// LoadChunk reads, decompresses and decodes the chunk stored at position
// (x, z), returning its tag tree. The root name is discarded.
//
// A chunk frame is a big-endian uint32 length covering everything after
// itself, one compression code byte, then the compressed tree. Only zlib
// frames (code 2) are accepted.
//
// Parameters:
//   - x: Chunk x coordinate in [0, Width)
//   - z: Chunk z coordinate in [0, Width)
//
// Returns:
//   - nbt.Tag: Decoded chunk tree
//   - error: errs.ErrCoordOutOfRange, errs.ErrChunkNotFound for an empty
//     slot, errs.ErrUnsupportedCompression carrying the rejected code,
//     errs.ErrInvalidLength for a frame that is empty or overruns the
//     source, or any read, decompression or decode failure
func (f *File) LoadChunk(x, z int) (nbt.Tag, error) {
	slot, err := f.Slot(x, z)
	if err != nil {
		return nbt.Tag{}, err
	}

	if !slot.Exists() {
		return nbt.Tag{}, fmt.Errorf("%w: chunk (%d, %d)", errs.ErrChunkNotFound, x, z)
	}

	if _, err := f.r.Seek(slot.Offset(), io.SeekStart); err != nil {
		return nbt.Tag{}, fmt.Errorf("failed to seek to chunk frame: %w", err)
	}

	if _, err := io.ReadFull(f.r, f.scratch[:5]); err != nil {
		return nbt.Tag{}, fmt.Errorf("failed to read chunk frame header: %w", err)
	}

	frameLen := int64(f.engine.Uint32(f.scratch[:4]))
	code := f.scratch[4]

	if frameLen == 0 {
		return nbt.Tag{}, fmt.Errorf("%w: empty chunk frame at (%d, %d)", errs.ErrInvalidLength, x, z)
	}

	if format.CompressionType(code) != format.CompressionZlib {
		return nbt.Tag{}, fmt.Errorf("%w: code %d", errs.ErrUnsupportedCompression, code)
	}

	if end := slot.Offset() + 4 + frameLen; end > f.size {
		return nbt.Tag{}, fmt.Errorf("%w: chunk frame ends at %d beyond region size %d", errs.ErrInvalidLength, end, f.size)
	}

	buf := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(buf)

	buf.ExtendOrGrow(int(frameLen - 1))
	if _, err := io.ReadFull(f.r, buf.Bytes()); err != nil {
		return nbt.Tag{}, fmt.Errorf("failed to read chunk payload: %w", err)
	}

	plain, err := f.codec.Decompress(buf.Bytes())
	if err != nil {
		return nbt.Tag{}, fmt.Errorf("failed to decompress chunk payload: %w", err)
	}

	_, tag, err := nbt.DecodeRoot(bytes.NewReader(plain))
	if err != nil {
		return nbt.Tag{}, err
	}

	return tag, nil
}
