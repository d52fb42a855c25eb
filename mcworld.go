// Package mcworld reads the binary data formats a world directory is made
// of: tag trees, the compressed standalone files that hold them, and the
// region containers that pack chunk trees by coordinate.
//
// # Core Features
//
//   - Streaming big-endian tag tree decoder with strict UTF-8 validation
//   - Fallible navigation chains over decoded trees (Key / Index / As*)
//   - Gzip, zlib and uncompressed standalone file handling
//   - Region container access: existence, timestamps and chunk loading
//   - Sentinel errors for every failure class, classified with errors.Is
//
// # Basic Usage
//
// Decoding a standalone compressed file such as level.dat:
//
//	import "github.com/arloliu/mcworld"
//
//	f, _ := os.Open("level.dat")
//	defer f.Close()
//
//	_, root, err := mcworld.DecodeCompressed(f, format.CompressionGzip)
//	if err != nil {
//	    return err
//	}
//
//	seed, err := root.Key("Data").Key("RandomSeed").AsInt64()
//
// Loading a chunk out of a region container:
//
//	f, _ := os.Open("r.0.0.mca")
//	defer f.Close()
//
//	reg, err := mcworld.OpenRegion(f)
//	if err != nil {
//	    return err
//	}
//
//	chunk, err := reg.LoadChunk(0, 0)
//	if err != nil {
//	    return err
//	}
//
//	lastUpdate, err := chunk.Key("Level").Key("LastUpdate").AsInt64()
//
// # Package Structure
//
// This package provides convenient top-level wrappers around the nbt,
// compress and region packages, simplifying the most common use cases.
// For advanced usage and fine-grained control, use those packages
// directly.
package mcworld

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/mcworld/compress"
	"github.com/arloliu/mcworld/format"
	"github.com/arloliu/mcworld/nbt"
	"github.com/arloliu/mcworld/region"
)

// Decode reads one named tag tree from an uncompressed stream.
//
// Parameters:
//   - r: Source of raw tree bytes
//
// Returns:
//   - string: The root name
//   - nbt.Tag: The decoded root tag
//   - error: Any decode failure, see nbt.DecodeRoot
func Decode(r io.Reader) (string, nbt.Tag, error) {
	return nbt.DecodeRoot(r)
}

// DecodeCompressed reads one named tag tree from a compressed stream.
//
// The whole stream is read and decompressed with the given compression
// type before decoding; format.CompressionNone decodes the stream as-is.
//
// Parameters:
//   - r: Source of compressed tree bytes
//   - compressionType: One of format.CompressionGzip, format.CompressionZlib
//     or format.CompressionNone
//
// Returns:
//   - string: The root name
//   - nbt.Tag: The decoded root tag
//   - error: errs.ErrUnsupportedCompression for an unknown compression
//     type, or any read, decompression or decode failure
func DecodeCompressed(r io.Reader, compressionType format.CompressionType) (string, nbt.Tag, error) {
	codec, err := compress.GetDecompressor(compressionType)
	if err != nil {
		return "", nbt.Tag{}, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nbt.Tag{}, fmt.Errorf("failed to read compressed stream: %w", err)
	}

	plain, err := codec.Decompress(data)
	if err != nil {
		return "", nbt.Tag{}, fmt.Errorf("failed to decompress stream: %w", err)
	}

	return nbt.DecodeRoot(bytes.NewReader(plain))
}

// OpenRegion parses the header of a region source and returns a handle
// for chunk access. See region.NewFile for the failure modes.
func OpenRegion(r io.ReadSeeker) (*region.File, error) {
	return region.NewFile(r)
}
