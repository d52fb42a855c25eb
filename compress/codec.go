package compress

import (
	"fmt"

	"github.com/arloliu/mcworld/errs"
	"github.com/arloliu/mcworld/format"
)

// Decompressor turns a fully-read compressed payload back into plain bytes.
//
// The library is decode-only, so there is no compressing counterpart; region
// chunks and standalone world files are always consumed, never produced.
//
// Implementations operate on whole payloads rather than streams because every
// compressed unit in the format is small and length-prefixed: a region chunk
// frame is bounded near 1MiB by its sector-count byte, and standalone files
// are read in full before decoding.
type Decompressor interface {
	// Decompress decompresses the input data and returns the original bytes.
	//
	// The returned slice is newly allocated and owned by the caller; the
	// input slice is not modified. Corrupted or truncated input returns an
	// error from the underlying algorithm.
	Decompress(data []byte) ([]byte, error)
}

var builtinDecompressors = map[format.CompressionType]Decompressor{
	format.CompressionGzip: NewGzipDecompressor(),
	format.CompressionZlib: NewZlibDecompressor(),
	format.CompressionNone: NewNoOpDecompressor(),
}

// GetDecompressor retrieves the built-in Decompressor for the given
// compression type.
//
// The returned instances are stateless and safe for concurrent use. An
// unrecognized type fails with errs.ErrUnsupportedCompression carrying the
// numeric code.
func GetDecompressor(compressionType format.CompressionType) (Decompressor, error) {
	if d, ok := builtinDecompressors[compressionType]; ok {
		return d, nil
	}

	return nil, fmt.Errorf("%w: code %d", errs.ErrUnsupportedCompression, uint8(compressionType))
}
