package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/mcworld/internal/pool"
	"github.com/klauspost/compress/zlib"
)

// ZlibDecompressor inflates RFC 1950 zlib streams, the only compression the
// region chunk pipeline accepts (wire code 2).
type ZlibDecompressor struct{}

var _ Decompressor = (*ZlibDecompressor)(nil)

// NewZlibDecompressor creates a new zlib decompressor.
func NewZlibDecompressor() ZlibDecompressor {
	return ZlibDecompressor{}
}

// Decompress inflates the input data using zlib decompression.
//
// The decompressed size is unknown up front, so output accumulates in a
// pooled buffer and is copied once into an exact-size result slice.
func (d ZlibDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open zlib stream: %w", err)
	}
	defer zr.Close()

	buf := pool.GetTreeBuffer()
	defer pool.PutTreeBuffer(buf)

	if _, err := io.Copy(buf, zr); err != nil {
		return nil, fmt.Errorf("inflate zlib stream: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
