package compress

import (
	"bytes"
	"fmt"
	"io"

	"github.com/arloliu/mcworld/internal/pool"
	"github.com/klauspost/compress/gzip"
)

// GzipDecompressor inflates RFC 1952 gzip streams.
//
// Region chunks never use gzip in practice (the pipeline accepts only zlib),
// but standalone world files such as level.dat are conventionally stored
// gzip-wrapped and are decoded through this path.
type GzipDecompressor struct{}

var _ Decompressor = (*GzipDecompressor)(nil)

// NewGzipDecompressor creates a new gzip decompressor.
func NewGzipDecompressor() GzipDecompressor {
	return GzipDecompressor{}
}

// Decompress inflates the input data using gzip decompression.
func (d GzipDecompressor) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	gr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open gzip stream: %w", err)
	}
	defer gr.Close()

	buf := pool.GetTreeBuffer()
	defer pool.PutTreeBuffer(buf)

	if _, err := io.Copy(buf, gr); err != nil {
		return nil, fmt.Errorf("inflate gzip stream: %w", err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out, nil
}
