package compress

// NoOpDecompressor passes data through unchanged.
//
// It serves standalone sources that are stored uncompressed. The region
// chunk pipeline never reaches it: wire code 3 exists in the wild but the
// region path rejects every code except zlib before consulting a codec.
type NoOpDecompressor struct{}

var _ Decompressor = (*NoOpDecompressor)(nil)

// NewNoOpDecompressor creates a new pass-through decompressor.
func NewNoOpDecompressor() NoOpDecompressor {
	return NoOpDecompressor{}
}

// Decompress returns the input data directly without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
// Callers should not modify the input data after calling this method if they
// plan to use the returned slice.
func (d NoOpDecompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
