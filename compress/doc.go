// Package compress provides the decompression codecs behind the chunk and
// standalone-file decode pipelines.
//
// The library only ever reads world data, so this package exposes a single
// Decompressor interface with no compressing counterpart. Payloads arrive as
// complete byte slices (a region chunk frame is length-prefixed and bounded
// near 1MiB by its sector-count byte), so the interface is whole-payload
// rather than streaming.
//
// # Supported Codecs
//
// **Zlib** (format.CompressionZlib, wire code 2)
//
//	d, _ := compress.GetDecompressor(format.CompressionZlib)
//	plain, err := d.Decompress(frame)
//
// The only codec the region chunk pipeline accepts. Every chunk payload in a
// region source is a zlib stream.
//
// **Gzip** (format.CompressionGzip, wire code 1)
//
// Standalone world files (level.dat and friends) are conventionally stored
// gzip-wrapped; the top-level DecodeCompressed path inflates them here.
//
// **None** (format.CompressionNone, wire code 3)
//
// Pass-through for uncompressed standalone sources. The region path accepts
// only the zlib code, so this codec serves the standalone decode path alone.
//
// # Lookup
//
// GetDecompressor maps a format.CompressionType to its built-in codec. All
// built-in codecs are stateless and safe for concurrent use. Unrecognized
// types fail with errs.ErrUnsupportedCompression carrying the numeric code.
//
// # Memory
//
// Zlib and gzip inflate into a pooled accumulation buffer and copy once into
// an exact-size result, so repeated chunk loads reuse scratch space instead
// of re-allocating it.
package compress
