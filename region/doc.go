// Package region reads chunk tag trees out of region containers, the .mca
// files a world directory stores its terrain in.
//
// # Layout
//
// A region covers a 32 by 32 chunk area. The source opens with an
// 8192-byte header of two tables, 1024 big-endian uint32 words each:
//
//	[offset table: 1024 x u32][timestamp table: 1024 x u32][chunk frames ...]
//
// The table index for chunk position (x, z) is x + z*32. In an offset
// word the upper three bytes locate the chunk frame in 4096-byte sectors
// from the start of the source and the low byte counts the sectors it
// occupies. A zero word means no chunk is stored at that position. A zero
// timestamp means no modification time was recorded.
//
// Each chunk frame is:
//
//	[frame length: u32][compression code: u8][compressed tree: length-1 bytes]
//
// Only zlib-compressed frames (code 2) are accepted; any other code fails
// with errs.ErrUnsupportedCompression carrying the rejected byte.
package region
