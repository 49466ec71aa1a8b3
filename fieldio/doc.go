// Package fieldio writes and reads per-vertex scalar fields, such as geodesic
// distance maps, as compact binary files for downstream tools.
//
// # Format
//
// All integers are little endian.
//
//	Header   [magic "MGFD"][version u16][compression u8][reserved u8][count u64]
//	Block*   [uncompressed size u32][compressed size u32][data]
//	Trailer  [CRC32C of the uncompressed payload u32]
//
// The payload is count float64 values. A block with compressed size 0 is
// stored as is, which happens when compression does not shrink it by at
// least ten percent. Unreached vertices are stored as NaN.
package fieldio
