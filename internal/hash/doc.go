// Package hash provides the checksum used by field files.
//
// Field payloads are protected with CRC32-Castagnoli (CRC32C), which Go's
// hash/crc32 accelerates in hardware on x86 (SSE4.2) and ARM (CRC extension).
//
//	checksum := hash.CRC32C(data)
//
// For payloads that are produced block by block:
//
//	h := hash.NewCRC32C()
//	h.Write(block1)
//	h.Write(block2)
//	checksum := h.Sum32()
package hash
