// Package eof implements the `_eof` trailer chunk that closes every BLF file.
//
// The trailer records the size of everything written before it and, depending
// on its authentication kind, a checksum or signature over those bytes:
//
//	Offset  Size  Field
//	0x00    4     file_size (big-endian, bytes preceding the trailer)
//	0x04    1     authentication kind (0 none, 1 crc32, 2 sha1, 3 rsa)
//	0x05    n     payload (0, 4, 20 or 256 bytes)
//
// Each kind is its own chunk type. BeforeWrite derives the size and digest from
// the accumulator; AfterRead recomputes and compares them.
package eof
