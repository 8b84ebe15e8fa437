// Package chunks is the catalog of concrete chunk types blfkit reads and
// writes.
//
// Byte-level chunks (_blf, athr, chdr, mapm) lay their fields out big-endian
// with fixed-width strings. Variant chunks (mvar, mpvr) carry a bit-packed
// body whose bit order, byte order and reference layout depend on the build
// that wrote them; callers set the Encoding field before reading or writing
// those.
//
// Every chunk is JSON-friendly. Fields the codec derives, such as sizes,
// checksums and byte order marks, are excluded from JSON and recomputed on
// encode.
package chunks
