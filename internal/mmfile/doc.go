// Package mmfile maps BLF inputs into memory read-only.
//
// The returned slice is only valid until cleanup runs. Decoders built on top
// of it copy every field they keep, so a decoded container never aliases the
// mapping.
package mmfile
