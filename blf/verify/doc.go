// Package verify checks the structural invariants of an encoded BLF file
// without knowing its container type.
//
// # Quick Start
//
//	data, _ := os.ReadFile("variant.bin")
//	if err := verify.AllInvariants(data); err != nil {
//	    fmt.Printf("Validation failed: %v\n", err)
//	}
//
// # Checks
//
// StartOfFile validates the first chunk: signature `_blf`, version 1.2 and a
// 0xFFFE byte order mark.
//
// ChunkChain follows chunk sizes from offset 0 and requires that the chain
// ends on an `_eof` chunk whose file_size equals its own offset, with no bytes
// after it.
//
// Authentication recomputes the trailer's CRC-32 or SHA-1. It is not part of
// AllInvariants because RSA trailers cannot be checked without the title's
// public key and None trailers carry nothing to check.
//
// Every function returns *ValidationError on failure. Its Cause links back to
// the typed errors in pkg/types so callers can classify failures with
// types.KindOf.
package verify
