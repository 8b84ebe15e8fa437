// Package types defines the error taxonomy shared by every blfkit package.
//
// Errors are grouped into stable categories (structural, integrity, encoding,
// domain, unsupported, state) so callers can branch on intent rather than text.
// Decoders never panic on malformed input; they return one of these.
//
// This package has no dependencies beyond the standard library.
package types
