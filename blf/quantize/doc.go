// Package quantize maps real values and vectors onto fixed-width integer codes
// and back.
//
// The mappings are lossy but deterministic: encoding a value and decoding the
// code always lands within half a step of the input, and the flags
// exactMidpoint/exactEndpoints pin the codes that must come back bit-exact
// (the centre of a symmetric range, and the two range limits).
package quantize
