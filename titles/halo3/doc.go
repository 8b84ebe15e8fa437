// Package halo3 converts Halo 3 map variants.
//
// Two builds are supported. The release build (12070) bit-packs `mvar`
// bodies most significant bit first, seals files with a CRC-32 trailer and
// ships an RSA map manifest. The delta pre-release (08172) fills bits least
// significant first, seals with an unauthenticated trailer and has no
// manifest.
package halo3
