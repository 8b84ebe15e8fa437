// Package haloreach converts Halo: Reach game variants.
//
// The release (11860) and beta (09730) builds share the `mpvr` 54.1 chunk and
// a SHA-1 trailer but disagree on how megalo references are tagged, so each
// converter carries its own reference.Layout.
package haloreach
