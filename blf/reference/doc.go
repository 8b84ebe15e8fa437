// Package reference implements the discriminated references gameplay scripts
// use to name players, objects, teams, numbers, timers and text tokens.
//
// Every reference is a kind tag followed by a kind-specific payload, which may
// itself contain nested references:
//
//	tag       Layout.<Family>.Bits
//	payload   depends on the kind selected by tag
//
// The tag width, the tag assigned to each kind and the width of every index
// are schema data carried by a Layout. Builds disagree on all three, so the
// same Go value encodes differently under ReachRelease and ReachBeta.
package reference
