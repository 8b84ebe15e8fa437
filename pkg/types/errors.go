package types

import "errors"

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindStructural  ErrKind = iota // truncated header, chunk not found, size invariant
	ErrKindIntegrity                  // CRC/SHA1 mismatch, file size mismatch
	ErrKindEncoding                   // value out of range, capacity exceeded, bad stream state
	ErrKindDomain                     // unknown title/build, malformed reference
	ErrKindUnsupported                // recognized feature we cannot perform (RSA signing)
	ErrKindState                      // invalid operation for the current object state
)

// String implements fmt.Stringer.
func (k ErrKind) String() string {
	switch k {
	case ErrKindStructural:
		return "structural"
	case ErrKindIntegrity:
		return "integrity"
	case ErrKindEncoding:
		return "encoding"
	case ErrKindDomain:
		return "domain"
	case ErrKindUnsupported:
		return "unsupported"
	case ErrKindState:
		return "state"
	default:
		return "unknown"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches another *Error of the same kind and message, so wrapped copies of
// a sentinel still satisfy errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind && e.Msg == t.Msg
}

// Sentinels commonly returned by implementations.
var (
	// ErrTruncated indicates the buffer ended before a structure was complete.
	ErrTruncated = &Error{Kind: ErrKindStructural, Msg: "truncated data"}
	// ErrChunkNotFound indicates a required chunk slot was missing or mismatched.
	ErrChunkNotFound = &Error{Kind: ErrKindStructural, Msg: "chunk not found"}
	// ErrIntegrity indicates a checksum, hash or size trailer did not match.
	ErrIntegrity = &Error{Kind: ErrKindIntegrity, Msg: "integrity violation"}
	// ErrInvalidEncoding indicates a value that cannot be represented or decoded.
	ErrInvalidEncoding = &Error{Kind: ErrKindEncoding, Msg: "invalid encoding"}
	// ErrInvalidReference indicates a malformed discriminated reference.
	ErrInvalidReference = &Error{Kind: ErrKindDomain, Msg: "invalid reference"}
	// ErrUnknownTitle indicates no schema is registered for a title/build pair.
	ErrUnknownTitle = &Error{Kind: ErrKindDomain, Msg: "unknown title/build"}
	// ErrUnsupported indicates a recognized but unsupported operation.
	ErrUnsupported = &Error{Kind: ErrKindUnsupported, Msg: "unsupported operation"}
)

// Errorf builds a typed error of kind k wrapping cause. The message is used as-is.
func Errorf(k ErrKind, msg string, cause error) *Error {
	return &Error{Kind: k, Msg: msg, Err: cause}
}

// KindOf reports the kind of the first *Error in err's chain.
func KindOf(err error) (ErrKind, bool) {
	var te *Error
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return 0, false
}

// IsKind reports whether err carries a typed error of kind k.
func IsKind(err error, k ErrKind) bool {
	got, ok := KindOf(err)
	return ok && got == k
}
