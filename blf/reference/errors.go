package reference

import "github.com/joshuapare/blfkit/pkg/types"

func referenceError(msg string) *types.Error {
	return &types.Error{Kind: types.ErrKindDomain, Msg: msg, Err: types.ErrInvalidReference}
}

var (
	// ErrUnknownKind indicates a kind name that no family defines.
	ErrUnknownKind = referenceError("reference: unknown kind")
	// ErrKindNotInLayout indicates a kind the layout assigns no tag to.
	ErrKindNotInLayout = referenceError("reference: kind not encodable in layout")
	// ErrUnknownTag indicates a decoded tag past the end of the layout's kind list.
	ErrUnknownTag = referenceError("reference: tag out of range")
	// ErrMissingPayload indicates a kind whose payload field is unset.
	ErrMissingPayload = referenceError("reference: missing payload")
	// ErrUnexpectedPayload indicates a payload field that belongs to another kind.
	ErrUnexpectedPayload = referenceError("reference: payload does not match kind")
	// ErrTargetKind indicates a nested target of a kind the outer reference does not accept.
	ErrTargetKind = referenceError("reference: nested target of wrong kind")
	// ErrIndexRange indicates an index outside [-1, max).
	ErrIndexRange = referenceError("reference: index out of range")
)
