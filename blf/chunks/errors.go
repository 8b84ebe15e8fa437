package chunks

import "github.com/joshuapare/blfkit/pkg/types"

var (
	// ErrByteOrderMark indicates a start-of-file chunk whose mark is not 0xFFFE.
	ErrByteOrderMark = &types.Error{Kind: types.ErrKindStructural, Msg: "chunks: invalid byte order mark"}
	// ErrBodySize indicates a fixed-layout body of the wrong length.
	ErrBodySize = &types.Error{Kind: types.ErrKindStructural, Msg: "chunks: body size mismatch"}
	// ErrTooMany indicates a list longer than its wire count field allows.
	ErrTooMany = &types.Error{Kind: types.ErrKindEncoding, Msg: "chunks: count exceeds maximum", Err: types.ErrInvalidEncoding}
	// ErrVariant indicates cross-references inside a variant that do not resolve.
	ErrVariant = &types.Error{Kind: types.ErrKindDomain, Msg: "chunks: inconsistent variant"}
	// ErrUnknownName indicates a JSON enum name no constant carries.
	ErrUnknownName = &types.Error{Kind: types.ErrKindEncoding, Msg: "chunks: unknown enum name", Err: types.ErrInvalidEncoding}
)
