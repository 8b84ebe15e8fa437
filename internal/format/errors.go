package format

import "github.com/joshuapare/blfkit/pkg/types"

var (
	// ErrTruncatedHeader indicates fewer than HeaderSize bytes were available.
	ErrTruncatedHeader = &types.Error{Kind: types.ErrKindStructural, Msg: "format: truncated chunk header", Err: types.ErrTruncated}
	// ErrChunkSize indicates a chunk_size smaller than the header itself.
	ErrChunkSize = &types.Error{Kind: types.ErrKindStructural, Msg: "format: chunk size smaller than header"}
)
