package blf

import (
	"fmt"
	"math"

	"github.com/joshuapare/blfkit/internal/format"
	"github.com/joshuapare/blfkit/pkg/types"
)

type (
	// Signature identifies a chunk type.
	Signature = format.Signature
	// Version is a chunk schema version.
	Version = format.Version
	// Header is a decoded chunk header.
	Header = format.Header
)

// HeaderSize is the size of a chunk header in bytes.
const HeaderSize = format.HeaderSize

// Chunk is the contract every chunk type satisfies. Implementations use
// pointer receivers so UnmarshalBody can populate the value in place.
type Chunk interface {
	Signature() Signature
	Version() Version
	// MarshalBody serializes the chunk's fields, header excluded.
	MarshalBody() ([]byte, error)
	// UnmarshalBody populates the chunk from a body of exactly the header's
	// declared length.
	UnmarshalBody(body []byte) error
}

// BeforeWriter is implemented by chunks that derive fields (sizes, checksums)
// from the bytes written before them.
type BeforeWriter interface {
	BeforeWrite(previouslyWritten []byte) error
}

// AfterReader is implemented by chunks that validate fields against the bytes
// read before them.
type AfterReader interface {
	AfterRead(previouslyRead []byte) error
}

// ErrChunkMismatch indicates a header whose identity differs from the chunk
// being decoded.
var ErrChunkMismatch = &types.Error{Kind: types.ErrKindStructural, Msg: "blf: chunk identity mismatch"}

// ErrBodyTooLarge indicates a body that cannot be framed in a u32 chunk size.
var ErrBodyTooLarge = &types.Error{Kind: types.ErrKindEncoding, Msg: "blf: chunk body too large"}

// EncodeBody runs the BeforeWrite hook, if any, then serializes c.
func EncodeBody(c Chunk, previouslyWritten []byte) ([]byte, error) {
	if h, ok := c.(BeforeWriter); ok {
		if err := h.BeforeWrite(previouslyWritten); err != nil {
			return nil, fmt.Errorf("%s before write: %w", c.Signature(), err)
		}
	}
	body, err := c.MarshalBody()
	if err != nil {
		return nil, fmt.Errorf("%s encode: %w", c.Signature(), err)
	}
	return body, nil
}

// DecodeBody checks hdr against c's identity, deserializes body into c and
// runs the AfterRead hook, if any.
func DecodeBody(c Chunk, body []byte, hdr Header, previouslyRead []byte) error {
	if !hdr.Matches(c.Signature(), c.Version()) {
		return fmt.Errorf("%s %s found where %s %s expected: %w",
			hdr.Signature, hdr.Version, c.Signature(), c.Version(), ErrChunkMismatch)
	}
	if err := c.UnmarshalBody(body); err != nil {
		return fmt.Errorf("%s decode: %w", c.Signature(), err)
	}
	if h, ok := c.(AfterReader); ok {
		if err := h.AfterRead(previouslyRead); err != nil {
			return fmt.Errorf("%s after read: %w", c.Signature(), err)
		}
	}
	return nil
}

// HeaderFor returns the header framing a body of bodyLen bytes for c.
func HeaderFor(c Chunk, bodyLen int) (Header, error) {
	if bodyLen < 0 || uint64(bodyLen) > math.MaxUint32-HeaderSize {
		return Header{}, fmt.Errorf("%s body of %d bytes: %w", c.Signature(), bodyLen, ErrBodyTooLarge)
	}
	return Header{Signature: c.Signature(), Version: c.Version(), Size: uint32(HeaderSize + bodyLen)}, nil
}

// Frame encodes c against previouslyWritten and returns header ++ body.
func Frame(c Chunk, previouslyWritten []byte) ([]byte, error) {
	body, err := EncodeBody(c, previouslyWritten)
	if err != nil {
		return nil, err
	}
	hdr, err := HeaderFor(c, len(body))
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, HeaderSize+len(body))
	out = hdr.AppendTo(out)
	return append(out, body...), nil
}
