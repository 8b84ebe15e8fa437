package verify

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/internal/format"
	"github.com/joshuapare/blfkit/pkg/types"
)

// ValidationError describes the first invariant a file violates.
type ValidationError struct {
	Type    string
	Message string
	Offset  int
	Details map[string]any
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("%s at offset 0x%X: %s", e.Type, e.Offset, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *ValidationError) Unwrap() error { return e.Cause }

// AllInvariants runs StartOfFile and ChunkChain and returns the first error.
func AllInvariants(data []byte) error {
	if err := StartOfFile(data); err != nil {
		return err
	}
	return ChunkChain(data)
}

var startOfFileVersion = blf.Version{Major: 1, Minor: 2}

// StartOfFile validates the first chunk header and its byte order mark.
func StartOfFile(data []byte) error {
	hdr, err := format.ParseHeader(data)
	if err != nil {
		return &ValidationError{Type: "StartOfFile", Message: err.Error(), Offset: 0, Cause: err}
	}
	if !hdr.Matches(format.StartOfFileSignature, startOfFileVersion) {
		return &ValidationError{
			Type:    "StartOfFile",
			Message: fmt.Sprintf("first chunk is %s %s, expected %s %s", hdr.Signature, hdr.Version, format.StartOfFileSignature, startOfFileVersion),
			Offset:  0,
			Cause:   types.ErrChunkNotFound,
		}
	}
	if hdr.BodySize() < 2 || int(hdr.Size) > len(data) {
		return &ValidationError{
			Type:    "StartOfFile",
			Message: fmt.Sprintf("chunk size %d with %d bytes available", hdr.Size, len(data)),
			Offset:  format.ChunkSizeOffset,
			Cause:   types.ErrTruncated,
		}
	}
	if bom := binary.BigEndian.Uint16(data[format.HeaderSize:]); bom != 0xFFFE {
		return &ValidationError{
			Type:    "StartOfFile",
			Message: fmt.Sprintf("byte order mark 0x%04X, expected 0xFFFE", bom),
			Offset:  format.HeaderSize,
			Details: map[string]any{"bom": bom},
			Cause:   &types.Error{Kind: types.ErrKindStructural, Msg: "invalid byte order mark"},
		}
	}
	return nil
}

// ChunkChain follows chunk sizes to the `_eof` trailer and checks that the
// trailer's file_size matches its offset and that it ends the file.
func ChunkChain(data []byte) error {
	off := 0
	for {
		if off == len(data) {
			return &ValidationError{
				Type:    "ChunkChain",
				Message: "file ends without an _eof chunk",
				Offset:  off,
				Cause:   eof.ErrNotFound,
			}
		}
		hdr, err := format.ParseHeader(data[off:])
		if err != nil {
			return &ValidationError{Type: "ChunkChain", Message: err.Error(), Offset: off, Cause: err}
		}
		if hdr.Size == format.EndOfChunks {
			return &ValidationError{
				Type:    "ChunkChain",
				Message: "zero chunk size before _eof",
				Offset:  off + format.ChunkSizeOffset,
				Cause:   eof.ErrNotFound,
			}
		}
		end := off + int(hdr.Size)
		if end > len(data) {
			return &ValidationError{
				Type:    "ChunkChain",
				Message: fmt.Sprintf("%s chunk of %d bytes overruns file by %d", hdr.Signature, hdr.Size, end-len(data)),
				Offset:  off,
				Details: map[string]any{"chunk_size": hdr.Size, "available": len(data) - off},
				Cause:   types.ErrTruncated,
			}
		}
		if hdr.Signature == eof.Signature {
			return trailerPlacement(data, off, end)
		}
		off = end
	}
}

func trailerPlacement(data []byte, off, end int) error {
	if end-off < format.HeaderSize+4 {
		return &ValidationError{Type: "ChunkChain", Message: "_eof chunk too small for file_size", Offset: off, Cause: eof.ErrBodySize}
	}
	stored := binary.BigEndian.Uint32(data[off+format.HeaderSize:])
	if int(stored) != off {
		return &ValidationError{
			Type:    "ChunkChain",
			Message: fmt.Sprintf("_eof file_size %d, trailer at offset %d", stored, off),
			Offset:  off + format.HeaderSize,
			Details: map[string]any{"stored": stored, "actual": off},
			Cause:   eof.ErrFileSize,
		}
	}
	if end != len(data) {
		return &ValidationError{
			Type:    "ChunkChain",
			Message: fmt.Sprintf("%d bytes after _eof chunk", len(data)-end),
			Offset:  end,
			Details: map[string]any{"trailing": len(data) - end},
			Cause:   &types.Error{Kind: types.ErrKindStructural, Msg: "trailing data"},
		}
	}
	return nil
}

// Authentication validates the trailer's checksum or hash against the bytes
// preceding it.
func Authentication(data []byte) error {
	tr, off, err := eof.Find(data)
	if err != nil {
		return &ValidationError{Type: "Authentication", Message: err.Error(), Offset: -1, Cause: err}
	}
	if err := tr.AfterRead(data[:off]); err != nil {
		verr := &ValidationError{Type: "Authentication", Message: err.Error(), Offset: off, Cause: err}
		if errors.Is(err, eof.ErrChecksum) {
			verr.Details = map[string]any{"kind": tr.Kind().String()}
		}
		return verr
	}
	return nil
}
