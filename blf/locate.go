package blf

import (
	"errors"
	"fmt"

	"github.com/joshuapare/blfkit/internal/format"
	"github.com/joshuapare/blfkit/pkg/types"
)

// Entry is one chunk visited by Walk.
type Entry struct {
	Offset int
	Header Header
	Body   []byte
}

// ErrStopWalk may be returned by a Walk callback to end the walk without error.
var ErrStopWalk = errors.New("blf: stop walk")

// Walk visits chunks sequentially from the start of data, skipping each body
// by its declared size. It stops at a zero chunk size, or when fewer than a
// header's worth of bytes remain.
func Walk(data []byte, fn func(Entry) error) error {
	off := 0
	for off+HeaderSize <= len(data) {
		hdr, err := format.ParseHeader(data[off:])
		if err != nil {
			return fmt.Errorf("chunk at offset %d: %w", off, err)
		}
		if hdr.Size == format.EndOfChunks {
			return nil
		}
		end := off + int(hdr.Size)
		if end > len(data) {
			return fmt.Errorf("%s at offset %d declares %d bytes, %d available: %w",
				hdr.Signature, off, hdr.Size, len(data)-off, types.ErrTruncated)
		}
		if err := fn(Entry{Offset: off, Header: hdr, Body: data[off+HeaderSize : end]}); err != nil {
			if errors.Is(err, ErrStopWalk) {
				return nil
			}
			return err
		}
		off = end
	}
	return nil
}

// Find walks data sequentially and decodes the first chunk matching c's
// identity into c. It reports whether such a chunk was found.
func Find(data []byte, c Chunk) (bool, error) {
	found := false
	err := Walk(data, func(e Entry) error {
		if !e.Header.Matches(c.Signature(), c.Version()) {
			return nil
		}
		if err := DecodeBody(c, e.Body, e.Header, data[:e.Offset]); err != nil {
			return err
		}
		found = true
		return ErrStopWalk
	})
	return found, err
}

// Search slides a header-sized window over every byte offset of data and
// decodes the first candidate whose signature and version match c and whose
// declared size fits in data. Candidates that fail to decode are skipped; the
// first such failure is returned only when no later candidate decodes. It is
// O(len(data)) and intended for captures whose chunk boundaries cannot be
// trusted.
func Search(data []byte, c Chunk) (bool, error) {
	sig, ver := c.Signature(), c.Version()
	var firstErr error
	for off := 0; off+HeaderSize <= len(data); off++ {
		hdr := format.PeekHeader(data[off:])
		if !hdr.Matches(sig, ver) {
			continue
		}
		if hdr.Size < HeaderSize || off+int(hdr.Size) > len(data) {
			continue
		}
		if err := DecodeBody(c, data[off+HeaderSize:off+int(hdr.Size)], hdr, data[:off]); err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s at offset %d: %w", sig, off, err)
			}
			continue
		}
		return true, nil
	}
	return false, firstErr
}

// ChunkPtr constrains a type parameter to pointers to chunk types.
type ChunkPtr[T any] interface {
	*T
	Chunk
}

// FindChunk is the typed form of Find. It returns nil when no chunk of type T
// is present.
func FindChunk[T any, PT ChunkPtr[T]](data []byte) (PT, error) {
	c := PT(new(T))
	found, err := Find(data, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}

// SearchForChunk is the typed form of Search.
func SearchForChunk[T any, PT ChunkPtr[T]](data []byte) (PT, error) {
	c := PT(new(T))
	found, err := Search(data, c)
	if err != nil || !found {
		return nil, err
	}
	return c, nil
}
