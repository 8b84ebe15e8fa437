package blf

import (
	"fmt"

	"github.com/joshuapare/blfkit/internal/format"
	"github.com/joshuapare/blfkit/internal/mmfile"
	"github.com/joshuapare/blfkit/internal/writer"
	"github.com/joshuapare/blfkit/pkg/types"
)

// Container is a BLF file kind with a fixed, ordered list of chunk slots.
// Slots must return pointers into the container so Read can fill them.
type Container interface {
	Slots() []Chunk
}

// Write encodes every slot in order, threading the bytes produced so far into
// each chunk's BeforeWrite hook.
func Write(c Container) ([]byte, error) {
	var out []byte
	for _, slot := range c.Slots() {
		framed, err := Frame(slot, out)
		if err != nil {
			return nil, err
		}
		out = append(out, framed...)
	}
	return out, nil
}

// Read decodes data into c's slots in order. Every slot must be present with
// its declared signature and version; bytes after the last slot are ignored.
func Read(data []byte, c Container) error {
	off := 0
	for _, slot := range c.Slots() {
		hdr, err := format.ParseHeader(data[off:])
		if err != nil {
			return fmt.Errorf("%s at offset %d: %w", slot.Signature(), off, err)
		}
		if hdr.Size == format.EndOfChunks || !hdr.Matches(slot.Signature(), slot.Version()) {
			return chunkNotFound(slot, off, hdr)
		}
		end := off + int(hdr.Size)
		if end > len(data) {
			return fmt.Errorf("%s at offset %d declares %d bytes, %d available: %w",
				slot.Signature(), off, hdr.Size, len(data)-off, types.ErrTruncated)
		}
		if err := DecodeBody(slot, data[off+HeaderSize:end], hdr, data[:off]); err != nil {
			return err
		}
		off = end
	}
	return nil
}

func chunkNotFound(slot Chunk, off int, hdr Header) error {
	return types.Errorf(types.ErrKindStructural,
		fmt.Sprintf("%s chunk not found! (offset %d holds %s %s)", slot.Signature(), off, hdr.Signature, hdr.Version),
		types.ErrChunkNotFound)
}

// ReadFile maps path read-only and decodes it into c.
func ReadFile(path string, c Container) error {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer cleanup() //nolint:errcheck // read-only mapping
	if err := Read(data, c); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// WriteTo encodes c and hands the complete file to sink in one commit. Nothing
// reaches sink when encoding fails.
func WriteTo(sink writer.Sink, c Container) error {
	data, err := Write(c)
	if err != nil {
		return err
	}
	return sink.Commit(data)
}

// WriteFile encodes c and writes it to path atomically.
func WriteFile(path string, c Container) error {
	return WriteTo(&writer.FileWriter{Path: path}, c)
}
