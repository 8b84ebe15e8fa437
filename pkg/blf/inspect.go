package blf

import (
	"errors"
	"fmt"

	codec "github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/internal/mmfile"
)

// ChunkInfo describes one chunk header.
type ChunkInfo struct {
	Offset    int    `json:"offset"`
	Signature string `json:"signature"`
	Version   string `json:"version"`
	Size      uint32 `json:"size"`
}

// FileInfo summarizes a BLF file.
type FileInfo struct {
	Path string `json:"path"`
	Size int    `json:"size"`
	// Name is the `_blf` chunk's name, empty when the file has none.
	Name   string      `json:"name"`
	Chunks []ChunkInfo `json:"chunks"`
	// Trailer is the `_eof` authentication kind, empty when absent.
	Trailer string `json:"trailer,omitempty"`
}

// Inspect walks the chunk headers of the file at path. Truncated or
// malformed chain tails are reported as errors along with the chunks read
// so far.
func Inspect(path string) (*FileInfo, error) {
	data, cleanup, err := mmfile.Map(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = cleanup() }()
	return inspect(path, data)
}

func inspect(path string, data []byte) (*FileInfo, error) {
	info := &FileInfo{Path: path, Size: len(data)}
	walkErr := codec.Walk(data, func(e codec.Entry) error {
		info.Chunks = append(info.Chunks, ChunkInfo{
			Offset:    e.Offset,
			Signature: e.Header.Signature.String(),
			Version:   e.Header.Version.String(),
			Size:      e.Header.Size,
		})
		return nil
	})
	if start, err := codec.FindChunk[chunks.StartOfFile](data); err == nil && start != nil {
		info.Name = start.Name
	}
	switch tr, _, err := eof.Find(data); {
	case err == nil:
		info.Trailer = tr.Kind().String()
	case errors.Is(err, eof.ErrNotFound):
	default:
		if walkErr == nil {
			walkErr = err
		}
	}
	if walkErr != nil {
		return info, fmt.Errorf("%s: %w", path, walkErr)
	}
	return info, nil
}
