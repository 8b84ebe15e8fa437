package eof

import (
	"fmt"

	"github.com/joshuapare/blfkit/blf"
)

// Find walks data's header chain to the first `_eof` chunk with major version
// 1 and decodes it according to its discriminant, without validating it.
// It returns the trailer and its offset.
func Find(data []byte) (Trailer, int, error) {
	var (
		found  Trailer
		offset int
	)
	err := blf.Walk(data, func(e blf.Entry) error {
		if e.Header.Signature != Signature || e.Header.Version.Major != Version.Major {
			return nil
		}
		if len(e.Body) < fixedSize {
			return fmt.Errorf("eof: %d byte body at offset %d: %w", len(e.Body), e.Offset, ErrBodySize)
		}
		t, err := New(Kind(e.Body[4]))
		if err != nil {
			return fmt.Errorf("eof at offset %d: %w", e.Offset, err)
		}
		if err := t.UnmarshalBody(e.Body); err != nil {
			return fmt.Errorf("eof at offset %d: %w", e.Offset, err)
		}
		found, offset = t, e.Offset
		return blf.ErrStopWalk
	})
	if err != nil {
		return nil, 0, err
	}
	if found == nil {
		return nil, 0, ErrNotFound
	}
	return found, offset, nil
}

// FindAndValidate locates the trailer like Find and validates it against the
// bytes preceding it.
func FindAndValidate(data []byte) (Trailer, error) {
	t, offset, err := Find(data)
	if err != nil {
		return nil, err
	}
	if err := t.AfterRead(data[:offset]); err != nil {
		return nil, err
	}
	return t, nil
}
