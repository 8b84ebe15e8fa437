package buf

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/blfkit/pkg/types"
)

// Reader consumes fixed-width fields from a byte slice.
type Reader struct {
	b     []byte
	off   int
	order binary.ByteOrder
}

// NewReader returns a Reader over b using the given byte order.
func NewReader(b []byte, order binary.ByteOrder) *Reader {
	return &Reader{b: b, order: order}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int { return r.off }

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int { return len(r.b) - r.off }

// Bytes returns the next n bytes without copying.
func (r *Reader) Bytes(n int) ([]byte, error) {
	s, ok := Slice(r.b, r.off, n)
	if !ok {
		return nil, fmt.Errorf("read %d bytes at offset %d of %d: %w", n, r.off, len(r.b), types.ErrTruncated)
	}
	r.off += n
	return s, nil
}

// Skip advances past n bytes.
func (r *Reader) Skip(n int) error {
	_, err := r.Bytes(n)
	return err
}

// Copy fills dst with the next len(dst) bytes.
func (r *Reader) Copy(dst []byte) error {
	s, err := r.Bytes(len(dst))
	if err != nil {
		return err
	}
	copy(dst, s)
	return nil
}

func (r *Reader) U8() (uint8, error) {
	s, err := r.Bytes(1)
	if err != nil {
		return 0, err
	}
	return s[0], nil
}

func (r *Reader) Bool() (bool, error) {
	v, err := r.U8()
	return v != 0, err
}

func (r *Reader) I8() (int8, error) {
	v, err := r.U8()
	return int8(v), err
}

func (r *Reader) U16() (uint16, error) {
	s, err := r.Bytes(2)
	if err != nil {
		return 0, err
	}
	return r.order.Uint16(s), nil
}

func (r *Reader) I16() (int16, error) {
	v, err := r.U16()
	return int16(v), err
}

func (r *Reader) U32() (uint32, error) {
	s, err := r.Bytes(4)
	if err != nil {
		return 0, err
	}
	return r.order.Uint32(s), nil
}

func (r *Reader) I32() (int32, error) {
	v, err := r.U32()
	return int32(v), err
}

func (r *Reader) U64() (uint64, error) {
	s, err := r.Bytes(8)
	if err != nil {
		return 0, err
	}
	return r.order.Uint64(s), nil
}

// Char reads a char[n] field and returns its text up to the first NUL.
func (r *Reader) Char(n int) (string, error) {
	s, err := r.Bytes(n)
	if err != nil {
		return "", err
	}
	return decodeChar(s)
}

// WChar reads a wchar[n] field (2n bytes) and returns its text up to the first NUL.
func (r *Reader) WChar(n int) (string, error) {
	s, err := r.Bytes(2 * n)
	if err != nil {
		return "", err
	}
	return decodeWChar(s, r.order)
}
