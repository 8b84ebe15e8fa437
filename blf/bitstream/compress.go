package bitstream

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// SubstreamLayout describes an embedded, optionally compressed byte buffer:
//
//	is_compressed      1 bit
//	declared_length    LengthBits
//	if compressed:
//	  compressed_length  CompressedLengthBits
//	  zlib stream        8 * compressed_length bits
//	else:
//	  raw bytes          8 * declared_length bits
type SubstreamLayout struct {
	LengthBits           int
	CompressedLengthBits int
	// MaxLength bounds declared_length; zero means the field width is the only limit.
	MaxLength int
}

func (l SubstreamLayout) maxLength() uint64 {
	limit := lowBits(l.LengthBits)
	if l.MaxLength > 0 && uint64(l.MaxLength) < limit {
		limit = uint64(l.MaxLength)
	}
	return limit
}

// WriteCompressed writes data as an embedded sub-buffer, deflating it when
// compress is set.
func (w *Writer) WriteCompressed(data []byte, layout SubstreamLayout, compress bool) error {
	if uint64(len(data)) > layout.maxLength() {
		return fmt.Errorf("sub-buffer of %d bytes exceeds %d: %w", len(data), layout.maxLength(), ErrValueRange)
	}
	if err := w.WriteBool(compress); err != nil {
		return err
	}
	if err := w.WriteInteger(uint64(len(data)), layout.LengthBits); err != nil {
		return err
	}
	payload := data
	if compress {
		z, err := deflate(data)
		if err != nil {
			return err
		}
		if err := w.WriteInteger(uint64(len(z)), layout.CompressedLengthBits); err != nil {
			return fmt.Errorf("compressed length: %w", err)
		}
		payload = z
	}
	return w.WriteRawData(payload, 8*len(payload))
}

// ReadCompressed reads a sub-buffer written by WriteCompressed. The result
// always has exactly the declared length.
func (r *Reader) ReadCompressed(layout SubstreamLayout) ([]byte, error) {
	compressed, err := r.ReadBool()
	if err != nil {
		return nil, err
	}
	declared, err := r.ReadInteger(layout.LengthBits)
	if err != nil {
		return nil, err
	}
	if declared > layout.maxLength() {
		return nil, fmt.Errorf("declared length %d exceeds %d: %w", declared, layout.maxLength(), ErrValueRange)
	}
	if !compressed {
		return r.ReadRawData(8 * int(declared))
	}
	clen, err := r.ReadInteger(layout.CompressedLengthBits)
	if err != nil {
		return nil, err
	}
	if clen*8 > uint64(r.BitsRemaining()) {
		return nil, fmt.Errorf("compressed length %d: %w", clen, ErrEndOfStream)
	}
	z, err := r.ReadRawData(8 * int(clen))
	if err != nil {
		return nil, err
	}
	return inflate(z, int(declared))
}

func deflate(data []byte) ([]byte, error) {
	var out bytes.Buffer
	zw, err := zlib.NewWriterLevel(&out, zlib.BestCompression)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// inflate decompresses z into a buffer pre-sized to declared bytes. Output
// shorter or longer than declared is an error.
func inflate(z []byte, declared int) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(z))
	if err != nil {
		return nil, fmt.Errorf("inflate: %v: %w", err, ErrLengthMismatch)
	}
	defer zr.Close()

	out := make([]byte, declared)
	if _, err := io.ReadFull(zr, out); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("inflated fewer than %d bytes: %w", declared, ErrLengthMismatch)
		}
		return nil, fmt.Errorf("inflate: %v: %w", err, ErrLengthMismatch)
	}
	var extra [1]byte
	if n, _ := zr.Read(extra[:]); n > 0 {
		return nil, fmt.Errorf("inflated more than %d bytes: %w", declared, ErrLengthMismatch)
	}
	return out, nil
}
