package chunks

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/internal/buf"
	"github.com/joshuapare/blfkit/internal/format"
)

// ByteOrderMark is the value every start-of-file chunk carries, read as a
// signed big-endian 16-bit integer.
const ByteOrderMark int16 = -2 // 0xFFFE

const (
	startOfFileNameSize = 32
	startOfFileBodySize = 2 + startOfFileNameSize + 2
)

// StartOfFile (`_blf` 1.2) opens every BLF file.
//
//	Offset  Size  Field
//	0x00    2     byte_order_mark (0xFFFE)
//	0x02    32    name (char[32])
//	0x22    2     padding
type StartOfFile struct {
	Name string `json:"name"`
}

var _ blf.Chunk = (*StartOfFile)(nil)

func (*StartOfFile) Signature() blf.Signature { return format.StartOfFileSignature }
func (*StartOfFile) Version() blf.Version     { return blf.Version{Major: 1, Minor: 2} }

func (c *StartOfFile) MarshalBody() ([]byte, error) {
	w := buf.NewWriter(startOfFileBodySize, binary.BigEndian)
	w.I16(ByteOrderMark)
	if err := w.Char(c.Name, startOfFileNameSize); err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	w.Pad(2)
	return w.Bytes(), nil
}

func (c *StartOfFile) UnmarshalBody(body []byte) error {
	if len(body) != startOfFileBodySize {
		return fmt.Errorf("%d bytes, want %d: %w", len(body), startOfFileBodySize, ErrBodySize)
	}
	r := buf.NewReader(body, binary.BigEndian)
	bom, err := r.I16()
	if err != nil {
		return err
	}
	if bom != ByteOrderMark {
		return fmt.Errorf("mark %#04x: %w", uint16(bom), ErrByteOrderMark)
	}
	name, err := r.Char(startOfFileNameSize)
	if err != nil {
		return fmt.Errorf("name: %w", err)
	}
	c.Name = name
	return nil
}
