package chunks

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/internal/buf"
	"github.com/joshuapare/blfkit/internal/format"
)

const contentHeaderBodySize = 4 + MetadataSize

// ContentHeader (`chdr` 9.2) precedes the content it describes.
//
//	Offset  Size  Field
//	0x00    2     build_number
//	0x02    2     map_minor_version
//	0x04    0xF8  metadata
type ContentHeader struct {
	BuildNumber     uint16              `json:"build_number"`
	MapMinorVersion uint16              `json:"map_minor_version"`
	Metadata        ContentItemMetadata `json:"metadata"`
}

var _ blf.Chunk = (*ContentHeader)(nil)

func (*ContentHeader) Signature() blf.Signature { return format.ContentHeaderSignature }
func (*ContentHeader) Version() blf.Version     { return blf.Version{Major: 9, Minor: 2} }

func (c *ContentHeader) MarshalBody() ([]byte, error) {
	w := buf.NewWriter(contentHeaderBodySize, binary.BigEndian)
	w.U16(c.BuildNumber)
	w.U16(c.MapMinorVersion)
	if err := c.Metadata.encodeBytes(w); err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}
	return w.Bytes(), nil
}

func (c *ContentHeader) UnmarshalBody(body []byte) error {
	if len(body) != contentHeaderBodySize {
		return fmt.Errorf("%d bytes, want %d: %w", len(body), contentHeaderBodySize, ErrBodySize)
	}
	r := buf.NewReader(body, binary.BigEndian)
	var err error
	if c.BuildNumber, err = r.U16(); err != nil {
		return err
	}
	if c.MapMinorVersion, err = r.U16(); err != nil {
		return err
	}
	if err := c.Metadata.decodeBytes(r); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	return nil
}
