package chunks

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/internal/buf"
	"github.com/joshuapare/blfkit/internal/format"
)

const (
	authorProgramNameSize = 16
	authorBuildStringSize = 28
	authorNameSize        = 16
	authorBodySize        = authorProgramNameSize + 8 + authorBuildStringSize + authorNameSize
)

// Author (`athr` 3.1) records the program that produced a file.
//
//	Offset  Size  Field
//	0x00    16    program_name (char[16])
//	0x10    8     build_number
//	0x18    28    build_string (char[28])
//	0x34    16    author_name (char[16])
type Author struct {
	ProgramName string `json:"program_name"`
	BuildNumber uint64 `json:"build_number"`
	BuildString string `json:"build_string"`
	AuthorName  string `json:"author_name"`
}

var _ blf.Chunk = (*Author)(nil)

func (*Author) Signature() blf.Signature { return format.AuthorSignature }
func (*Author) Version() blf.Version     { return blf.Version{Major: 3, Minor: 1} }

func (c *Author) MarshalBody() ([]byte, error) {
	w := buf.NewWriter(authorBodySize, binary.BigEndian)
	if err := w.Char(c.ProgramName, authorProgramNameSize); err != nil {
		return nil, fmt.Errorf("program name: %w", err)
	}
	w.U64(c.BuildNumber)
	if err := w.Char(c.BuildString, authorBuildStringSize); err != nil {
		return nil, fmt.Errorf("build string: %w", err)
	}
	if err := w.Char(c.AuthorName, authorNameSize); err != nil {
		return nil, fmt.Errorf("author name: %w", err)
	}
	return w.Bytes(), nil
}

func (c *Author) UnmarshalBody(body []byte) error {
	if len(body) != authorBodySize {
		return fmt.Errorf("%d bytes, want %d: %w", len(body), authorBodySize, ErrBodySize)
	}
	r := buf.NewReader(body, binary.BigEndian)
	var err error
	if c.ProgramName, err = r.Char(authorProgramNameSize); err != nil {
		return err
	}
	if c.BuildNumber, err = r.U64(); err != nil {
		return err
	}
	if c.BuildString, err = r.Char(authorBuildStringSize); err != nil {
		return err
	}
	c.AuthorName, err = r.Char(authorNameSize)
	return err
}
