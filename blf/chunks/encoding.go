package chunks

import (
	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/blf/reference"
)

// Encoding is the per-build wire configuration of a bit-packed body. The zero
// value is big-endian, most significant bit first, with the release reference
// layout and uncompressed string tables.
type Encoding struct {
	ByteOrder       bitstream.ByteOrder
	FillOrder       bitstream.FillOrder
	References      *reference.Layout
	CompressStrings bool
}

func (e Encoding) options() []bitstream.Option {
	return []bitstream.Option{bitstream.WithByteOrder(e.ByteOrder), bitstream.WithFillOrder(e.FillOrder)}
}

func (e Encoding) layout() *reference.Layout {
	if e.References == nil {
		return &reference.ReachRelease
	}
	return e.References
}

func (e Encoding) writer(capacity int) (*bitstream.Writer, error) {
	w := bitstream.NewWriter(capacity, e.options()...)
	return w, w.Begin()
}

func (e Encoding) reader(body []byte) (*bitstream.Reader, error) {
	r := bitstream.NewReader(body, e.options()...)
	return r, r.Begin()
}
