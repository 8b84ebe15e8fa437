package buf

import "encoding/binary"

// Order is satisfied by binary.BigEndian and binary.LittleEndian.
type Order interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Writer appends fixed-width fields to a growing byte slice.
type Writer struct {
	b     []byte
	order Order
}

// NewWriter returns a Writer with capacity hint n.
func NewWriter(n int, order Order) *Writer {
	return &Writer{b: make([]byte, 0, n), order: order}
}

// Bytes returns the encoded bytes.
func (w *Writer) Bytes() []byte { return w.b }

// Len returns the number of bytes written.
func (w *Writer) Len() int { return len(w.b) }

func (w *Writer) Raw(p []byte) { w.b = append(w.b, p...) }

// Pad appends n zero bytes.
func (w *Writer) Pad(n int) {
	for range n {
		w.b = append(w.b, 0)
	}
}

func (w *Writer) U8(v uint8) { w.b = append(w.b, v) }

func (w *Writer) I8(v int8) { w.U8(uint8(v)) }

func (w *Writer) Bool(v bool) {
	if v {
		w.U8(1)
		return
	}
	w.U8(0)
}

func (w *Writer) U16(v uint16) { w.b = w.order.AppendUint16(w.b, v) }

func (w *Writer) I16(v int16) { w.U16(uint16(v)) }

func (w *Writer) U32(v uint32) { w.b = w.order.AppendUint32(w.b, v) }

func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

func (w *Writer) U64(v uint64) { w.b = w.order.AppendUint64(w.b, v) }

// Char writes s as a NUL-padded char[n] field. A string that does not fit is
// an encoding error, never a silent truncation.
func (w *Writer) Char(s string, n int) error {
	enc, err := encodeChar(s, n)
	if err != nil {
		return err
	}
	w.Raw(enc)
	return nil
}

// WChar writes s as a NUL-padded wchar[n] field.
func (w *Writer) WChar(s string, n int) error {
	enc, err := encodeWChar(s, n, w.order)
	if err != nil {
		return err
	}
	w.Raw(enc)
	return nil
}
