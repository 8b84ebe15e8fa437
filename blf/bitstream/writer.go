package bitstream

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/joshuapare/blfkit/blf/quantize"
)

// Writer packs values into a fixed-capacity buffer.
type Writer struct {
	cfg   config
	buf   []byte
	pos   int // bit position
	state state
}

// NewWriter returns an idle writer that can hold capacity bytes.
func NewWriter(capacity int, opts ...Option) *Writer {
	if capacity < 0 {
		capacity = 0
	}
	return &Writer{cfg: newConfig(opts), buf: make([]byte, capacity)}
}

// Begin moves the writer from idle to writing.
func (w *Writer) Begin() error {
	if w.state != stateIdle {
		return stateError("begin writing", w.state)
	}
	w.state = stateActive
	return nil
}

// Finish closes the stream and returns the bytes written, padded with zero
// bits to a whole byte.
func (w *Writer) Finish() ([]byte, error) {
	if w.state != stateActive {
		return nil, stateError("finish writing", w.state)
	}
	w.state = stateFinished
	return w.buf[:(w.pos+7)/8], nil
}

// Position returns the number of bits written.
func (w *Writer) Position() int { return w.pos }

func (w *Writer) reserve(op string, bits int) error {
	if w.state != stateActive {
		return stateError(op, w.state)
	}
	if w.pos+bits > len(w.buf)*8 {
		return fmt.Errorf("%s: %d bits at bit %d of %d: %w", op, bits, w.pos, len(w.buf)*8, ErrOverflow)
	}
	return nil
}

// put emits the low n bits of v in fill order. Capacity is checked by callers.
func (w *Writer) put(v uint64, n int) {
	for n > 0 {
		idx := w.pos >> 3
		used := w.pos & 7
		space := 8 - used
		take := min(space, n)
		if w.cfg.fill == MSBFirst {
			chunk := byte(v>>uint(n-take)) & byte(lowBits(take))
			w.buf[idx] |= chunk << uint(space-take)
		} else {
			chunk := byte(v) & byte(lowBits(take))
			w.buf[idx] |= chunk << uint(used)
			v >>= uint(take)
		}
		n -= take
		w.pos += take
	}
}

func (w *Writer) writeValue(op string, v uint64, bits int) error {
	if err := checkWidth(bits); err != nil {
		return err
	}
	if err := w.reserve(op, bits); err != nil {
		return err
	}
	if w.cfg.order == LittleEndian && bits > 8 {
		for bits > 0 {
			k := min(8, bits)
			w.put(v&lowBits(k), k)
			v >>= 8
			bits -= k
		}
		return nil
	}
	w.put(v, bits)
	return nil
}

// WriteBool writes a single bit.
func (w *Writer) WriteBool(v bool) error {
	var b uint64
	if v {
		b = 1
	}
	return w.writeValue("write bool", b, 1)
}

// WriteInteger writes v as an unsigned field of the given width.
func (w *Writer) WriteInteger(v uint64, bits int) error {
	if err := checkWidth(bits); err != nil {
		return err
	}
	if v > lowBits(bits) {
		return fmt.Errorf("%d does not fit in %d bits: %w", v, bits, ErrValueRange)
	}
	return w.writeValue("write integer", v, bits)
}

// WriteSignedInteger writes v as a two's-complement field of the given width.
func (w *Writer) WriteSignedInteger(v int64, bits int) error {
	if err := checkWidth(bits); err != nil {
		return err
	}
	if bits < 64 {
		lo := -(int64(1) << uint(bits-1))
		hi := int64(1)<<uint(bits-1) - 1
		if v < lo || v > hi {
			return fmt.Errorf("%d does not fit in %d signed bits: %w", v, bits, ErrValueRange)
		}
	}
	return w.writeValue("write signed integer", uint64(v)&lowBits(bits), bits)
}

// WriteIndex writes an index in [-1, max) by storing index+1, so -1 ("none")
// survives an unsigned field.
func (w *Writer) WriteIndex(v, max, bits int) error {
	if v < -1 || v >= max {
		return fmt.Errorf("index %d outside [-1,%d): %w", v, max, ErrValueRange)
	}
	return w.WriteInteger(uint64(v+1), bits)
}

// WriteFloat32 writes the raw IEEE-754 bits of v.
func (w *Writer) WriteFloat32(v float32) error {
	return w.writeValue("write float", uint64(math.Float32bits(v)), 32)
}

// WriteQuantized writes v quantized through q.
func (w *Writer) WriteQuantized(v float32, q quantize.QuantizedRange) error {
	return w.WriteInteger(uint64(q.Encode(v)), q.Bits)
}

// WriteUnitVector writes the direction of v in bits bits.
func (w *Writer) WriteUnitVector(v quantize.Vector3, bits int) error {
	if !quantize.ValidUnitVectorBits(bits) {
		return fmt.Errorf("unit vector in %d bits: %w", bits, ErrBitWidth)
	}
	if v.Length() == 0 || math.IsNaN(float64(v.Length())) {
		return fmt.Errorf("unit vector %+v: %w", v, ErrValueRange)
	}
	return w.WriteInteger(quantize.UnitVector3(v, bits), bits)
}

// WritePosition writes p quantized inside bounds, one field per axis.
func (w *Writer) WritePosition(p quantize.Point3, bounds quantize.Bounds3, axisBits [3]int) error {
	for i, code := range quantize.Position(p, bounds, axisBits) {
		if err := w.WriteInteger(uint64(code), axisBits[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteStringUTF8 writes s as NUL-terminated bytes. capacity counts the
// terminator; a longer string is an error.
func (w *Writer) WriteStringUTF8(s string, capacity int) error {
	if len(s)+1 > capacity {
		return fmt.Errorf("string of %d bytes exceeds capacity %d: %w", len(s), capacity, ErrValueRange)
	}
	if err := w.reserve("write string", 8*(len(s)+1)); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		w.put(uint64(s[i]), 8)
	}
	w.put(0, 8)
	return nil
}

// WriteStringWchar writes s as NUL-terminated UTF-16 code units. capacity
// counts code units including the terminator.
func (w *Writer) WriteStringWchar(s string, capacity int) error {
	units := utf16.Encode([]rune(s))
	if len(units)+1 > capacity {
		return fmt.Errorf("string of %d code units exceeds capacity %d: %w", len(units), capacity, ErrValueRange)
	}
	if err := w.reserve("write wide string", 16*(len(units)+1)); err != nil {
		return err
	}
	for _, u := range units {
		if err := w.writeValue("write wide string", uint64(u), 16); err != nil {
			return err
		}
	}
	return w.writeValue("write wide string", 0, 16)
}

// WriteRawData writes the first bits bits of data: whole bytes first, then
// the low bits%8 bits of the following byte.
func (w *Writer) WriteRawData(data []byte, bits int) error {
	if bits < 0 || len(data)*8 < bits {
		return fmt.Errorf("raw data of %d bytes cannot supply %d bits: %w", len(data), bits, ErrValueRange)
	}
	if err := w.reserve("write raw data", bits); err != nil {
		return err
	}
	whole := bits / 8
	for _, b := range data[:whole] {
		w.put(uint64(b), 8)
	}
	if rem := bits % 8; rem > 0 {
		w.put(uint64(data[whole])&lowBits(rem), rem)
	}
	return nil
}
