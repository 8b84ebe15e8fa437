package bitstream

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/joshuapare/blfkit/blf/quantize"
)

// Reader unpacks values from a byte slice.
type Reader struct {
	cfg   config
	buf   []byte
	pos   int
	state state
}

// NewReader returns an idle reader over data.
func NewReader(data []byte, opts ...Option) *Reader {
	return &Reader{cfg: newConfig(opts), buf: data}
}

// Begin moves the reader from idle to reading.
func (r *Reader) Begin() error {
	if r.state != stateIdle {
		return stateError("begin reading", r.state)
	}
	r.state = stateActive
	return nil
}

// Finish closes the stream.
func (r *Reader) Finish() error {
	if r.state != stateActive {
		return stateError("finish reading", r.state)
	}
	r.state = stateFinished
	return nil
}

// Position returns the number of bits consumed.
func (r *Reader) Position() int { return r.pos }

// BitsRemaining returns the number of unread bits.
func (r *Reader) BitsRemaining() int { return len(r.buf)*8 - r.pos }

func (r *Reader) require(op string, bits int) error {
	if r.state != stateActive {
		return stateError(op, r.state)
	}
	if bits > r.BitsRemaining() {
		return fmt.Errorf("%s: %d bits at bit %d of %d: %w", op, bits, r.pos, len(r.buf)*8, ErrEndOfStream)
	}
	return nil
}

func (r *Reader) get(n int) uint64 {
	var v uint64
	shift := 0
	for n > 0 {
		idx := r.pos >> 3
		used := r.pos & 7
		space := 8 - used
		take := min(space, n)
		if r.cfg.fill == MSBFirst {
			chunk := uint64(r.buf[idx]>>uint(space-take)) & lowBits(take)
			v = v<<uint(take) | chunk
		} else {
			chunk := uint64(r.buf[idx]>>uint(used)) & lowBits(take)
			v |= chunk << uint(shift)
			shift += take
		}
		n -= take
		r.pos += take
	}
	return v
}

func (r *Reader) readValue(op string, bits int) (uint64, error) {
	if err := checkWidth(bits); err != nil {
		return 0, err
	}
	if err := r.require(op, bits); err != nil {
		return 0, err
	}
	if r.cfg.order == LittleEndian && bits > 8 {
		var v uint64
		for shift := 0; bits > 0; shift += 8 {
			k := min(8, bits)
			v |= r.get(k) << uint(shift)
			bits -= k
		}
		return v, nil
	}
	return r.get(bits), nil
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.readValue("read bool", 1)
	return v == 1, err
}

// ReadInteger reads an unsigned field.
func (r *Reader) ReadInteger(bits int) (uint64, error) {
	return r.readValue("read integer", bits)
}

// ReadSignedInteger reads a two's-complement field and sign-extends it.
func (r *Reader) ReadSignedInteger(bits int) (int64, error) {
	v, err := r.readValue("read signed integer", bits)
	if err != nil {
		return 0, err
	}
	if bits < 64 && v&(uint64(1)<<uint(bits-1)) != 0 {
		v |= ^lowBits(bits)
	}
	return int64(v), nil
}

// ReadIndex reads a value written by WriteIndex. A stored zero yields -1.
func (r *Reader) ReadIndex(max, bits int) (int, error) {
	stored, err := r.ReadInteger(bits)
	if err != nil {
		return 0, err
	}
	if stored > uint64(max) {
		return 0, fmt.Errorf("index %d outside [-1,%d): %w", int64(stored)-1, max, ErrValueRange)
	}
	return int(stored) - 1, nil
}

// ReadFloat32 reads raw IEEE-754 bits.
func (r *Reader) ReadFloat32() (float32, error) {
	v, err := r.readValue("read float", 32)
	return math.Float32frombits(uint32(v)), err
}

// ReadQuantized reads a code and dequantizes it through q.
func (r *Reader) ReadQuantized(q quantize.QuantizedRange) (float32, error) {
	code, err := r.ReadInteger(q.Bits)
	if err != nil {
		return 0, err
	}
	return q.Decode(uint32(code)), nil
}

// ReadUnitVector reads a unit vector written with the same width.
func (r *Reader) ReadUnitVector(bits int) (quantize.Vector3, error) {
	if !quantize.ValidUnitVectorBits(bits) {
		return quantize.Vector3{}, fmt.Errorf("unit vector in %d bits: %w", bits, ErrBitWidth)
	}
	code, err := r.ReadInteger(bits)
	if err != nil {
		return quantize.Vector3{}, err
	}
	return quantize.DequantizeUnitVector3(code, bits)
}

// ReadPosition reads a position written by WritePosition.
func (r *Reader) ReadPosition(bounds quantize.Bounds3, axisBits [3]int) (quantize.Point3, error) {
	var codes [3]uint32
	for i := range codes {
		v, err := r.ReadInteger(axisBits[i])
		if err != nil {
			return quantize.Point3{}, err
		}
		codes[i] = uint32(v)
	}
	return quantize.DequantizePosition(codes, bounds, axisBits), nil
}

// ReadStringUTF8 reads a NUL-terminated byte string of at most capacity bytes
// including the terminator.
func (r *Reader) ReadStringUTF8(capacity int) (string, error) {
	out := make([]byte, 0, capacity)
	for range capacity {
		b, err := r.readValue("read string", 8)
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(out), nil
		}
		out = append(out, byte(b))
	}
	return "", fmt.Errorf("string not terminated within %d bytes: %w", capacity, ErrValueRange)
}

// ReadStringWchar reads a NUL-terminated UTF-16 string of at most capacity
// code units including the terminator.
func (r *Reader) ReadStringWchar(capacity int) (string, error) {
	units := make([]uint16, 0, capacity)
	for range capacity {
		u, err := r.readValue("read wide string", 16)
		if err != nil {
			return "", err
		}
		if u == 0 {
			return string(utf16.Decode(units)), nil
		}
		units = append(units, uint16(u))
	}
	return "", fmt.Errorf("wide string not terminated within %d code units: %w", capacity, ErrValueRange)
}

// ReadRawData reads bits bits written by WriteRawData.
func (r *Reader) ReadRawData(bits int) ([]byte, error) {
	if bits < 0 {
		return nil, fmt.Errorf("%d bits: %w", bits, ErrBitWidth)
	}
	if err := r.require("read raw data", bits); err != nil {
		return nil, err
	}
	out := make([]byte, (bits+7)/8)
	whole := bits / 8
	for i := range whole {
		out[i] = byte(r.get(8))
	}
	if rem := bits % 8; rem > 0 {
		out[whole] = byte(r.get(rem))
	}
	return out, nil
}
