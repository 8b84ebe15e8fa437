package bitstream

import (
	"fmt"

	"github.com/joshuapare/blfkit/pkg/types"
)

// ByteOrder selects how values wider than a byte are laid out.
type ByteOrder int

const (
	BigEndian ByteOrder = iota
	LittleEndian
)

func (o ByteOrder) String() string {
	if o == LittleEndian {
		return "little-endian"
	}
	return "big-endian"
}

// FillOrder selects which bit of a byte is consumed first.
type FillOrder int

const (
	MSBFirst FillOrder = iota
	LSBFirst
)

func (f FillOrder) String() string {
	if f == LSBFirst {
		return "lsb-first"
	}
	return "msb-first"
}

type state int

const (
	stateIdle state = iota
	stateActive
	stateFinished
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateActive:
		return "active"
	default:
		return "finished"
	}
}

type config struct {
	order ByteOrder
	fill  FillOrder
}

// Option configures a Reader or Writer.
type Option func(*config)

// WithByteOrder sets the multi-byte layout. The default is BigEndian.
func WithByteOrder(o ByteOrder) Option {
	return func(c *config) { c.order = o }
}

// WithFillOrder sets the in-byte bit order. The default is MSBFirst.
func WithFillOrder(f FillOrder) Option {
	return func(c *config) { c.fill = f }
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

var (
	// ErrInvalidState indicates an operation outside the Begin/Finish window.
	ErrInvalidState = &types.Error{Kind: types.ErrKindEncoding, Msg: "bitstream: invalid stream state"}
	// ErrOverflow indicates a write past the writer's capacity.
	ErrOverflow = &types.Error{Kind: types.ErrKindEncoding, Msg: "bitstream: write past capacity"}
	// ErrEndOfStream indicates a read past the end of the data.
	ErrEndOfStream = &types.Error{Kind: types.ErrKindStructural, Msg: "bitstream: read past end of stream", Err: types.ErrTruncated}
	// ErrBitWidth indicates a width outside 1..64.
	ErrBitWidth = &types.Error{Kind: types.ErrKindEncoding, Msg: "bitstream: invalid bit width"}
	// ErrValueRange indicates a value that does not fit its field.
	ErrValueRange = &types.Error{Kind: types.ErrKindEncoding, Msg: "bitstream: value out of range", Err: types.ErrInvalidEncoding}
	// ErrLengthMismatch indicates a compressed block inflated to the wrong size.
	ErrLengthMismatch = &types.Error{Kind: types.ErrKindEncoding, Msg: "bitstream: decompressed length mismatch", Err: types.ErrInvalidEncoding}
)

func stateError(op string, s state) error {
	return fmt.Errorf("%s while %s: %w", op, s, ErrInvalidState)
}

func checkWidth(bits int) error {
	if bits < 1 || bits > 64 {
		return fmt.Errorf("%d bits: %w", bits, ErrBitWidth)
	}
	return nil
}

func lowBits(n int) uint64 {
	if n >= 64 {
		return ^uint64(0)
	}
	return uint64(1)<<uint(n) - 1
}
