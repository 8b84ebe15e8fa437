package chunks

import "github.com/joshuapare/blfkit/blf/bitstream"

// bitReader keeps the first read error so flat field lists stay readable.
// Once err is set every read returns the zero value.
type bitReader struct {
	r   *bitstream.Reader
	err error
}

func (b *bitReader) unsigned(bits int) uint64 {
	if b.err != nil {
		return 0
	}
	var v uint64
	v, b.err = b.r.ReadInteger(bits)
	return v
}

func (b *bitReader) signed(bits int) int64 {
	if b.err != nil {
		return 0
	}
	var v int64
	v, b.err = b.r.ReadSignedInteger(bits)
	return v
}

func (b *bitReader) flag() bool {
	if b.err != nil {
		return false
	}
	var v bool
	v, b.err = b.r.ReadBool()
	return v
}

func (b *bitReader) f32() float32 {
	if b.err != nil {
		return 0
	}
	var v float32
	v, b.err = b.r.ReadFloat32()
	return v
}

func (b *bitReader) index(max, bits int) int {
	if b.err != nil {
		return 0
	}
	var v int
	v, b.err = b.r.ReadIndex(max, bits)
	return v
}

func (b *bitReader) utf8(capacity int) string {
	if b.err != nil {
		return ""
	}
	var v string
	v, b.err = b.r.ReadStringUTF8(capacity)
	return v
}

func (b *bitReader) wchar(capacity int) string {
	if b.err != nil {
		return ""
	}
	var v string
	v, b.err = b.r.ReadStringWchar(capacity)
	return v
}

// steps runs fns in order and returns the first error.
func steps(fns ...func() error) error {
	for _, fn := range fns {
		if err := fn(); err != nil {
			return err
		}
	}
	return nil
}

// makeN returns nil for n == 0 so decoded empty lists compare equal to unset ones.
func makeN[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, n)
}
