package buf

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/pkg/types"
)

func TestSliceAndHas(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4}
	got, ok := Slice(data, 1, 3)
	require.True(t, ok)
	require.Equal(t, []byte{1, 2, 3}, got)

	_, ok = Slice(data, 4, 2)
	require.False(t, ok, "range past the end")
	_, ok = Slice(data, -1, 1)
	require.False(t, ok, "negative offset")
	_, ok = Slice(data, 1, -1)
	require.False(t, ok, "negative length")
	require.True(t, Has(data, 2, 1))
	require.False(t, Has(data, 2, 4))
}

func TestReaderWriterRoundTrip(t *testing.T) {
	for _, order := range []Order{binary.BigEndian, binary.LittleEndian} {
		w := NewWriter(64, order)
		w.U8(0xAB)
		w.I16(-2)
		w.U32(0xDEADBEEF)
		w.U64(0x0102030405060708)
		w.Bool(true)
		require.NoError(t, w.Char("test", 8))
		require.NoError(t, w.WChar("Valhalla", 16))

		r := NewReader(w.Bytes(), order)
		u8, err := r.U8()
		require.NoError(t, err)
		require.Equal(t, uint8(0xAB), u8)
		i16, err := r.I16()
		require.NoError(t, err)
		require.Equal(t, int16(-2), i16)
		u32, err := r.U32()
		require.NoError(t, err)
		require.Equal(t, uint32(0xDEADBEEF), u32)
		u64, err := r.U64()
		require.NoError(t, err)
		require.Equal(t, uint64(0x0102030405060708), u64)
		b, err := r.Bool()
		require.NoError(t, err)
		require.True(t, b)
		s, err := r.Char(8)
		require.NoError(t, err)
		require.Equal(t, "test", s)
		ws, err := r.WChar(16)
		require.NoError(t, err)
		require.Equal(t, "Valhalla", ws)
		require.Zero(t, r.Remaining())
	}
}

func TestWriterBigEndianLayout(t *testing.T) {
	w := NewWriter(0, binary.BigEndian)
	w.U32(0x01020304)
	require.NoError(t, w.WChar("A", 2))
	require.Equal(t, []byte{1, 2, 3, 4, 0, 'A', 0, 0}, w.Bytes())
}

func TestCharTooLong(t *testing.T) {
	w := NewWriter(0, binary.BigEndian)
	err := w.Char("this does not fit", 4)
	require.Error(t, err)
	require.True(t, types.IsKind(err, types.ErrKindEncoding))
	require.Zero(t, w.Len(), "nothing is written on failure")

	err = w.WChar("abc", 2)
	require.Error(t, err)
}

func TestCharFullWidthWithoutTerminator(t *testing.T) {
	w := NewWriter(0, binary.BigEndian)
	require.NoError(t, w.Char("abcd", 4))
	s, err := NewReader(w.Bytes(), binary.BigEndian).Char(4)
	require.NoError(t, err)
	require.Equal(t, "abcd", s)
}

func TestReaderTruncated(t *testing.T) {
	r := NewReader([]byte{1, 2, 3}, binary.BigEndian)
	_, err := r.U32()
	require.ErrorIs(t, err, types.ErrTruncated)
	require.Equal(t, 0, r.Offset(), "failed read must not advance")

	require.NoError(t, r.Skip(2))
	_, err = r.U16()
	require.ErrorIs(t, err, types.ErrTruncated)
}
