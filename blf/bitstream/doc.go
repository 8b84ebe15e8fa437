// Package bitstream implements the bit-addressable reader and writer used by
// packed gameplay chunks (map variants, game variants).
//
// Values are written at arbitrary bit widths with no byte alignment. Two
// orthogonal settings control the layout and must match between writer and
// reader:
//
//   - ByteOrder: for values wider than 8 bits, BigEndian emits the most
//     significant bits first; LittleEndian emits 8-bit groups starting with the
//     least significant group (the final group carries the remaining bits).
//   - FillOrder: MSBFirst fills each byte from bit 7 down to bit 0;
//     LSBFirst (used by some pre-release builds) fills from bit 0 up and emits
//     a value's low bits first.
//
// Both types are state machines: a stream must be started with Begin and is
// closed by Finish. Any read or write outside that window fails with
// ErrInvalidState instead of touching the buffer.
//
// Example:
//
//	w := bitstream.NewWriter(1024)
//	_ = w.Begin()
//	_ = w.WriteInteger(5, 3)
//	_ = w.WriteBool(true)
//	data, _ := w.Finish()
package bitstream
