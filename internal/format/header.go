package format

import (
	"encoding/binary"
	"fmt"
)

// Signature is the four raw bytes identifying a chunk type.
type Signature [SignatureSize]byte

// String returns the signature as text, e.g. "_blf".
func (s Signature) String() string { return string(s[:]) }

// MarshalText implements encoding.TextMarshaler.
func (s Signature) MarshalText() ([]byte, error) { return s[:], nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Signature) UnmarshalText(b []byte) error {
	if len(b) != SignatureSize {
		return fmt.Errorf("format: signature %q must be %d bytes", b, SignatureSize)
	}
	copy(s[:], b)
	return nil
}

// Version is a chunk's major.minor schema version.
type Version struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

func (v Version) String() string { return fmt.Sprintf("%d.%d", v.Major, v.Minor) }

// Header is the decoded 12-byte chunk header.
type Header struct {
	Signature Signature
	Version   Version
	Size      uint32
}

// BodySize returns the number of body bytes following the header. It is only
// meaningful for headers that passed ParseHeader with a non-zero size.
func (h Header) BodySize() int {
	if h.Size < HeaderSize {
		return 0
	}
	return int(h.Size - HeaderSize)
}

// Matches reports whether the header carries the given identity.
func (h Header) Matches(sig Signature, v Version) bool {
	return h.Signature == sig && h.Version == v
}

// ParseHeader decodes a chunk header from the start of b. A Size of
// EndOfChunks is returned as-is so scanners can detect the sentinel.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, ErrTruncatedHeader
	}
	h := PeekHeader(b)
	if h.Size != EndOfChunks && h.Size < HeaderSize {
		return Header{}, fmt.Errorf("%s chunk size %d: %w", h.Signature, h.Size, ErrChunkSize)
	}
	return h, nil
}

// PeekHeader decodes the header fields without validation. b must hold at
// least HeaderSize bytes.
func PeekHeader(b []byte) Header {
	var h Header
	copy(h.Signature[:], b[SignatureOffset:SignatureOffset+SignatureSize])
	h.Version.Major = binary.BigEndian.Uint16(b[MajorVersionOffset:])
	h.Version.Minor = binary.BigEndian.Uint16(b[MinorVersionOffset:])
	h.Size = binary.BigEndian.Uint32(b[ChunkSizeOffset:])
	return h
}

// Encode returns the 12-byte wire form of h.
func (h Header) Encode() [HeaderSize]byte {
	var out [HeaderSize]byte
	copy(out[SignatureOffset:], h.Signature[:])
	binary.BigEndian.PutUint16(out[MajorVersionOffset:], h.Version.Major)
	binary.BigEndian.PutUint16(out[MinorVersionOffset:], h.Version.Minor)
	binary.BigEndian.PutUint32(out[ChunkSizeOffset:], h.Size)
	return out
}

// AppendTo appends the wire form of h to dst.
func (h Header) AppendTo(dst []byte) []byte {
	enc := h.Encode()
	return append(dst, enc[:]...)
}
