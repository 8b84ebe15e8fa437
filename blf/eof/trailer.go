package eof

import (
	"crypto/sha1" //nolint:gosec // the file format mandates SHA-1
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"math"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/internal/format"
)

// Signature and Version shared by every trailer kind.
var (
	Signature = format.EndOfFileSignature
	Version   = blf.Version{Major: 1, Minor: 1}
)

// crcSeed is the running value the title's CRC starts from.
const crcSeed = 0xFFFFFFFF

const fixedSize = 5

// Trailer is implemented by every authentication kind.
type Trailer interface {
	blf.Chunk
	blf.BeforeWriter
	blf.AfterReader
	Kind() Kind
	Size() uint32
}

var (
	_ Trailer = (*None)(nil)
	_ Trailer = (*CRC32)(nil)
	_ Trailer = (*SHA1)(nil)
	_ Trailer = (*RSA)(nil)
)

// New returns an empty trailer of the given kind.
func New(k Kind) (Trailer, error) {
	switch k {
	case KindNone:
		return &None{}, nil
	case KindCRC32:
		return &CRC32{}, nil
	case KindSHA1:
		return &SHA1{}, nil
	case KindRSA:
		return &RSA{}, nil
	default:
		return nil, fmt.Errorf("eof: %s: %w", k, ErrUnknownKind)
	}
}

// Checksum returns the CRC-32 a CRC32 trailer stores for data.
func Checksum(data []byte) uint32 {
	return crc32.Update(crcSeed, crc32.IEEETable, data)
}

// Digest returns the SHA-1 a SHA1 trailer stores for data.
func Digest(data []byte) [sha1.Size]byte {
	return sha1.Sum(data) //nolint:gosec // format-mandated
}

func fileSize(prev []byte) (uint32, error) {
	if uint64(len(prev)) > math.MaxUint32 {
		return 0, fmt.Errorf("eof: %d preceding bytes: %w", len(prev), ErrFileSize)
	}
	return uint32(len(prev)), nil
}

func checkSize(stored uint32, prev []byte) error {
	if uint64(stored) != uint64(len(prev)) {
		return fmt.Errorf("eof: file_size %d, trailer at offset %d: %w", stored, len(prev), ErrFileSize)
	}
	return nil
}

func marshal(size uint32, k Kind, payload []byte) []byte {
	out := make([]byte, fixedSize, fixedSize+len(payload))
	binary.BigEndian.PutUint32(out, size)
	out[4] = byte(k)
	return append(out, payload...)
}

// unmarshal checks the discriminant and length and returns size and payload.
func unmarshal(body []byte, k Kind) (uint32, []byte, error) {
	if len(body) < fixedSize {
		return 0, nil, fmt.Errorf("eof: %d byte body: %w", len(body), ErrBodySize)
	}
	if got := Kind(body[4]); got != k {
		return 0, nil, fmt.Errorf("eof: discriminant %s in a %s trailer: %w", got, k, ErrUnknownKind)
	}
	if len(body) != fixedSize+k.PayloadSize() {
		return 0, nil, fmt.Errorf("eof: %s trailer with %d byte body: %w", k, len(body), ErrBodySize)
	}
	return binary.BigEndian.Uint32(body), body[fixedSize:], nil
}

// None carries only the file size.
type None struct {
	FileSize uint32 `json:"-"`
}

func (*None) Signature() blf.Signature { return Signature }
func (*None) Version() blf.Version     { return Version }
func (*None) Kind() Kind               { return KindNone }
func (t *None) Size() uint32           { return t.FileSize }

func (t *None) MarshalBody() ([]byte, error) { return marshal(t.FileSize, KindNone, nil), nil }

func (t *None) UnmarshalBody(body []byte) error {
	size, _, err := unmarshal(body, KindNone)
	t.FileSize = size
	return err
}

func (t *None) BeforeWrite(prev []byte) (err error) {
	t.FileSize, err = fileSize(prev)
	return err
}

func (t *None) AfterRead(prev []byte) error { return checkSize(t.FileSize, prev) }

// CRC32 carries the file size and a CRC-32 of the preceding bytes.
type CRC32 struct {
	FileSize uint32 `json:"-"`
	Checksum uint32 `json:"-"`
}

func (*CRC32) Signature() blf.Signature { return Signature }
func (*CRC32) Version() blf.Version     { return Version }
func (*CRC32) Kind() Kind               { return KindCRC32 }
func (t *CRC32) Size() uint32           { return t.FileSize }

func (t *CRC32) MarshalBody() ([]byte, error) {
	return marshal(t.FileSize, KindCRC32, binary.BigEndian.AppendUint32(nil, t.Checksum)), nil
}

func (t *CRC32) UnmarshalBody(body []byte) error {
	size, payload, err := unmarshal(body, KindCRC32)
	if err != nil {
		return err
	}
	t.FileSize = size
	t.Checksum = binary.BigEndian.Uint32(payload)
	return nil
}

func (t *CRC32) BeforeWrite(prev []byte) (err error) {
	if t.FileSize, err = fileSize(prev); err != nil {
		return err
	}
	t.Checksum = Checksum(prev)
	return nil
}

func (t *CRC32) AfterRead(prev []byte) error {
	if want := Checksum(prev); want != t.Checksum {
		return fmt.Errorf("eof: crc32 %#08x, computed %#08x: %w", t.Checksum, want, ErrChecksum)
	}
	return checkSize(t.FileSize, prev)
}

// SHA1 carries the file size and a SHA-1 of the preceding bytes.
type SHA1 struct {
	FileSize uint32         `json:"-"`
	Hash     [sha1.Size]byte `json:"-"`
}

func (*SHA1) Signature() blf.Signature { return Signature }
func (*SHA1) Version() blf.Version     { return Version }
func (*SHA1) Kind() Kind               { return KindSHA1 }
func (t *SHA1) Size() uint32           { return t.FileSize }

func (t *SHA1) MarshalBody() ([]byte, error) { return marshal(t.FileSize, KindSHA1, t.Hash[:]), nil }

func (t *SHA1) UnmarshalBody(body []byte) error {
	size, payload, err := unmarshal(body, KindSHA1)
	if err != nil {
		return err
	}
	t.FileSize = size
	copy(t.Hash[:], payload)
	return nil
}

func (t *SHA1) BeforeWrite(prev []byte) (err error) {
	if t.FileSize, err = fileSize(prev); err != nil {
		return err
	}
	t.Hash = Digest(prev)
	return nil
}

func (t *SHA1) AfterRead(prev []byte) error {
	if want := Digest(prev); want != t.Hash {
		return fmt.Errorf("eof: sha1 %x, computed %x: %w", t.Hash, want, ErrChecksum)
	}
	return checkSize(t.FileSize, prev)
}

// RSA carries the file size and a 2048-bit signature. Signatures are only
// ever read; producing one needs a private key this package does not have.
type RSA struct {
	FileSize     uint32    `json:"-"`
	RSASignature [256]byte `json:"-"`
}

func (*RSA) Signature() blf.Signature { return Signature }
func (*RSA) Version() blf.Version     { return Version }
func (*RSA) Kind() Kind               { return KindRSA }
func (t *RSA) Size() uint32           { return t.FileSize }

func (t *RSA) MarshalBody() ([]byte, error) { return marshal(t.FileSize, KindRSA, t.RSASignature[:]), nil }

func (t *RSA) UnmarshalBody(body []byte) error {
	size, payload, err := unmarshal(body, KindRSA)
	if err != nil {
		return err
	}
	t.FileSize = size
	copy(t.RSASignature[:], payload)
	return nil
}

func (*RSA) BeforeWrite([]byte) error { return ErrSigning }

func (t *RSA) AfterRead(prev []byte) error { return checkSize(t.FileSize, prev) }
