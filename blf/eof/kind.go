package eof

import (
	"fmt"
	"strings"

	"github.com/joshuapare/blfkit/pkg/types"
)

// Kind is the authentication discriminant stored at body offset 4.
type Kind uint8

const (
	KindNone Kind = iota
	KindCRC32
	KindSHA1
	KindRSA
)

var kindNames = [...]string{
	KindNone:  "none",
	KindCRC32: "crc32",
	KindSHA1:  "sha1",
	KindRSA:   "rsa",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// PayloadSize returns the number of payload bytes following the discriminant.
func (k Kind) PayloadSize() int {
	switch k {
	case KindCRC32:
		return 4
	case KindSHA1:
		return 20
	case KindRSA:
		return 256
	default:
		return 0
	}
}

// ParseKind accepts the names returned by Kind.String, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("eof: authentication kind %q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("eof: %s: %w", k, ErrUnknownKind)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

var (
	// ErrUnknownKind indicates an authentication discriminant outside 0..3.
	ErrUnknownKind = &types.Error{Kind: types.ErrKindEncoding, Msg: "eof: unknown authentication kind", Err: types.ErrInvalidEncoding}
	// ErrChecksum indicates a CRC-32 or SHA-1 that does not match the preceding bytes.
	ErrChecksum = &types.Error{Kind: types.ErrKindIntegrity, Msg: "eof: checksum mismatch", Err: types.ErrIntegrity}
	// ErrFileSize indicates a file_size that does not match the trailer's offset.
	ErrFileSize = &types.Error{Kind: types.ErrKindIntegrity, Msg: "eof: file size mismatch", Err: types.ErrIntegrity}
	// ErrBodySize indicates a trailer body of the wrong length for its kind.
	ErrBodySize = &types.Error{Kind: types.ErrKindStructural, Msg: "eof: body size does not match authentication kind"}
	// ErrNotFound indicates data without an `_eof` 1.x chunk on its header chain.
	ErrNotFound = &types.Error{Kind: types.ErrKindStructural, Msg: "_eof chunk not found!", Err: types.ErrChunkNotFound}
	// ErrSigning is returned when asked to produce an RSA signature.
	ErrSigning = &types.Error{Kind: types.ErrKindUnsupported, Msg: "eof: rsa signing requires the title's private key", Err: types.ErrUnsupported}
)
