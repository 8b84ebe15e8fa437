package chunks

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/internal/buf"
	"github.com/joshuapare/blfkit/internal/format"
)

const (
	// RSASignatureSize is the size of one map signature.
	RSASignatureSize = 256
	// MaxManifestSignatures bounds MapManifest.Signatures.
	MaxManifestSignatures = 128
)

// RSASignature is a 2048-bit map signature. It marshals to hex in JSON.
type RSASignature [RSASignatureSize]byte

func (s RSASignature) MarshalText() ([]byte, error) {
	out := make([]byte, hex.EncodedLen(len(s)))
	hex.Encode(out, s[:])
	return out, nil
}

func (s *RSASignature) UnmarshalText(b []byte) error {
	if hex.DecodedLen(len(b)) != RSASignatureSize {
		return fmt.Errorf("rsa signature of %d hex digits: %w", len(b), ErrBodySize)
	}
	_, err := hex.Decode(s[:], b)
	return err
}

// MapManifest (`mapm` 1.1) lists the RSA signatures of the maps a title
// accepts.
//
//	Offset  Size      Field
//	0x00    4         map_count
//	0x04    256*n     signatures
type MapManifest struct {
	Signatures []RSASignature `json:"signatures"`
}

var _ blf.Chunk = (*MapManifest)(nil)

func (*MapManifest) Signature() blf.Signature { return format.MapManifestSignature }
func (*MapManifest) Version() blf.Version     { return blf.Version{Major: 1, Minor: 1} }

func (c *MapManifest) MarshalBody() ([]byte, error) {
	n := len(c.Signatures)
	if n > MaxManifestSignatures {
		return nil, fmt.Errorf("%d signatures, at most %d: %w", n, MaxManifestSignatures, ErrTooMany)
	}
	w := buf.NewWriter(4+n*RSASignatureSize, binary.BigEndian)
	w.U32(uint32(n))
	for i := range c.Signatures {
		w.Raw(c.Signatures[i][:])
	}
	return w.Bytes(), nil
}

func (c *MapManifest) UnmarshalBody(body []byte) error {
	r := buf.NewReader(body, binary.BigEndian)
	count, err := r.U32()
	if err != nil {
		return err
	}
	if count > MaxManifestSignatures {
		return fmt.Errorf("%d signatures, at most %d: %w", count, MaxManifestSignatures, ErrTooMany)
	}
	if want := int(count) * RSASignatureSize; r.Remaining() != want {
		return fmt.Errorf("%d signature bytes, want %d: %w", r.Remaining(), want, ErrBodySize)
	}
	c.Signatures = make([]RSASignature, count)
	for i := range c.Signatures {
		if err := r.Copy(c.Signatures[i][:]); err != nil {
			return err
		}
	}
	return nil
}
