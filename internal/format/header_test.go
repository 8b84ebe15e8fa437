package format

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/pkg/types"
)

func TestParseHeaderSuccess(t *testing.T) {
	raw := []byte{'_', 'b', 'l', 'f', 0x00, 0x01, 0x00, 0x02, 0x00, 0x00, 0x00, 0x30}
	hdr, err := ParseHeader(raw)
	require.NoError(t, err)
	require.Equal(t, StartOfFileSignature, hdr.Signature)
	require.Equal(t, Version{Major: 1, Minor: 2}, hdr.Version)
	require.Equal(t, uint32(0x30), hdr.Size)
	require.Equal(t, 0x30-HeaderSize, hdr.BodySize())
	require.True(t, hdr.Matches(StartOfFileSignature, Version{1, 2}))
	require.False(t, hdr.Matches(StartOfFileSignature, Version{1, 1}))
}

func TestHeaderEncodeRoundTrip(t *testing.T) {
	in := Header{Signature: MapVariantSignature, Version: Version{12, 1}, Size: 0xE09C}
	enc := in.Encode()
	out, err := ParseHeader(enc[:])
	require.NoError(t, err)
	require.Equal(t, in, out)
	require.Equal(t, "mvar", out.Signature.String())
	require.Equal(t, enc[:], in.AppendTo(nil))
}

func TestParseHeaderErrors(t *testing.T) {
	_, err := ParseHeader([]byte{'_', 'e', 'o', 'f'})
	require.ErrorIs(t, err, ErrTruncatedHeader)
	require.ErrorIs(t, err, types.ErrTruncated)
	require.True(t, types.IsKind(err, types.ErrKindStructural))

	small := Header{Signature: EndOfFileSignature, Version: Version{1, 1}, Size: 4}.Encode()
	_, err = ParseHeader(small[:])
	require.ErrorIs(t, err, ErrChunkSize)
}

func TestParseHeaderEndSentinel(t *testing.T) {
	raw := make([]byte, HeaderSize)
	hdr, err := ParseHeader(raw)
	require.NoError(t, err)
	require.Equal(t, uint32(EndOfChunks), hdr.Size)
	require.Zero(t, hdr.BodySize())
}

func TestSignatureText(t *testing.T) {
	var s Signature
	require.NoError(t, s.UnmarshalText([]byte("chdr")))
	require.Equal(t, ContentHeaderSignature, s)
	require.Error(t, s.UnmarshalText([]byte("toolong")))
}
