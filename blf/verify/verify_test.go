package verify

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/pkg/types"
)

type authoredFile struct {
	Start  chunks.StartOfFile
	Author chunks.Author
	EOF    eof.CRC32
}

func (f *authoredFile) Slots() []blf.Chunk {
	return []blf.Chunk{&f.Start, &f.Author, &f.EOF}
}

// createValidMinimalFile returns _blf + athr + _eof(crc32).
func createValidMinimalFile(t *testing.T) []byte {
	t.Helper()
	f := &authoredFile{}
	f.Start.Name = "verify"
	f.Author.ProgramName = "blfkit"
	data, err := blf.Write(f)
	require.NoError(t, err)
	return data
}

// eofOffset is where the trailer starts in createValidMinimalFile's output.
const eofOffset = blf.HeaderSize + 36 + blf.HeaderSize + 68

// TestAllInvariants_Valid tests that a freshly written file passes.
func TestAllInvariants_Valid(t *testing.T) {
	data := createValidMinimalFile(t)
	require.NoError(t, AllInvariants(data))
	require.NoError(t, Authentication(data))
}

// TestStartOfFile_WrongSignature tests a file that does not open with _blf.
func TestStartOfFile_WrongSignature(t *testing.T) {
	data := createValidMinimalFile(t)
	copy(data, "xblf")

	err := AllInvariants(data)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "StartOfFile", verr.Type)
	require.ErrorIs(t, err, types.ErrChunkNotFound)
}

// TestStartOfFile_BadByteOrderMark tests a corrupted BOM.
func TestStartOfFile_BadByteOrderMark(t *testing.T) {
	data := createValidMinimalFile(t)
	binary.BigEndian.PutUint16(data[blf.HeaderSize:], 0xFEFF)

	err := StartOfFile(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, blf.HeaderSize, verr.Offset)
	require.Equal(t, uint16(0xFEFF), verr.Details["bom"])
	require.True(t, types.IsKind(err, types.ErrKindStructural))
}

// TestStartOfFile_Truncated tests input shorter than a header.
func TestStartOfFile_Truncated(t *testing.T) {
	err := StartOfFile([]byte("_blf"))
	require.ErrorIs(t, err, types.ErrTruncated)
}

// TestChunkChain_Overrun tests a chunk whose size runs past the file.
func TestChunkChain_Overrun(t *testing.T) {
	data := createValidMinimalFile(t)

	err := ChunkChain(data[:len(data)-1])
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, eofOffset, verr.Offset)
	require.ErrorIs(t, err, types.ErrTruncated)
}

// TestChunkChain_MissingTrailer tests a file that ends before any _eof.
func TestChunkChain_MissingTrailer(t *testing.T) {
	data := createValidMinimalFile(t)

	err := ChunkChain(data[:eofOffset])
	require.ErrorIs(t, err, eof.ErrNotFound)

	zeroed := append([]byte(nil), data[:eofOffset]...)
	zeroed = append(zeroed, make([]byte, blf.HeaderSize)...)
	require.ErrorIs(t, ChunkChain(zeroed), eof.ErrNotFound)
}

// TestChunkChain_FileSizeMismatch tests a trailer that disagrees with its offset.
func TestChunkChain_FileSizeMismatch(t *testing.T) {
	data := createValidMinimalFile(t)
	binary.BigEndian.PutUint32(data[eofOffset+blf.HeaderSize:], eofOffset+1)

	err := AllInvariants(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "ChunkChain", verr.Type)
	require.Equal(t, uint32(eofOffset+1), verr.Details["stored"])
	require.ErrorIs(t, err, eof.ErrFileSize)
	require.True(t, types.IsKind(err, types.ErrKindIntegrity))
}

// TestChunkChain_TrailingBytes tests data appended after the trailer.
func TestChunkChain_TrailingBytes(t *testing.T) {
	data := createValidMinimalFile(t)
	data = append(data, 0x00, 0x01)

	err := AllInvariants(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, len(data)-2, verr.Offset)
	require.Equal(t, 2, verr.Details["trailing"])
	require.Contains(t, err.Error(), "2 bytes after _eof chunk")
}

// TestAuthentication_Corrupted tests that a flipped byte fails the checksum
// while the structure stays valid.
func TestAuthentication_Corrupted(t *testing.T) {
	data := createValidMinimalFile(t)
	data[blf.HeaderSize+2] ^= 0x01

	require.NoError(t, AllInvariants(data))
	err := Authentication(data)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Equal(t, "crc32", verr.Details["kind"])
	require.ErrorIs(t, err, eof.ErrChecksum)
}

// TestValidationError_Format tests both message forms.
func TestValidationError_Format(t *testing.T) {
	withOffset := &ValidationError{Type: "ChunkChain", Message: "bad", Offset: 0x30}
	require.Equal(t, "ChunkChain at offset 0x30: bad", withOffset.Error())

	noOffset := &ValidationError{Type: "Authentication", Message: "bad", Offset: -1}
	require.Equal(t, "Authentication: bad", noOffset.Error())
}
