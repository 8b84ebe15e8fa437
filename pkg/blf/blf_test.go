package blf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codec "github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/blf/verify"
	"github.com/joshuapare/blfkit/pkg/types"
)

type authoredFile struct {
	Start  chunks.StartOfFile
	Author chunks.Author
	EOF    eof.SHA1
}

func (f *authoredFile) Slots() []codec.Chunk {
	return []codec.Chunk{&f.Start, &f.Author, &f.EOF}
}

func writeSample(t *testing.T) (string, []byte) {
	t.Helper()
	f := &authoredFile{}
	f.Start.Name = "inspect me"
	f.Author.ProgramName = "blfkit"
	data, err := codec.Write(f)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "sample.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path, data
}

func TestInspect(t *testing.T) {
	path, data := writeSample(t)

	info, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, len(data), info.Size)
	assert.Equal(t, "inspect me", info.Name)
	assert.Equal(t, "sha1", info.Trailer)
	require.Len(t, info.Chunks, 3)
	assert.Equal(t, ChunkInfo{Offset: 0, Signature: "_blf", Version: "1.2", Size: 48}, info.Chunks[0])
	assert.Equal(t, "athr", info.Chunks[1].Signature)
	assert.Equal(t, "3.1", info.Chunks[1].Version)
	assert.Equal(t, 48+80, info.Chunks[2].Offset)
}

func TestInspectTruncated(t *testing.T) {
	_, data := writeSample(t)

	info, err := inspect("cut.bin", data[:60])
	require.ErrorIs(t, err, types.ErrTruncated)
	require.NotNil(t, info)
	require.Len(t, info.Chunks, 1)
	assert.Empty(t, info.Trailer)
}

func TestValidate(t *testing.T) {
	path, data := writeSample(t)
	require.NoError(t, Validate(path, nil))

	data[programNameOffset] ^= 0x01
	require.NoError(t, os.WriteFile(path, data, 0o644))

	err := Validate(path, nil)
	require.ErrorIs(t, err, eof.ErrChecksum)
	var verr *verify.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Authentication", verr.Type)

	require.NoError(t, Validate(path, &ValidateOptions{SkipAuthentication: true}))
}

func TestValidateStructure(t *testing.T) {
	path, data := writeSample(t)
	require.NoError(t, os.WriteFile(path, append(data, 0), 0o644))

	err := Validate(path, &ValidateOptions{SkipAuthentication: true})
	var verr *verify.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "ChunkChain", verr.Type)

	require.Error(t, Validate(filepath.Join(t.TempDir(), "absent.bin"), nil))
}

// programNameOffset is the first byte of the author chunk's program name.
const programNameOffset = 48 + codec.HeaderSize
