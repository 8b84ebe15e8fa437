package titles

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/internal/writer"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.json", "a.json", "b.json", "notes.txt"} {
		touch(t, filepath.Join(dir, name))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "d.json"), 0o755))

	names, err := List(dir, JSONExt, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, names)

	names, err = List(dir, JSONExt, []string{"c", "a", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, names)

	_, err = List(dir, JSONExt, []string{"z"})
	require.ErrorIs(t, err, ErrConfig)

	names, err = List(filepath.Join(dir, "absent"), JSONExt, nil)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	m, err := LoadManifest(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Variants)

	jsonc := "{\n  /* build order */\n  \"variants\": [\"b\", \"a\",], // trailing comma\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(jsonc), 0o644))
	m, err = LoadManifest(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, m.Variants)

	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFile), []byte(`{"variants": 3}`), 0o644))
	_, err = LoadManifest(dir)
	require.ErrorIs(t, err, ErrConfig)
}

func TestWriteJSONReadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "key.json")
	in := Key{Title: "Halo 3", Build: "12070.08.09.05.2031.halo3_ship"}
	require.NoError(t, WriteJSON(path, in))

	var out Key
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)
	assert.Equal(t, "Halo 3 (12070.08.09.05.2031.halo3_ship)", out.String())
}

func TestEncodeJSON(t *testing.T) {
	var sink writer.MemWriter
	require.NoError(t, EncodeJSON(&sink, Manifest{Variants: []string{"guardian", "valhalla"}}))
	assert.Equal(t, 1, sink.Writes)
	assert.Equal(t, "{\n  \"variants\": [\n    \"guardian\",\n    \"valhalla\"\n  ]\n}\n", string(sink.Buf))

	require.Error(t, EncodeJSON(&sink, map[string]any{"bad": make(chan int)}))
	assert.Equal(t, 1, sink.Writes, "a failed marshal must not commit")
}
