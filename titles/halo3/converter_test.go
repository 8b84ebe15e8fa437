package halo3

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/blf/quantize"
	"github.com/joshuapare/blfkit/blf/verify"
	"github.com/joshuapare/blfkit/pkg/types"
	"github.com/joshuapare/blfkit/titles"
)

func sampleDocument(name string) *Document {
	return &Document{
		Start:  chunks.StartOfFile{Name: "halo3 map variant"},
		Header: chunks.ContentHeader{BuildNumber: 12070, Metadata: chunks.ContentItemMetadata{Name: name, MapID: 30}},
		Variant: chunks.MapVariant{
			Metadata:        chunks.ContentItemMetadata{Name: name, Author: "blfkit", MapID: 30, CampaignID: -1},
			VariantVersion:  12,
			ScenarioObjects: 1,
			MapID:           30,
			WorldBounds: quantize.Bounds3{
				X: quantize.Range{Min: -64, Max: 64},
				Y: quantize.Range{Min: -64, Max: 64},
				Z: quantize.Range{Min: 0, Max: 32},
			},
			MaximumBudget: 5000,
			Placements:    []chunks.Placement{{Definition: -1}},
			Quotas:        []chunks.Quota{{Definition: 0x1234, Maximum: 4, MaxAllowed: 8, Price: 10}},
		},
	}
}

func writeConfig(t *testing.T, dir string, docs ...*Document) {
	t.Helper()
	for _, doc := range docs {
		path := filepath.Join(dir, titles.MapVariantsDir, doc.Variant.Metadata.Name+titles.JSONExt)
		require.NoError(t, titles.WriteJSON(path, doc))
	}
}

func writeSignature(t *testing.T, path string, fill byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	sig := make([]byte, chunks.RSASignatureSize)
	for i := range sig {
		sig[i] = fill
	}
	require.NoError(t, os.WriteFile(path, sig, 0o644))
}

func TestEncodeDecode(t *testing.T) {
	for _, c := range []*Converter{NewRelease(titles.Options{}), NewDelta(titles.Options{})} {
		t.Run(c.Key().Build, func(t *testing.T) {
			in := sampleDocument("guardian")
			data, err := c.Encode(in)
			require.NoError(t, err)
			require.NoError(t, verify.AllInvariants(data))

			tr, err := eof.FindAndValidate(data)
			require.NoError(t, err)
			assert.Equal(t, c.trailer, tr.Kind())

			out, err := c.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, in.Variant.Metadata, out.Variant.Metadata)
			assert.Equal(t, in.Variant.Quotas, out.Variant.Quotas)
			assert.Equal(t, in.Header, out.Header)
		})
	}
}

func TestBuildsDifferInFillOrder(t *testing.T) {
	release, err := NewRelease(titles.Options{}).Encode(sampleDocument("guardian"))
	require.NoError(t, err)
	delta, err := NewDelta(titles.Options{}).Encode(sampleDocument("guardian"))
	require.NoError(t, err)
	assert.NotEqual(t, release, delta)

	// a delta file does not decode as a release file
	_, err = NewRelease(titles.Options{}).Decode(delta)
	require.Error(t, err)
}

func TestBuildBLFsAndBack(t *testing.T) {
	c := NewRelease(titles.Options{})
	config := t.TempDir()
	writeConfig(t, config, sampleDocument("guardian"), sampleDocument("valhalla"))
	writeSignature(t, filepath.Join(config, titles.RSASignaturesDir, "guardian.bin"), 0xAA)
	writeSignature(t, filepath.Join(config, titles.RSASignaturesDir, "valhalla.bin"), 0xBB)

	output := t.TempDir()
	require.NoError(t, c.BuildBLFs(config, output))

	for _, name := range []string{"guardian", "valhalla"} {
		data, err := os.ReadFile(filepath.Join(output, titles.MapVariantsDir, name+titles.BLFExt))
		require.NoError(t, err)
		require.NoError(t, verify.AllInvariants(data))
	}
	manifest, err := os.ReadFile(filepath.Join(output, titles.RSAManifestFile))
	require.NoError(t, err)
	require.NoError(t, verify.AllInvariants(manifest))

	rebuilt := t.TempDir()
	require.NoError(t, c.BuildConfig(output, rebuilt))

	var doc Document
	require.NoError(t, titles.ReadJSON(filepath.Join(rebuilt, titles.MapVariantsDir, "valhalla.json"), &doc))
	assert.Equal(t, "valhalla", doc.Variant.Metadata.Name)

	m, err := titles.LoadManifest(rebuilt)
	require.NoError(t, err)
	assert.Equal(t, []string{"guardian", "valhalla"}, m.Variants)

	sig, err := os.ReadFile(filepath.Join(rebuilt, titles.RSASignaturesDir, "001.bin"))
	require.NoError(t, err)
	assert.Equal(t, byte(0xBB), sig[0])

	// a second build from the exported config is byte-identical
	second := t.TempDir()
	require.NoError(t, c.BuildBLFs(rebuilt, second))
	for _, name := range []string{filepath.Join(titles.MapVariantsDir, "guardian.bin"), titles.RSAManifestFile} {
		want, err := os.ReadFile(filepath.Join(output, name))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(second, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestImportVariantAcceptsComments(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "commented.json")
	doc := `{
	// quota-only variant
	"variant": {
		"metadata": {"name": "commented", "map_id": 30},
		"map_id": 30,
		"world_bounds": {"x": {"min": 0, "max": 10}, "y": {"min": 0, "max": 10}, "z": {"min": 0, "max": 10}},
		"quotas": [{"definition": 7, "maximum": 2, "price": 1.5},],
	},
}`
	require.NoError(t, os.WriteFile(src, []byte(doc), 0o644))

	c := NewRelease(titles.Options{})
	dst := filepath.Join(dir, "out", "commented.bin")
	require.NoError(t, c.ImportVariant(src, dst))

	back := filepath.Join(dir, "back.json")
	require.NoError(t, c.ExportVariant(dst, back))
	var out Document
	require.NoError(t, titles.ReadJSON(back, &out))
	assert.Equal(t, "commented", out.Variant.Metadata.Name)
	require.Len(t, out.Variant.Quotas, 1)
	assert.Equal(t, int32(7), out.Variant.Quotas[0].Definition)
	assert.InDelta(t, 1.5, out.Variant.Quotas[0].Price, 0)
}

func TestImportVariantRejectsBadJSON(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(src, []byte(`{"variant": [}`), 0o644))

	err := NewRelease(titles.Options{}).ImportVariant(src, filepath.Join(dir, "bad.bin"))
	require.ErrorIs(t, err, titles.ErrConfig)
}

func TestImportRSASignatures(t *testing.T) {
	src := t.TempDir()
	writeSignature(t, filepath.Join(src, "sandtrap.bin"), 0x11)
	config := t.TempDir()

	require.NoError(t, NewRelease(titles.Options{}).ImportRSASignatures(config, src))
	got, err := os.ReadFile(filepath.Join(config, titles.RSASignaturesDir, "sandtrap.bin"))
	require.NoError(t, err)
	assert.Len(t, got, chunks.RSASignatureSize)

	require.NoError(t, os.WriteFile(filepath.Join(src, "short.bin"), []byte{1, 2, 3}, 0o644))
	err = NewRelease(titles.Options{}).ImportRSASignatures(config, src)
	require.ErrorIs(t, err, ErrSignatureSize)

	err = NewDelta(titles.Options{}).ImportRSASignatures(config, src)
	require.ErrorIs(t, err, titles.ErrNotSupported)
	assert.True(t, types.IsKind(err, types.ErrKindUnsupported))
}
