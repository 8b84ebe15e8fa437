package haloreach

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/blf/reference"
	"github.com/joshuapare/blfkit/blf/verify"
	"github.com/joshuapare/blfkit/titles"
)

func sampleDocument(name string) *Document {
	score := reference.Score(reference.PlayerTarget(0))
	limit := reference.Constant(50)
	one := reference.Constant(1)
	kills := reference.MemberNumber(reference.PlayerTarget(0), 1)
	return &Document{
		Start:  chunks.StartOfFile{Name: "reach game variant"},
		Header: chunks.ContentHeader{BuildNumber: 11860, Metadata: chunks.ContentItemMetadata{Name: name}},
		Variant: chunks.GameVariant{
			EncodingVersion: 0x6A,
			EngineVersion:   0x11,
			Metadata:        chunks.ContentItemMetadata{Name: name, Author: "blfkit", CampaignID: -1, InsertionPoint: -1},
			Strings:         []string{"Slayer", "%s leads"},
			Conditions: []chunks.Condition{
				{Type: chunks.ConditionCompare, Left: &score, Right: &limit, Operator: chunks.OpGreaterEqual},
			},
			Actions: []chunks.Action{
				{Type: chunks.ActionModifyNumber, Number: &kills, Operand: &one, Operator: chunks.OpAdd},
				{Type: chunks.ActionShowMessage, Message: 1, Tokens: []reference.Token{reference.TargetToken(reference.PlayerTarget(0))}},
			},
			Triggers: []chunks.Trigger{
				{Kind: chunks.TriggerEachPlayer, ConditionCount: 1, ActionCount: 2},
			},
		},
	}
}

func TestEncodeDecode(t *testing.T) {
	for _, c := range []*Converter{NewRelease(titles.Options{}), NewBeta(titles.Options{})} {
		t.Run(c.Key().Build, func(t *testing.T) {
			in := sampleDocument("slayer")
			data, err := c.Encode(in)
			require.NoError(t, err)
			require.NoError(t, verify.AllInvariants(data))

			tr, err := eof.FindAndValidate(data)
			require.NoError(t, err)
			assert.Equal(t, eof.KindSHA1, tr.Kind())

			out, err := c.Decode(data)
			require.NoError(t, err)
			assert.Same(t, c.layout, out.Variant.Encoding.References)
			in.Variant.Encoding = out.Variant.Encoding
			assert.Equal(t, in, out)
		})
	}
}

func TestLayoutsDiffer(t *testing.T) {
	release, err := NewRelease(titles.Options{}).Encode(sampleDocument("slayer"))
	require.NoError(t, err)
	beta, err := NewBeta(titles.Options{}).Encode(sampleDocument("slayer"))
	require.NoError(t, err)
	assert.NotEqual(t, release, beta)
}

func TestCompressStrings(t *testing.T) {
	plain, err := NewRelease(titles.Options{}).Encode(sampleDocument("slayer"))
	require.NoError(t, err)
	c := NewRelease(titles.Options{CompressStrings: true})
	packed, err := c.Encode(sampleDocument("slayer"))
	require.NoError(t, err)
	assert.NotEqual(t, plain, packed)

	// both forms decode under either setting
	for _, data := range [][]byte{plain, packed} {
		out, err := c.Decode(data)
		require.NoError(t, err)
		assert.Equal(t, []string{"Slayer", "%s leads"}, out.Variant.Strings)
	}
}

func TestBuildBLFsAndBack(t *testing.T) {
	c := NewBeta(titles.Options{})
	config := t.TempDir()
	for _, name := range []string{"oddball", "slayer"} {
		path := filepath.Join(config, titles.GameVariantsDir, name+titles.JSONExt)
		require.NoError(t, titles.WriteJSON(path, sampleDocument(name)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(config, titles.ManifestFile),
		[]byte("{\n  // slayer first\n  \"variants\": [\"slayer\"],\n}\n"), 0o644))

	output := t.TempDir()
	require.NoError(t, c.BuildBLFs(config, output))

	rebuilt := t.TempDir()
	require.NoError(t, c.BuildConfig(output, rebuilt))
	var doc Document
	require.NoError(t, titles.ReadJSON(filepath.Join(rebuilt, titles.GameVariantsDir, "oddball.json"), &doc))
	assert.Equal(t, "oddball", doc.Variant.Metadata.Name)
	require.Len(t, doc.Variant.Conditions, 1)
	require.NotNil(t, doc.Variant.Conditions[0].Left)
	assert.Equal(t, reference.NumberScore, doc.Variant.Conditions[0].Left.Kind)

	second := t.TempDir()
	require.NoError(t, c.BuildBLFs(rebuilt, second))
	for _, name := range []string{"oddball", "slayer"} {
		rel := filepath.Join(titles.GameVariantsDir, name+titles.BLFExt)
		want, err := os.ReadFile(filepath.Join(output, rel))
		require.NoError(t, err)
		got, err := os.ReadFile(filepath.Join(second, rel))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}
}

func TestBuildBLFsManifestNamesMissingVariant(t *testing.T) {
	config := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(config, titles.ManifestFile), []byte(`{"variants": ["ghost"]}`), 0o644))
	err := NewRelease(titles.Options{}).BuildBLFs(config, t.TempDir())
	require.ErrorIs(t, err, titles.ErrConfig)
}

func TestImportRSASignaturesUnsupported(t *testing.T) {
	err := NewRelease(titles.Options{}).ImportRSASignatures(t.TempDir(), t.TempDir())
	require.ErrorIs(t, err, titles.ErrNotSupported)
}
