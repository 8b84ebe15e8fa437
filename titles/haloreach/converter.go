package haloreach

import (
	"fmt"
	"path/filepath"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/blf/reference"
	"github.com/joshuapare/blfkit/titles"
)

const title = "Halo: Reach"

var (
	// ReleaseKey identifies the retail build.
	ReleaseKey = titles.Key{Title: title, Build: "11860.10.07.24.0147.omaha_relea"}
	// BetaKey identifies the public beta build.
	BetaKey = titles.Key{Title: title, Build: "09730.10.04.09.1309.omaha_delta"}
)

// Document is the JSON form of one game variant file.
type Document struct {
	Start   chunks.StartOfFile   `json:"start"`
	Header  chunks.ContentHeader `json:"header"`
	Variant chunks.GameVariant   `json:"variant"`
}

type gameVariantFile struct {
	Start   chunks.StartOfFile
	Header  chunks.ContentHeader
	Variant chunks.GameVariant
	EOF     eof.SHA1
}

func (f *gameVariantFile) Slots() []blf.Chunk {
	return []blf.Chunk{&f.Start, &f.Header, &f.Variant, &f.EOF}
}

// Converter implements titles.Converter for one Reach build.
type Converter struct {
	key    titles.Key
	layout *reference.Layout
	opts   titles.Options
}

var _ titles.Converter = (*Converter)(nil)

// NewRelease returns the converter for the retail build.
func NewRelease(opts titles.Options) *Converter {
	return &Converter{key: ReleaseKey, layout: &reference.ReachRelease, opts: opts}
}

// NewBeta returns the converter for the beta build.
func NewBeta(opts titles.Options) *Converter {
	return &Converter{key: BetaKey, layout: &reference.ReachBeta, opts: opts}
}

func (c *Converter) Key() titles.Key { return c.key }

func (c *Converter) encoding() chunks.Encoding {
	return chunks.Encoding{References: c.layout, CompressStrings: c.opts.CompressStrings}
}

// Encode serializes doc as a game variant file for this build.
func (c *Converter) Encode(doc *Document) ([]byte, error) {
	f := &gameVariantFile{Start: doc.Start, Header: doc.Header, Variant: doc.Variant}
	f.Variant.Encoding = c.encoding()
	return blf.Write(f)
}

// Decode parses a game variant file written by this build.
func (c *Converter) Decode(data []byte) (*Document, error) {
	f := &gameVariantFile{}
	f.Variant.Encoding = c.encoding()
	if err := blf.Read(data, f); err != nil {
		return nil, err
	}
	return &Document{Start: f.Start, Header: f.Header, Variant: f.Variant}, nil
}

func (c *Converter) ImportVariant(jsonPath, blfPath string) error {
	var doc Document
	if err := titles.ReadJSON(jsonPath, &doc); err != nil {
		return err
	}
	data, err := c.Encode(&doc)
	if err != nil {
		return fmt.Errorf("%s: %w", jsonPath, err)
	}
	if err := titles.WriteFile(blfPath, data); err != nil {
		return err
	}
	c.opts.Log().Debug("wrote game variant", "path", blfPath, "bytes", len(data), "layout", c.layout.Name)
	return nil
}

func (c *Converter) ExportVariant(blfPath, jsonPath string) error {
	f := &gameVariantFile{}
	f.Variant.Encoding = c.encoding()
	if err := blf.ReadFile(blfPath, f); err != nil {
		return fmt.Errorf("%s: %w", blfPath, err)
	}
	c.opts.Log().Debug("read game variant", "path", blfPath, "name", f.Variant.Metadata.Name,
		"conditions", len(f.Variant.Conditions), "actions", len(f.Variant.Actions))
	doc := Document{Start: f.Start, Header: f.Header, Variant: f.Variant}
	return titles.WriteJSON(jsonPath, &doc)
}

func (c *Converter) BuildBLFs(configPath, outputPath string) error {
	manifest, err := titles.LoadManifest(configPath)
	if err != nil {
		return err
	}
	dir := filepath.Join(configPath, titles.GameVariantsDir)
	names, err := titles.List(dir, titles.JSONExt, manifest.Variants)
	if err != nil {
		return err
	}
	for _, name := range names {
		src := filepath.Join(dir, name+titles.JSONExt)
		dst := filepath.Join(outputPath, titles.GameVariantsDir, name+titles.BLFExt)
		if err := c.ImportVariant(src, dst); err != nil {
			return err
		}
	}
	c.opts.Log().Info("built game variants", "count", len(names), "output", outputPath)
	return nil
}

func (c *Converter) BuildConfig(blfPath, configPath string) error {
	dir := filepath.Join(blfPath, titles.GameVariantsDir)
	names, err := titles.List(dir, titles.BLFExt, nil)
	if err != nil {
		return err
	}
	for _, name := range names {
		src := filepath.Join(dir, name+titles.BLFExt)
		dst := filepath.Join(configPath, titles.GameVariantsDir, name+titles.JSONExt)
		if err := c.ExportVariant(src, dst); err != nil {
			return err
		}
	}
	c.opts.Log().Info("exported game variants", "count", len(names), "config", configPath)
	return titles.WriteJSON(filepath.Join(configPath, titles.ManifestFile), titles.Manifest{Variants: names})
}

func (c *Converter) ImportRSASignatures(string, string) error {
	return titles.Unsupported(c.key, "import rsa signatures")
}
