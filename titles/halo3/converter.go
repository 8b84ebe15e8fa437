package halo3

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/bitstream"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
	"github.com/joshuapare/blfkit/pkg/types"
	"github.com/joshuapare/blfkit/titles"
)

const title = "Halo 3"

var (
	// ReleaseKey identifies the retail build.
	ReleaseKey = titles.Key{Title: title, Build: "12070.08.09.05.2031.halo3_ship"}
	// DeltaKey identifies the delta pre-release build.
	DeltaKey = titles.Key{Title: title, Build: "08172.07.03.08.2240.delta"}
)

// ErrSignatureSize indicates an RSA signature file that is not 256 bytes.
var ErrSignatureSize = &types.Error{Kind: types.ErrKindDomain, Msg: "halo3: rsa signature must be 256 bytes"}

type schema struct {
	key      titles.Key
	fill     bitstream.FillOrder
	trailer  eof.Kind
	manifest bool
}

// Converter implements titles.Converter for one Halo 3 build.
type Converter struct {
	schema
	opts titles.Options
}

var _ titles.Converter = (*Converter)(nil)

// NewRelease returns the converter for the retail build.
func NewRelease(opts titles.Options) *Converter {
	return &Converter{
		schema: schema{key: ReleaseKey, fill: bitstream.MSBFirst, trailer: eof.KindCRC32, manifest: true},
		opts:   opts,
	}
}

// NewDelta returns the converter for the delta pre-release build.
func NewDelta(opts titles.Options) *Converter {
	return &Converter{
		schema: schema{key: DeltaKey, fill: bitstream.LSBFirst, trailer: eof.KindNone},
		opts:   opts,
	}
}

func (c *Converter) Key() titles.Key { return c.key }

func (c *Converter) newFile() (*mapVariantFile, error) {
	t, err := eof.New(c.trailer)
	if err != nil {
		return nil, err
	}
	f := &mapVariantFile{EOF: t}
	f.Variant.Encoding = chunks.Encoding{FillOrder: c.fill}
	return f, nil
}

// Encode serializes doc as a map variant file for this build.
func (c *Converter) Encode(doc *Document) ([]byte, error) {
	f, err := c.newFile()
	if err != nil {
		return nil, err
	}
	f.Start = doc.Start
	f.Header = doc.Header
	enc := f.Variant.Encoding
	f.Variant = doc.Variant
	f.Variant.Encoding = enc
	return blf.Write(f)
}

// Decode parses a map variant file written by this build.
func (c *Converter) Decode(data []byte) (*Document, error) {
	f, err := c.newFile()
	if err != nil {
		return nil, err
	}
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
	c.opts.Log().Debug("wrote map variant", "path", blfPath, "bytes", len(data), "build", c.key.Build)
	return nil
}

func (c *Converter) ExportVariant(blfPath, jsonPath string) error {
	f, err := c.newFile()
	if err != nil {
		return err
	}
	if err := blf.ReadFile(blfPath, f); err != nil {
		return fmt.Errorf("%s: %w", blfPath, err)
	}
	c.opts.Log().Debug("read map variant", "path", blfPath, "name", f.Variant.Metadata.Name)
	doc := Document{Start: f.Start, Header: f.Header, Variant: f.Variant}
	return titles.WriteJSON(jsonPath, &doc)
}

func (c *Converter) BuildBLFs(configPath, outputPath string) error {
	manifest, err := titles.LoadManifest(configPath)
	if err != nil {
		return err
	}
	dir := filepath.Join(configPath, titles.MapVariantsDir)
	names, err := titles.List(dir, titles.JSONExt, manifest.Variants)
	if err != nil {
		return err
	}
	for _, name := range names {
		src := filepath.Join(dir, name+titles.JSONExt)
		dst := filepath.Join(outputPath, titles.MapVariantsDir, name+titles.BLFExt)
		if err := c.ImportVariant(src, dst); err != nil {
			return err
		}
	}
	c.opts.Log().Info("built map variants", "count", len(names), "output", outputPath)
	if !c.manifest {
		return nil
	}
	return c.buildManifest(configPath, outputPath)
}

func (c *Converter) buildManifest(configPath, outputPath string) error {
	dir := filepath.Join(configPath, titles.RSASignaturesDir)
	names, err := titles.List(dir, titles.BLFExt, nil)
	if err != nil || len(names) == 0 {
		return err
	}
	t, err := eof.New(c.trailer)
	if err != nil {
		return err
	}
	f := &rsaManifestFile{EOF: t}
	for _, name := range names {
		sig, err := readSignature(filepath.Join(dir, name+titles.BLFExt))
		if err != nil {
			return err
		}
		f.Manifest.Signatures = append(f.Manifest.Signatures, sig)
	}
	data, err := blf.Write(f)
	if err != nil {
		return err
	}
	dst := filepath.Join(outputPath, titles.RSAManifestFile)
	if err := titles.WriteFile(dst, data); err != nil {
		return err
	}
	c.opts.Log().Debug("wrote rsa manifest", "path", dst, "signatures", len(names))
	return nil
}

func (c *Converter) BuildConfig(blfPath, configPath string) error {
	dir := filepath.Join(blfPath, titles.MapVariantsDir)
	names, err := titles.List(dir, titles.BLFExt, nil)
	if err != nil {
		return err
	}
	for _, name := range names {
		src := filepath.Join(dir, name+titles.BLFExt)
		dst := filepath.Join(configPath, titles.MapVariantsDir, name+titles.JSONExt)
		if err := c.ExportVariant(src, dst); err != nil {
			return err
		}
	}
	if err := titles.WriteJSON(filepath.Join(configPath, titles.ManifestFile), titles.Manifest{Variants: names}); err != nil {
		return err
	}
	c.opts.Log().Info("exported map variants", "count", len(names), "config", configPath)
	if !c.manifest {
		return nil
	}
	return c.exportManifest(blfPath, configPath)
}

func (c *Converter) exportManifest(blfPath, configPath string) error {
	src := filepath.Join(blfPath, titles.RSAManifestFile)
	if _, err := os.Stat(src); os.IsNotExist(err) {
		return nil
	}
	t, err := eof.New(c.trailer)
	if err != nil {
		return err
	}
	f := &rsaManifestFile{EOF: t}
	if err := blf.ReadFile(src, f); err != nil {
		return fmt.Errorf("%s: %w", src, err)
	}
	for i, sig := range f.Manifest.Signatures {
		dst := filepath.Join(configPath, titles.RSASignaturesDir, fmt.Sprintf("%03d%s", i, titles.BLFExt))
		if err := titles.WriteFile(dst, sig[:]); err != nil {
			return err
		}
	}
	c.opts.Log().Debug("exported rsa manifest", "signatures", len(f.Manifest.Signatures))
	return nil
}

func (c *Converter) ImportRSASignatures(configPath, signaturesPath string) error {
	if !c.manifest {
		return titles.Unsupported(c.key, "import rsa signatures")
	}
	names, err := titles.List(signaturesPath, titles.BLFExt, nil)
	if err != nil {
		return err
	}
	if len(names) > chunks.MaxManifestSignatures {
		return fmt.Errorf("%d signatures, at most %d: %w", len(names), chunks.MaxManifestSignatures, chunks.ErrTooMany)
	}
	for _, name := range names {
		sig, err := readSignature(filepath.Join(signaturesPath, name+titles.BLFExt))
		if err != nil {
			return err
		}
		dst := filepath.Join(configPath, titles.RSASignaturesDir, name+titles.BLFExt)
		if err := titles.WriteFile(dst, sig[:]); err != nil {
			return err
		}
	}
	c.opts.Log().Info("imported rsa signatures", "count", len(names), "config", configPath)
	return nil
}

func readSignature(path string) (chunks.RSASignature, error) {
	var sig chunks.RSASignature
	data, err := os.ReadFile(path)
	if err != nil {
		return sig, err
	}
	if len(data) != len(sig) {
		return sig, fmt.Errorf("%s holds %d bytes: %w", path, len(data), ErrSignatureSize)
	}
	copy(sig[:], data)
	return sig, nil
}
