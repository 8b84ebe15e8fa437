package halo3

import (
	"github.com/joshuapare/blfkit/blf"
	"github.com/joshuapare/blfkit/blf/chunks"
	"github.com/joshuapare/blfkit/blf/eof"
)

// Document is the JSON form of one map variant file.
type Document struct {
	Start   chunks.StartOfFile   `json:"start"`
	Header  chunks.ContentHeader `json:"header"`
	Variant chunks.MapVariant    `json:"variant"`
}

type mapVariantFile struct {
	Start   chunks.StartOfFile
	Header  chunks.ContentHeader
	Variant chunks.MapVariant
	EOF     eof.Trailer
}

func (f *mapVariantFile) Slots() []blf.Chunk {
	return []blf.Chunk{&f.Start, &f.Header, &f.Variant, f.EOF}
}

type rsaManifestFile struct {
	Start    chunks.StartOfFile
	Manifest chunks.MapManifest
	EOF      eof.Trailer
}

func (f *rsaManifestFile) Slots() []blf.Chunk {
	return []blf.Chunk{&f.Start, &f.Manifest, f.EOF}
}
