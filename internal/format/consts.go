// Package format houses the low-level codec for the BLF chunk header. The goal
// is to keep header parsing allocation-free and independent from the chunk
// framework so locators can scan arbitrary offsets cheaply.
package format

const (
	// HeaderSize is the size of every chunk header in bytes.
	//
	//	Offset  Size  Field
	//	0x00    4     signature (raw bytes, e.g. '_' 'b' 'l' 'f')
	//	0x04    2     major version
	//	0x06    2     minor version
	//	0x08    4     chunk size, header included
	//
	// All header fields are big-endian.
	HeaderSize = 12

	SignatureOffset    = 0x00
	MajorVersionOffset = 0x04
	MinorVersionOffset = 0x06
	ChunkSizeOffset    = 0x08

	// SignatureSize is the length of a chunk signature.
	SignatureSize = 4

	// EndOfChunks is the chunk_size value that terminates a sequential scan.
	EndOfChunks = 0
)

// Well-known signatures.
var (
	StartOfFileSignature   = Signature{'_', 'b', 'l', 'f'}
	EndOfFileSignature     = Signature{'_', 'e', 'o', 'f'}
	AuthorSignature        = Signature{'a', 't', 'h', 'r'}
	ContentHeaderSignature = Signature{'c', 'h', 'd', 'r'}
	MapVariantSignature    = Signature{'m', 'v', 'a', 'r'}
	GameVariantSignature   = Signature{'m', 'p', 'v', 'r'}
	MapManifestSignature   = Signature{'m', 'a', 'p', 'm'}
)
