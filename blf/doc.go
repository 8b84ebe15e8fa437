/*
Package blf implements the BLF chunk framework: the per-chunk encode/decode
contract, the hook chain that lets trailer chunks see everything written or read
before them, the fixed-slot container codec, and the chunk locators.

# Chunks

A chunk is any type that implements Chunk. Serialization of the body is the
chunk's own business (MarshalBody/UnmarshalBody); framing, identity checks and
hooks belong to this package:

	body, err := blf.EncodeBody(c, previouslyWritten) // BeforeWrite, then MarshalBody
	err = blf.DecodeBody(c, body, hdr, previouslyRead) // UnmarshalBody, then AfterRead

# Containers

A container declares its chunk slots in order:

	type MapVariantFile struct {
		Header  chunks.StartOfFile
		Content chunks.ContentHeader
		Variant chunks.MapVariant
		EOF     eof.CRC32
	}

	func (f *MapVariantFile) Slots() []blf.Chunk {
		return []blf.Chunk{&f.Header, &f.Content, &f.Variant, &f.EOF}
	}

Write threads the accumulator through every slot; Read requires each slot to be
present, in order, with the declared signature and version.

# Locators

FindChunk walks headers using their declared sizes. SearchForChunk slides a
header-sized window over every byte offset and is only meant for captures whose
chunk sizes cannot be trusted.
*/
package blf
