/*
Package blf provides whole-file helpers over the BLF codec for tools that do
not know a file's container layout in advance.

# Quick Start

List the chunks of a file:

	info, err := blf.Inspect("slayer.bin")
	if err != nil {
	    log.Fatal(err)
	}
	for _, c := range info.Chunks {
	    fmt.Printf("%s %s %d bytes at 0x%X\n", c.Signature, c.Version, c.Size, c.Offset)
	}

Check structure and trailer integrity:

	if err := blf.Validate("slayer.bin", nil); err != nil {
	    log.Fatal(err)
	}

Typed codecs for known containers live in the blf, blf/chunks and titles
packages; this package only walks headers and trailers.
*/
package blf
